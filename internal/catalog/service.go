package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const (
	DefaultItemCount        = 1_000_000
	DefaultSearchMaxResults = 1000
	DefaultMaxLimit         = 100
)

type Options struct {
	ItemCount        int
	SearchMaxResults int
	// SearchCacheMax bounds the memoized terms; 0 keeps every term until the
	// next order change.
	SearchCacheMax int
	MaxLimit       int
	// SearchRespectsOrder passes search matches through the custom order.
	// Off by default: search results stay in ascending id order.
	SearchRespectsOrder bool

	Log     *zap.Logger
	Metrics *Metrics
}

type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

type ListResult struct {
	Items   []Item `json:"items"`
	Total   int    `json:"total"`
	HasMore bool   `json:"hasMore"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
}

type Selection struct {
	IDs   []int `json:"selectedIds"`
	Count int   `json:"count"`
}

type State struct {
	Selected       []int `json:"selected"`
	SelectedCount  int   `json:"selectedCount"`
	HasCustomOrder bool  `json:"hasCustomOrder"`
}

// Service owns the catalog state: the custom order, the selection set and
// the search cache. mu guards all three as one unit, so every operation is
// observed either fully applied or not at all.
type Service struct {
	n                   int
	maxLimit            int
	searchRespectsOrder bool
	log                 *zap.Logger
	metrics             *Metrics

	mu        sync.Mutex
	order     *customOrder
	selection *selectionSet
	search    *searchIndex
}

func NewService(opts Options) *Service {
	if opts.ItemCount <= 0 {
		opts.ItemCount = DefaultItemCount
	}
	if opts.SearchMaxResults <= 0 {
		opts.SearchMaxResults = DefaultSearchMaxResults
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = DefaultMaxLimit
	}
	if opts.SearchCacheMax < 0 {
		opts.SearchCacheMax = 0
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	return &Service{
		n:                   opts.ItemCount,
		maxLimit:            opts.MaxLimit,
		searchRespectsOrder: opts.SearchRespectsOrder,
		log:                 opts.Log,
		metrics:             opts.Metrics,
		selection:           newSelectionSet(),
		search:              newSearchIndex(opts.ItemCount, opts.SearchMaxResults, opts.SearchCacheMax),
	}
}

func (s *Service) ItemCount() int { return s.n }

// ListItems resolves one page of the effective id sequence. Page and limit
// are clamped, never rejected.
func (s *Service) ListItems(ctx context.Context, q ListQuery) (res ListResult, err error) {
	page := max(q.Page, 1)
	limit := min(max(q.Limit, 1), s.maxLimit)
	// Pages past the universe all start at n; this also keeps huge page
	// numbers from overflowing.
	start := s.n
	if page-1 <= s.n/limit {
		start = (page - 1) * limit
	}
	end := start + limit
	term := normalizeTerm(q.Search)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("list items fault", zap.Any("panic", rec), zap.Stack("stack"))
			res, err = ListResult{}, fmt.Errorf("%w: %v", ErrInternal, rec)
		}
	}()

	var (
		ids   []int
		total int
	)
	if term != "" {
		found, err := s.searchLocked(ctx, term)
		if err != nil {
			return ListResult{}, err
		}
		matches := found.IDs
		if s.searchRespectsOrder && s.order != nil {
			matches = ResolveOrder(matches, s.order.ids)
		}
		ids = window(matches, start, end)
		total = found.Total
	} else {
		ids = newOrderedView(s.n, s.order).slice(start, end)
		total = s.n
	}

	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, s.itemLocked(id))
	}

	return ListResult{
		Items:   items,
		Total:   total,
		HasMore: end < total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// Search returns the memoized matches for term. An empty term is not a
// search and is rejected.
func (s *Service) Search(ctx context.Context, term string) (SearchResult, error) {
	term = normalizeTerm(term)
	if term == "" {
		return SearchResult{}, invalid(nil, "search term is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchLocked(ctx, term)
}

func (s *Service) searchLocked(ctx context.Context, term string) (SearchResult, error) {
	res, hit, err := s.search.lookup(ctx, term)
	if err != nil {
		return SearchResult{}, err
	}
	s.metrics.searchLookup(hit, s.search.size())
	if !hit {
		s.log.Debug("search scan", zap.String("term", term), zap.Int("matches", res.Total))
	}
	return res, nil
}

// SetOrder replaces the custom order and drops every cached search result.
// A rejected order leaves the state untouched.
func (s *Service) SetOrder(_ context.Context, order []int) error {
	o, err := validateOrder(order, s.n)
	if err != nil {
		s.metrics.orderUpdate("rejected")
		return err
	}

	s.mu.Lock()
	s.order = o
	s.search.invalidate()
	s.mu.Unlock()

	s.metrics.orderUpdate("accepted")
	s.log.Info("custom order updated", zap.Int("ids", len(o.ids)))
	return nil
}

// ResetOrder returns to natural order.
func (s *Service) ResetOrder(_ context.Context) {
	s.mu.Lock()
	s.order = nil
	s.search.invalidate()
	s.mu.Unlock()

	s.metrics.orderUpdate("reset")
	s.log.Info("custom order reset")
}

func (s *Service) SetSelected(_ context.Context, id int, selected bool) (int, error) {
	if !s.inRange(id) {
		return 0, outOfRange(id, s.n)
	}

	s.mu.Lock()
	n := s.selection.set(id, selected)
	s.mu.Unlock()

	s.metrics.selected(n)
	return n, nil
}

func (s *Service) Selection(_ context.Context) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.selection.ids()
	return Selection{IDs: ids, Count: len(ids)}
}

func (s *Service) State(_ context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.selection.ids()
	return State{
		Selected:       ids,
		SelectedCount:  len(ids),
		HasCustomOrder: s.order != nil,
	}
}

func (s *Service) inRange(id int) bool {
	return id >= 1 && id <= s.n
}

func (s *Service) itemLocked(id int) Item {
	if !s.inRange(id) {
		panic(outOfRange(id, s.n))
	}
	return synthesize(id, s.selection.has(id))
}

func window(ids []int, start, end int) []int {
	if end > len(ids) {
		end = len(ids)
	}
	if start >= end {
		return nil
	}
	return ids[start:end]
}
