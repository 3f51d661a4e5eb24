package catalog

import (
	"bytes"
	"context"
	"strconv"
	"strings"
)

// The scan checks for cancellation once per this many ids.
const scanYieldEvery = 1 << 16

// SearchResult holds the ascending ids whose decimal form contains the term,
// capped at the index's match limit. Cached results are shared between
// callers and must not be modified.
type SearchResult struct {
	IDs   []int `json:"matchingIds"`
	Total int   `json:"total"`
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

type searchIndex struct {
	n        int
	maxMatch int
	maxTerms int // 0 = unbounded
	cache    map[string]SearchResult
}

func newSearchIndex(n, maxMatch, maxTerms int) *searchIndex {
	return &searchIndex{
		n:        n,
		maxMatch: maxMatch,
		maxTerms: maxTerms,
		cache:    make(map[string]SearchResult),
	}
}

// lookup returns the memoized result for a normalized, non-empty term,
// scanning on a miss. hit reports whether the cache answered.
func (x *searchIndex) lookup(ctx context.Context, term string) (res SearchResult, hit bool, err error) {
	if r, ok := x.cache[term]; ok {
		return r, true, nil
	}

	r, err := x.scan(ctx, term)
	if err != nil {
		return SearchResult{}, false, err
	}
	if x.maxTerms == 0 || len(x.cache) < x.maxTerms {
		x.cache[term] = r
	}
	return r, false, nil
}

func (x *searchIndex) scan(ctx context.Context, term string) (SearchResult, error) {
	ids := make([]int, 0, 16)
	if !isDigits(term) {
		return SearchResult{IDs: ids}, nil
	}

	needle := []byte(term)
	var buf [20]byte
	for id := 1; id <= x.n; id++ {
		if id%scanYieldEvery == 0 {
			if err := ctx.Err(); err != nil {
				return SearchResult{}, err
			}
		}
		if !bytes.Contains(strconv.AppendInt(buf[:0], int64(id), 10), needle) {
			continue
		}
		ids = append(ids, id)
		if len(ids) >= x.maxMatch {
			break
		}
	}
	return SearchResult{IDs: ids, Total: len(ids)}, nil
}

func (x *searchIndex) cached(term string) bool {
	_, ok := x.cache[term]
	return ok
}

func (x *searchIndex) size() int { return len(x.cache) }

func (x *searchIndex) invalidate() {
	clear(x.cache)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
