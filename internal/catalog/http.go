package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
	"go.uber.org/zap"

	"VirtualCatalog/pkg/kit"
)

const (
	maxBodyBytes        = 1 << 20
	defaultListLimit    = 20
	errMsgInvalidBody   = "Invalid JSON body"
	errMsgInternal      = "Internal server error"
	errMsgNotFound      = "Not found"
	errMsgMethodBlocked = "Method not allowed"
)

//go:generate mockgen -source=http.go -destination=mocks/catalog_mock.go -package=mocks Catalog

// Catalog is the set of operations the HTTP surface drives.
type Catalog interface {
	ListItems(ctx context.Context, q ListQuery) (ListResult, error)
	SetOrder(ctx context.Context, order []int) error
	ResetOrder(ctx context.Context)
	SetSelected(ctx context.Context, id int, selected bool) (int, error)
	State(ctx context.Context) State
}

type Server struct {
	Catalog      Catalog
	Log          *zap.Logger
	DefaultLimit int
}

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api", func(api chi.Router) {
		api.Get("/items", s.listItems)
		api.Post("/update-order", s.updateOrder)
		api.Post("/update-selection", s.updateSelection)
		api.Delete("/order", s.resetOrder)
		api.Get("/state", s.state)
	})

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	kit.WriteError(w, r, http.StatusNotFound, errMsgNotFound, "")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	kit.WriteError(w, r, http.StatusMethodNotAllowed, errMsgMethodBlocked, "")
}

type listParams struct {
	Page   string `schema:"page"`
	Limit  string `schema:"limit"`
	Search string `schema:"search"`
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	var p listParams
	if err := queryDecoder.Decode(&p, r.URL.Query()); err != nil {
		s.logger().Debug("query decode failed, using defaults", zap.Error(err))
		p = listParams{}
	}

	q := ListQuery{
		Page:   lenientInt(p.Page, 1),
		Limit:  lenientInt(p.Limit, s.defaultLimit()),
		Search: p.Search,
	}

	res, err := s.Catalog.ListItems(r.Context(), q)
	if err != nil {
		s.writeCatalogError(w, r, err, "list items")
		return
	}
	kit.WriteJSONWithETag(w, r, http.StatusOK, res)
}

type updateOrderReq struct {
	Order json.RawMessage `json:"order"`
}

type messageResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, errMsgInvalidBody, "")
		return
	}

	order, err := parseOrder(req.Order)
	if err != nil {
		s.writeCatalogError(w, r, err, "update order")
		return
	}

	if err := s.Catalog.SetOrder(r.Context(), order); err != nil {
		s.writeCatalogError(w, r, err, "update order")
		return
	}

	kit.WriteJSON(w, http.StatusOK, messageResp{
		Success: true,
		Message: "Order updated with " + strconv.Itoa(len(order)) + " items",
	})
}

func (s *Server) resetOrder(w http.ResponseWriter, r *http.Request) {
	s.Catalog.ResetOrder(r.Context())
	kit.WriteJSON(w, http.StatusOK, messageResp{Success: true, Message: "Order reset"})
}

type updateSelectionReq struct {
	ID       json.Number `json:"id"`
	Selected bool        `json:"selected"`
}

type updateSelectionResp struct {
	Success       bool `json:"success"`
	Selected      bool `json:"selected"`
	SelectedCount int  `json:"selectedCount"`
}

func (s *Server) updateSelection(w http.ResponseWriter, r *http.Request) {
	var req updateSelectionReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, errMsgInvalidBody, "")
		return
	}

	id, err := parseID(req.ID)
	if err != nil {
		s.writeCatalogError(w, r, err, "update selection")
		return
	}

	count, err := s.Catalog.SetSelected(r.Context(), id, req.Selected)
	if err != nil {
		s.writeCatalogError(w, r, err, "update selection")
		return
	}

	kit.WriteJSON(w, http.StatusOK, updateSelectionResp{
		Success:       true,
		Selected:      req.Selected,
		SelectedCount: count,
	})
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSONWithETag(w, r, http.StatusOK, s.Catalog.State(r.Context()))
}

func (s *Server) writeCatalogError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		kit.WriteError(w, r, http.StatusBadRequest, verr.Error(), "")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.logger().Warn(op+" aborted", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "Request cancelled", "")
	default:
		s.logger().Error(op+" failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, errMsgInternal, "")
	}
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) defaultLimit() int {
	if s.DefaultLimit > 0 {
		return s.DefaultLimit
	}
	return defaultListLimit
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	return json.NewDecoder(r.Body).Decode(dst)
}

func parseOrder(raw json.RawMessage) ([]int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, invalid(nil, "order must be an array of item ids")
	}

	var nums []json.Number
	if err := json.Unmarshal(raw, &nums); err != nil {
		return nil, invalid(nil, "order must be an array of item ids")
	}

	order := make([]int, 0, len(nums))
	for _, n := range nums {
		id, err := parseID(n)
		if err != nil {
			return nil, err
		}
		order = append(order, id)
	}
	return order, nil
}

func parseID(n json.Number) (int, error) {
	if n == "" {
		return 0, invalid(nil, "id is required")
	}
	id, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, invalid(n.String(), "id must be an integer")
	}
	return id, nil
}

// lenientInt reads an optional sign and the leading decimal digits of raw,
// the way a permissive parseInt would, saturating at MaxInt32. Input without
// leading digits yields def.
func lenientInt(raw string, def int) int {
	s := strings.TrimSpace(raw)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		d := int(s[digits] - '0')
		if n <= (math.MaxInt32-d)/10 {
			n = n*10 + d
		} else {
			n = math.MaxInt32
		}
		digits++
	}
	if digits == 0 {
		return def
	}
	if neg {
		return -n
	}
	return n
}
