package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	do := func(opts CORSOptions, method, origin string, preflight bool) *httptest.ResponseRecorder {
		reached = false
		req := httptest.NewRequest(method, "/api/items", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		if preflight {
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		}
		rec := httptest.NewRecorder()
		CORS(opts)(next).ServeHTTP(rec, req)
		return rec
	}

	t.Run("any origin by default", func(t *testing.T) {
		rec := do(CORSOptions{}, http.MethodGet, "http://a.test", false)
		assert.True(t, reached)
		assert.Equal(t, "http://a.test", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "ETag, X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
		assert.Empty(t, rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("preflight short circuits", func(t *testing.T) {
		rec := do(CORSOptions{MaxAgeSeconds: 30}, http.MethodOptions, "http://a.test", true)
		assert.False(t, reached)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "30", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("origin outside the allow list", func(t *testing.T) {
		rec := do(CORSOptions{AllowedOrigins: []string{"http://a.test"}}, http.MethodGet, "http://b.test", false)
		assert.True(t, reached)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard entry", func(t *testing.T) {
		rec := do(CORSOptions{AllowedOrigins: []string{"*"}}, http.MethodGet, "http://b.test", false)
		assert.Equal(t, "http://b.test", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("plain OPTIONS passes through", func(t *testing.T) {
		do(CORSOptions{}, http.MethodOptions, "", false)
		assert.True(t, reached)
	})
}
