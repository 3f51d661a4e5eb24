package kit

import (
	"encoding/json"
	"fmt"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spaolacci/murmur3"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, msg, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error:     msg,
		Message:   message,
		RequestID: chimw.GetReqID(r.Context()),
	})
}

// WriteJSONWithETag writes v with a content fingerprint ETag and answers
// 304 when the request's If-None-Match already names it.
func WriteJSONWithETag(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	body = append(body, '\n')

	etag := ETag(body)
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func ETag(body []byte) string {
	h1, h2 := murmur3.Sum128(body)
	return fmt.Sprintf(`"%016x%016x"`, h1, h2)
}
