package kit

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// Compress gzips responses larger than gzhttp's default minimum size.
func Compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}
