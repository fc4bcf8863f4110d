package middleware

import (
	"net/http"

	"filmix-backend/internal/httputil"
)

// BodyLimit caps every request body at limit bytes. Requests that announce
// a larger Content-Length are rejected before the handler runs.
func BodyLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				httputil.WriteTooLarge(w, "Request body too large!")
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
