package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"filmix-backend/internal/httputil"
)

// Recoverer turns a panic into the standard 500 JSON error.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			zap.L().Error("Recovered from panic",
				zap.Any("panic", rvr),
				zap.String("request_id", chimw.GetReqID(r.Context())),
				zap.Stack("stack"),
			)
			httputil.WriteInternalError(w, "Internal server error")
		}()

		next.ServeHTTP(w, r)
	})
}
