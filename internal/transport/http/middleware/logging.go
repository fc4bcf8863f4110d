package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const requestInfoKey contextKey = "request_info"

// requestInfo is filled in by inner middleware so the outer request logger
// can report it once the handler returns.
type requestInfo struct {
	userID int64
}

func requestInfoFrom(ctx context.Context) *requestInfo {
	info, _ := ctx.Value(requestInfoKey).(*requestInfo)
	return info
}

// RequestLogger logs one line per request through the global zap logger.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		info := &requestInfo{}
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			}
			if info.userID != 0 {
				fields = append(fields, zap.Int64("user_id", info.userID))
			}

			if status >= http.StatusInternalServerError {
				zap.L().Error("Request failed", fields...)
				return
			}
			zap.L().Info("Request", fields...)
		}()

		ctx := context.WithValue(r.Context(), requestInfoKey, info)
		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}
