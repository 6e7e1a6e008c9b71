package httpx

import (
	"net/http"

	"go.uber.org/zap"
)

// RecoveryMiddleware turns a handler panic into a plain 500 and a log line.
func RecoveryMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := wrapResponseWriter(w)
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					panicRecoveries.Inc()
					log.Error("panic recovered",
						zap.Any("error", err),
						zap.String("request_id", RequestIDFrom(r)),
						zap.String("path", r.URL.Path),
						zap.Stack("stack"),
					)

					if !rw.headerWritten {
						Text(rw, http.StatusInternalServerError, "Internal Server Error")
					}
				}
			}()
			next.ServeHTTP(rw, r)
		})
	}
}
