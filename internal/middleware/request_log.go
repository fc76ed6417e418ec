package middleware

import (
	"net/http"
	"time"

	"pet-boarding/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog deja el logger del request en el contexto y registra una línea al terminar.
// Debe ir después de chimw.RequestID para tener request_id.
func RequestLog(base logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			l := base.With(map[string]any{
				"request_id": chimw.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			ctx := logger.WithContext(r.Context(), l)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := map[string]any{
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if status >= 500 {
				l.Error("request completed", fields)
				return
			}
			l.Info("request completed", fields)
		})
	}
}
