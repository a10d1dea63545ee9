package middleware

import (
	"net/http"
	"time"

	logpkg "github.com/taskmaster-app/taskmaster-api/internal/logger"
	"github.com/taskmaster-app/taskmaster-api/internal/request"
	"go.uber.org/zap"
)

// Logging emits one structured log line per request: method, sanitized path,
// status, response size, duration, and client IP.
func Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			logger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", logpkg.SanitizePath(r.URL.Path)),
				zap.Int("status_code", wrapped.statusCode),
				zap.Int("response_bytes", wrapped.bytes),
				zap.Int64("duration_ms", duration.Milliseconds()),
				zap.String("client_ip", request.ClientIP(r)),
			)
		})
	}
}

// responseWriter records the status code and body size the handler wrote.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}
