package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	logpkg "github.com/taskmaster-app/taskmaster-api/internal/logger"
	"github.com/taskmaster-app/taskmaster-api/internal/request"
	"go.uber.org/zap"
)

// errorEnvelope is the JSON body middleware errors are sent with. It mirrors
// the envelope the handlers use so clients see one error shape everywhere.
type errorEnvelope struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// ErrorHandler recovers handler panics into a 500 response. The panic value
// is logged server-side and never reaches the client.
func ErrorHandler(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic_recovered",
						zap.Any("error", err),
						zap.String("method", r.Method),
						zap.String("path", logpkg.SanitizePath(r.URL.Path)),
						zap.String("client_ip", request.ClientIP(r)),
					)
					respondErrorJSON(w, r, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred", logger)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func respondErrorJSON(w http.ResponseWriter, r *http.Request, status int, errorType, message string, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	envelope := errorEnvelope{
		Success:   false,
		Error:     errorType,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	}

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		logger.Error("failed_to_encode_error_response",
			zap.Error(err),
			zap.Int("status_code", status),
			zap.String("path", logpkg.SanitizePath(r.URL.Path)),
		)
	}
}
