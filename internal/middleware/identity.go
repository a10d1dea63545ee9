package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/taskmaster-app/taskmaster-api/internal/request"
	"go.uber.org/zap"
)

// UserIDHeader carries the caller's identity, set by the fronting gateway
// after it authenticates the request. The API trusts it as-is; the gateway
// must strip any client-supplied value.
const UserIDHeader = "X-User-ID"

// Identity extracts the authenticated user ID from the gateway header and
// attaches it to the request context. Requests without a valid ID are
// rejected.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(UserIDHeader)
			if raw == "" {
				respondErrorJSON(w, r, http.StatusUnauthorized, "Unauthorized", "Missing user identity", logger)
				return
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				logger.Warn("invalid_user_id_header", zap.Error(err))
				respondErrorJSON(w, r, http.StatusUnauthorized, "Unauthorized", "Invalid user identity", logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(request.WithUserID(r.Context(), userID)))
		})
	}
}
