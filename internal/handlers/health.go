package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/taskmaster-app/taskmaster-api/internal/database"
	"github.com/taskmaster-app/taskmaster-api/internal/queue"
)

// HealthChecker handles health check requests
type HealthChecker struct {
	db        *database.DB
	jobQueue  queue.JobQueue
	extractor ExtractionService
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(db *database.DB, jobQueue queue.JobQueue, extractor ExtractionService) *HealthChecker {
	return &HealthChecker{db: db, jobQueue: jobQueue, extractor: extractor}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles the /healthz endpoint
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if mode == "extended" {
		checks := make(map[string]string)

		if err := h.checkDatabase(r.Context()); err != nil {
			response.Status = "unhealthy"
			checks["database"] = "unhealthy: " + err.Error()
		} else {
			checks["database"] = "healthy"
		}

		if h.jobQueue != nil {
			if err := h.jobQueue.HealthCheck(r.Context()); err != nil {
				response.Status = "unhealthy"
				checks["queue"] = "unhealthy: " + err.Error()
			} else {
				checks["queue"] = "healthy"
			}
		}

		// The AI path degrades rather than fails, so an unconfigured model
		// is reported without marking the service unhealthy.
		if h.extractor != nil {
			if h.extractor.Configured() {
				checks["ai"] = "configured"
			} else {
				checks["ai"] = "fallback-only"
			}
		}

		response.Checks = checks

		statusCode := http.StatusOK
		if response.Status == "unhealthy" {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		json.NewEncoder(w).Encode(response)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// checkDatabase verifies the database connection
func (h *HealthChecker) checkDatabase(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return h.db.PingContext(ctx)
}
