package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false}`))
	})

	r := httptest.NewRequest("GET", "/api/v1/tasks/123e4567-e89b-12d3-a456-426614174000", nil)
	w := httptest.NewRecorder()
	Logging(zap.New(core))(next).ServeHTTP(w, r)

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 request log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()

	if got := fields["status_code"]; got != int64(http.StatusNotFound) {
		t.Errorf("Expected status_code 404, got %v", got)
	}
	if got := fields["response_bytes"]; got != int64(len(`{"success":false}`)) {
		t.Errorf("Expected response_bytes %d, got %v", len(`{"success":false}`), got)
	}
	if got := fields["path"]; got != "/api/v1/tasks/123e4567-e89b-12d3-a456-426614174000" {
		t.Errorf("Expected request path, got %v", got)
	}
	if got := fields["client_ip"]; got == "" {
		t.Error("Expected client_ip to be logged")
	}
}
