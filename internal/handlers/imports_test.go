package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
	"github.com/taskmaster-app/taskmaster-api/internal/request"
	"github.com/taskmaster-app/taskmaster-api/internal/services/ai"
)

func extractionRequest(t *testing.T, userID uuid.UUID, path, body string) *http.Request {
	t.Helper()

	r := httptest.NewRequest("POST", path, bytes.NewReader([]byte(body)))
	return r.WithContext(request.WithUserID(r.Context(), userID))
}

func TestImportChecklist(t *testing.T) {
	t.Parallel()

	handler := NewImportHandler(&fakeExtractor{
		doc: &models.ChecklistDocument{
			Sections: []models.ChecklistSection{
				{ID: 1, Title: "Planning", OwnerStatus: models.StatusNotSpecified, ReviewerStatus: models.StatusNotSpecified},
			},
		},
		docSource: ai.SourceFallback,
	})

	t.Run("returns document and source", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		handler.ImportChecklist(w, extractionRequest(t, uuid.New(), "/ai/import", `{"text":"1. Planning"}`))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		data := decodeData(t, w)
		if data["source"] != "fallback" {
			t.Errorf("Expected source fallback, got %v", data["source"])
		}
		sections, ok := data["sections"].([]any)
		if !ok || len(sections) != 1 {
			t.Fatalf("Expected 1 section, got %v", data["sections"])
		}
	})

	t.Run("missing identity", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/ai/import", bytes.NewReader([]byte(`{"text":"x"}`)))
		w := httptest.NewRecorder()
		handler.ImportChecklist(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		handler.ImportChecklist(w, extractionRequest(t, uuid.New(), "/ai/import", `{"text":""}`))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		handler.ImportChecklist(w, extractionRequest(t, uuid.New(), "/ai/import", `not json`))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestRestructureList(t *testing.T) {
	t.Parallel()

	handler := NewImportHandler(&fakeExtractor{
		list: &models.CategorizedList{
			OriginalCount: 2,
			Categories: &models.CategoryBuckets{
				Urgent: []string{"fix outage"},
				Misc:   []string{"water plants"},
			},
			Suggestions: []string{"You have 1 urgent items that need immediate attention"},
		},
		listSource: ai.SourceModel,
	})

	w := httptest.NewRecorder()
	handler.RestructureList(w, extractionRequest(t, uuid.New(), "/ai/restructure", `{"text":"fix outage\nwater plants"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)
	if data["original_count"] != float64(2) {
		t.Errorf("Expected original_count 2, got %v", data["original_count"])
	}
	if data["source"] != "model" {
		t.Errorf("Expected source model, got %v", data["source"])
	}
	if _, ok := data["categories"].(map[string]any); !ok {
		t.Errorf("Expected categories object, got %v", data["categories"])
	}
}
