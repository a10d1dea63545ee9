package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
	"github.com/taskmaster-app/taskmaster-api/internal/request"
	"github.com/taskmaster-app/taskmaster-api/internal/services/ai"
)

// ExtractionService is the AI pipeline surface the handlers depend on.
// Declared here so handler tests can substitute a fake.
type ExtractionService interface {
	ParseChecklist(ctx context.Context, text string) (*models.ChecklistDocument, ai.Source)
	RestructureList(ctx context.Context, text string) (*models.CategorizedList, ai.Source)
	GeneratePlan(ctx context.Context, prompt string) (*models.GeneratedPlan, ai.Source)
	Chat(ctx context.Context, history []ai.Turn, message, contextSummary string) (string, *ai.Usage, ai.Source)
	Configured() bool
}

// ImportHandler handles text extraction requests
type ImportHandler struct {
	extractor ExtractionService
}

// NewImportHandler creates a new import handler
func NewImportHandler(extractor ExtractionService) *ImportHandler {
	return &ImportHandler{extractor: extractor}
}

// RegisterRoutes registers extraction routes
func (h *ImportHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/import", h.ImportChecklist).Methods("POST")
	r.HandleFunc("/restructure", h.RestructureList).Methods("POST")
}

// ExtractionRequest carries raw text for either extraction endpoint
type ExtractionRequest struct {
	Text string `json:"text"`
}

// ImportChecklist converts pasted checklist text into structured sections.
// The response always carries a usable document; source reports whether the
// model or the deterministic path produced it.
func (h *ImportHandler) ImportChecklist(w http.ResponseWriter, r *http.Request) {
	if _, ok := request.UserIDFromContext(r); !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req ExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	if req.Text == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "text is required")
		return
	}

	doc, source := h.extractor.ParseChecklist(r.Context(), req.Text)

	respondJSON(w, http.StatusOK, map[string]any{
		"sections": doc.Sections,
		"source":   source,
	})
}

// RestructureList organizes free-form list text into priority buckets
func (h *ImportHandler) RestructureList(w http.ResponseWriter, r *http.Request) {
	if _, ok := request.UserIDFromContext(r); !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req ExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	if req.Text == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "text is required")
		return
	}

	list, source := h.extractor.RestructureList(r.Context(), req.Text)

	respondJSON(w, http.StatusOK, map[string]any{
		"original_count": list.OriginalCount,
		"categories":     list.Categories,
		"suggestions":    list.Suggestions,
		"source":         source,
	})
}
