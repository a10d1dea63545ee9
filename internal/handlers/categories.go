package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/taskmaster-app/taskmaster-api/internal/database"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
	"github.com/taskmaster-app/taskmaster-api/internal/request"
	"github.com/taskmaster-app/taskmaster-api/internal/validation"
)

// CategoryHandler handles category CRUD requests
type CategoryHandler struct {
	categoryRepo database.CategoryRepositoryInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryRepo database.CategoryRepositoryInterface) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo}
}

// RegisterRoutes registers category routes on the given router
// The router should already have the /categories prefix
func (h *CategoryHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListCategories).Methods("GET")
	r.HandleFunc("", h.CreateCategory).Methods("POST")
	r.HandleFunc("/{id}", h.UpdateCategory).Methods("PATCH")
	r.HandleFunc("/{id}", h.DeleteCategory).Methods("DELETE")
}

// CategoryRequest represents a create or update category request
type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListCategories lists categories for the authenticated user
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserIDFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	categories, err := h.categoryRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to list categories")
		return
	}
	if categories == nil {
		categories = []*models.Category{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// CreateCategory creates a category for the authenticated user
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserIDFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	req.Name = validation.SanitizeText(req.Name)
	if req.Name == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "name is required")
		return
	}

	category := &models.Category{
		UserID: userID,
		Name:   req.Name,
		Color:  req.Color,
	}

	if err := h.categoryRepo.Create(r.Context(), category); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create category")
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

// UpdateCategory updates a category's name or color
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserIDFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid category ID")
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	category, err := h.categoryRepo.GetByID(r.Context(), userID, id)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Category not found")
		return
	}

	if req.Name != "" {
		category.Name = validation.SanitizeText(req.Name)
	}
	if req.Color != "" {
		category.Color = req.Color
	}

	if err := h.categoryRepo.Update(r.Context(), category); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update category")
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// DeleteCategory deletes a category along with all of its tasks
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserIDFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid category ID")
		return
	}

	if err := h.categoryRepo.Delete(r.Context(), userID, id); err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Category not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
