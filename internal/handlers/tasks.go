package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/taskmaster-app/taskmaster-api/internal/database"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
	"github.com/taskmaster-app/taskmaster-api/internal/request"
	"github.com/taskmaster-app/taskmaster-api/internal/validation"
)

// TaskHandler handles task CRUD requests
type TaskHandler struct {
	taskRepo database.TaskRepositoryInterface
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskRepo database.TaskRepositoryInterface) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo}
}

// RegisterRoutes registers task routes on the given router
// The router should already have the /tasks prefix
func (h *TaskHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTasks).Methods("GET")
	r.HandleFunc("", h.CreateTask).Methods("POST")
	r.HandleFunc("/{id}", h.GetTask).Methods("GET")
	r.HandleFunc("/{id}", h.UpdateTask).Methods("PATCH")
	r.HandleFunc("/{id}", h.DeleteTask).Methods("DELETE")
}

// CreateTaskRequest represents a create task request
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents an update task request
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Done        *bool      `json:"done,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// ListTasks lists tasks for the authenticated user, optionally by category
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserIDFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var categoryID *uuid.UUID
	if c := r.URL.Query().Get("category_id"); c != "" {
		parsed, err := uuid.Parse(c)
		if err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid category_id")
			return
		}
		categoryID = &parsed
	}

	tasks, err := h.taskRepo.GetByUserID(r.Context(), userID, categoryID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

// CreateTask creates a task for the authenticated user
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserIDFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	req.Title = validation.SanitizeText(req.Title)
	if req.Title == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "title is required")
		return
	}

	priority := models.PriorityMedium
	if req.Priority != "" {
		if err := validation.ValidatePriority(req.Priority); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		priority = models.Priority(req.Priority)
	}

	task := &models.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: validation.SanitizeText(req.Description),
		Priority:    priority,
		CategoryID:  req.CategoryID,
		DueDate:     req.DueDate,
	}

	if err := h.taskRepo.Create(r.Context(), task); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create task")
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// GetTask retrieves a single task
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserIDFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid task ID")
		return
	}

	task, err := h.taskRepo.GetByID(r.Context(), userID, id)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Task not found")
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// UpdateTask applies partial updates to a task
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserIDFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid task ID")
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	task, err := h.taskRepo.GetByID(r.Context(), userID, id)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Task not found")
		return
	}

	if req.Title != nil {
		title := validation.SanitizeText(*req.Title)
		if title == "" {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "title cannot be empty")
			return
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = validation.SanitizeText(*req.Description)
	}
	if req.Done != nil {
		task.Done = *req.Done
	}
	if req.Priority != nil {
		if err := validation.ValidatePriority(*req.Priority); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		task.Priority = models.Priority(*req.Priority)
	}
	if req.CategoryID != nil {
		task.CategoryID = req.CategoryID
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := h.taskRepo.Update(r.Context(), task); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update task")
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserIDFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid task ID")
		return
	}

	if err := h.taskRepo.Delete(r.Context(), userID, id); err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Task not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
