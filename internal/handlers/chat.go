package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/taskmaster-app/taskmaster-api/internal/database"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
	"github.com/taskmaster-app/taskmaster-api/internal/queue"
	"github.com/taskmaster-app/taskmaster-api/internal/request"
	"github.com/taskmaster-app/taskmaster-api/internal/services/ai"
	"go.uber.org/zap"
)

// summaryDebounce spaces out background summarizations so a burst of chat
// turns enqueues work once, not per message.
const summaryDebounce = 2 * time.Minute

// ChatHandler handles AI chat requests
type ChatHandler struct {
	extractor    ExtractionService
	messageRepo  database.MessageRepositoryInterface
	summaryRepo  database.SummaryRepositoryInterface
	runner       database.TxRunner
	materializer *database.Materializer
	jobQueue     queue.JobQueue
	logger       *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	extractor ExtractionService,
	messageRepo database.MessageRepositoryInterface,
	summaryRepo database.SummaryRepositoryInterface,
	runner database.TxRunner,
	materializer *database.Materializer,
	jobQueue queue.JobQueue,
	logger *zap.Logger,
) *ChatHandler {
	return &ChatHandler{
		extractor:    extractor,
		messageRepo:  messageRepo,
		summaryRepo:  summaryRepo,
		runner:       runner,
		materializer: materializer,
		jobQueue:     jobQueue,
		logger:       logger,
	}
}

// RegisterRoutes registers chat routes
func (h *ChatHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/chat", h.SendMessage).Methods("POST")
}

// ChatRequest represents a chat message request
type ChatRequest struct {
	Message       string `json:"message"`
	GenerateTasks bool   `json:"generate_tasks"`
}

// ChatResponse represents a chat reply, optionally with materialized entities
type ChatResponse struct {
	Reply             string             `json:"reply"`
	Source            ai.Source          `json:"source"`
	Usage             *ai.Usage          `json:"usage,omitempty"`
	TasksCreated      int                `json:"tasks_created"`
	CategoriesCreated int                `json:"categories_created"`
	Tasks             []*models.Task     `json:"tasks,omitempty"`
	Categories        []*models.Category `json:"categories,omitempty"`
}

// SendMessage handles one chat turn. The reply itself never fails: a model
// fault degrades to a canned answer. Persistence is the one hard failure
// mode, and it is atomic: the user message, the assistant reply, and any
// generated plan commit together or not at all.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserIDFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	if req.Message == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "message is required")
		return
	}

	ctx := r.Context()

	history, err := h.messageRepo.GetRecent(ctx, userID, database.RecentMessageLimit)
	if err != nil {
		h.logger.Error("failed_to_load_history", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load conversation history")
		return
	}

	turns := make([]ai.Turn, 0, len(history))
	for _, message := range history {
		turns = append(turns, ai.Turn{Role: string(message.Role), Content: message.Content})
	}

	var contextSummary string
	if summary, err := h.summaryRepo.GetByUserID(ctx, userID); err == nil && summary != nil {
		contextSummary = summary.Summary
	}

	reply, usage, source := h.extractor.Chat(ctx, turns, req.Message, contextSummary)

	var plan *models.GeneratedPlan
	if req.GenerateTasks {
		plan, _ = h.extractor.GeneratePlan(ctx, req.Message)
	}

	response := ChatResponse{
		Reply:  reply,
		Source: source,
		Usage:  usage,
	}

	err = h.runner.RunInTx(ctx, func(tx database.Tx) error {
		userMsg := &models.Message{UserID: userID, Role: models.RoleUser, Content: req.Message}
		if err := tx.CreateMessage(ctx, userMsg); err != nil {
			return err
		}
		assistantMsg := &models.Message{UserID: userID, Role: models.RoleAssistant, Content: reply}
		if err := tx.CreateMessage(ctx, assistantMsg); err != nil {
			return err
		}

		if plan != nil {
			result, err := h.materializer.MaterializeTx(ctx, tx, userID, plan)
			if err != nil {
				return err
			}
			response.TasksCreated = result.TasksCreated
			response.CategoriesCreated = result.CategoriesCreated
			response.Tasks = result.Tasks
			response.Categories = result.Categories
		}

		return nil
	})
	if err != nil {
		h.logger.Error("failed_to_save_chat_turn",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error",
			"Failed to save conversation; nothing was created")
		return
	}

	h.enqueueSummaryJob(ctx, userID)

	respondJSON(w, http.StatusOK, response)
}

// enqueueSummaryJob schedules a debounced background summarization. Failure
// here is logged and swallowed; the chat turn already committed.
func (h *ChatHandler) enqueueSummaryJob(ctx context.Context, userID uuid.UUID) {
	if h.jobQueue == nil {
		return
	}

	job := queue.NewConversationSummaryJob(userID, summaryDebounce)
	if err := h.jobQueue.Enqueue(ctx, job); err != nil {
		h.logger.Warn("failed_to_enqueue_summary_job",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}
