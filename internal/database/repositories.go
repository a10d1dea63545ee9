package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
)

// CategoryRepositoryInterface defines the interface for category repository operations
// This interface enables better testability by allowing mock implementations
type CategoryRepositoryInterface interface {
	Create(ctx context.Context, category *models.Category) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Category, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	GetByUserID(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]*models.Task, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// MessageRepositoryInterface defines the interface for message repository operations
type MessageRepositoryInterface interface {
	Create(ctx context.Context, message *models.Message) error
	GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Message, error)
}

// SummaryRepositoryInterface defines the interface for conversation summary operations
type SummaryRepositoryInterface interface {
	Upsert(ctx context.Context, summary *models.ConversationSummary) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.ConversationSummary, error)
}

// Ensure concrete types implement the interfaces
var (
	_ CategoryRepositoryInterface = (*CategoryRepository)(nil)
	_ TaskRepositoryInterface     = (*TaskRepository)(nil)
	_ MessageRepositoryInterface  = (*MessageRepository)(nil)
	_ SummaryRepositoryInterface  = (*SummaryRepository)(nil)
	_ TxRunner                    = (*SQLRunner)(nil)
	_ Tx                          = (*sqlTx)(nil)
)
