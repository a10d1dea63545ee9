package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
)

// SummaryRepository handles conversation summary database operations
type SummaryRepository struct {
	db *DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Upsert writes a user's conversation summary, replacing any previous one
func (r *SummaryRepository) Upsert(ctx context.Context, summary *models.ConversationSummary) error {
	query := `
		INSERT INTO conversation_summaries (user_id, summary, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET summary = $2, updated_at = $3
	`

	_, err := r.db.ExecContext(ctx, query, summary.UserID, summary.Summary, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert summary: %w", err)
	}

	return nil
}

// GetByUserID retrieves a user's conversation summary. A user with no
// summary yet gets nil, not an error.
func (r *SummaryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.ConversationSummary, error) {
	summary := &models.ConversationSummary{}

	query := `
		SELECT user_id, summary, updated_at
		FROM conversation_summaries
		WHERE user_id = $1
	`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&summary.UserID,
		&summary.Summary,
		&summary.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	return summary, nil
}
