package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
)

// RecentMessageLimit bounds how much conversation history feeds a chat turn.
const RecentMessageLimit = 10

// MessageRepository handles chat message database operations
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create persists a single chat message
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (id, user_id, role, content, session_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		message.ID,
		message.UserID,
		message.Role,
		message.Content,
		message.SessionID,
		time.Now(),
	).Scan(&message.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetRecent retrieves a user's most recent messages in chronological order.
// The query reads newest-first for the index, then the slice is reversed so
// callers can feed it to the model as-is.
func (r *MessageRepository) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = RecentMessageLimit
	}

	query := `
		SELECT id, user_id, role, content, session_id, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		message := &models.Message{}
		err := rows.Scan(
			&message.ID,
			&message.UserID,
			&message.Role,
			&message.Content,
			&message.SessionID,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
