package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageRole identifies who produced a chat message
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one persisted turn of a user's chat history.
type Message struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	SessionID string      `json:"session_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// ConversationSummary is the rolling model-written summary of a user's chat
// history, refreshed by the background worker and fed back into the chat
// system prompt.
type ConversationSummary struct {
	UserID    uuid.UUID `json:"user_id"`
	Summary   string    `json:"summary"`
	UpdatedAt time.Time `json:"updated_at"`
}
