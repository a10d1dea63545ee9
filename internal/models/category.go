package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is used when a generated category carries no color.
const DefaultCategoryColor = "#000000"

// Category groups tasks for a single user. Names are unique per user
// (case-sensitive); the database constraint is the source of truth.
type Category struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
