package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
)

// CategoryRepository handles category database operations
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, color, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.Color == "" {
		category.Color = models.DefaultCategoryColor
	}

	err := r.db.QueryRowContext(ctx, query,
		category.ID,
		category.UserID,
		category.Name,
		category.Color,
		time.Now(),
	).Scan(&category.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByUserID retrieves all categories for a user
func (r *CategoryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Category, error) {
	query := `
		SELECT id, user_id, name, color, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		err := rows.Scan(
			&category.ID,
			&category.UserID,
			&category.Name,
			&category.Color,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a category by ID, scoped to its owner
func (r *CategoryRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Category, error) {
	category := &models.Category{}

	query := `
		SELECT id, user_id, name, color, created_at
		FROM categories
		WHERE id = $1 AND user_id = $2
	`

	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.Color,
		&category.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// Update updates a category's name and color, scoped to its owner
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $3, color = $4
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.UserID,
		category.Name,
		category.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category not found")
	}

	return nil
}

// Delete removes a category and every task in it, scoped to the owner.
// Tasks die with their category; both deletes share one transaction so a
// fault leaves neither half applied.
func (r *CategoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.RunInTx(ctx, func(tx *sql.Tx) error {
		return deleteCategoryCascade(ctx, tx, userID, id)
	})
}

// execer is the statement surface cascade deletion needs, satisfied by
// *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func deleteCategoryCascade(ctx context.Context, ex execer, userID, id uuid.UUID) error {
	_, err := ex.ExecContext(ctx,
		`DELETE FROM tasks WHERE category_id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete category tasks: %w", err)
	}

	result, err := ex.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category not found")
	}

	return nil
}
