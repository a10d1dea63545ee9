package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
)

// TaskRepository handles task database operations
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, done, priority, category_id, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Done,
		task.Priority,
		task.CategoryID,
		task.DueDate,
		now,
		now,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByUserID retrieves all tasks for a user, optionally filtered by category
func (r *TaskRepository) GetByUserID(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, title, description, done, priority, category_id, due_date, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
	`
	args := []any{userID}

	if categoryID != nil {
		query += " AND category_id = $2"
		args = append(args, *categoryID)
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// GetByID retrieves a task by ID, scoped to its owner
func (r *TaskRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Task, error) {
	task := &models.Task{}
	var categoryID uuid.NullUUID
	var dueDate sql.NullTime

	query := `
		SELECT id, user_id, title, description, done, priority, category_id, due_date, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Done,
		&task.Priority,
		&categoryID,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if categoryID.Valid {
		task.CategoryID = &categoryID.UUID
	}
	if dueDate.Valid {
		task.DueDate = &dueDate.Time
	}

	return task, nil
}

// Update updates an existing task, scoped to its owner
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $3, description = $4, done = $5, priority = $6, category_id = $7, due_date = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Done,
		task.Priority,
		task.CategoryID,
		task.DueDate,
		time.Now(),
	).Scan(&task.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("task not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// Delete deletes a task by ID, scoped to its owner
func (r *TaskRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("task not found")
	}

	return nil
}

func scanTask(rows *sql.Rows) (*models.Task, error) {
	task := &models.Task{}
	var categoryID uuid.NullUUID
	var dueDate sql.NullTime

	err := rows.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Done,
		&task.Priority,
		&categoryID,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}

	if categoryID.Valid {
		task.CategoryID = &categoryID.UUID
	}
	if dueDate.Valid {
		task.DueDate = &dueDate.Time
	}

	return task, nil
}
