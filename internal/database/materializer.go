package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
	"go.uber.org/zap"
)

// Tx is the set of writes a plan materialization performs. All of a
// materialization's calls happen inside one transaction, so either every
// entity lands or none do.
type Tx interface {
	// OwnerCategories returns the user's existing categories keyed by name.
	// Names match case-sensitively.
	OwnerCategories(ctx context.Context, userID uuid.UUID) (map[string]uuid.UUID, error)
	// CreateCategory inserts a category unless one with the same (user, name)
	// already exists. Either way category.ID holds the row's id afterward;
	// created reports whether this call inserted it.
	CreateCategory(ctx context.Context, category *models.Category) (created bool, err error)
	// CreateTask inserts a task. Tasks are never deduplicated.
	CreateTask(ctx context.Context, task *models.Task) error
	// CreateMessage inserts a chat message.
	CreateMessage(ctx context.Context, message *models.Message) error
}

// TxRunner runs a function inside a transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
}

// MaterializeResult reports what one plan materialization committed.
type MaterializeResult struct {
	Categories        []*models.Category `json:"categories"`
	Tasks             []*models.Task     `json:"tasks"`
	CategoriesCreated int                `json:"categories_created"`
	TasksCreated      int                `json:"tasks_created"`
}

// Materializer converts generated plans into persisted categories and tasks.
type Materializer struct {
	runner TxRunner
	logger *zap.Logger
}

// NewMaterializer creates a materializer over the given transaction runner.
func NewMaterializer(runner TxRunner, logger *zap.Logger) *Materializer {
	return &Materializer{runner: runner, logger: logger}
}

// Materialize persists a plan's categories and tasks atomically.
func (m *Materializer) Materialize(ctx context.Context, userID uuid.UUID, plan *models.GeneratedPlan) (*MaterializeResult, error) {
	var result *MaterializeResult
	err := m.runner.RunInTx(ctx, func(tx Tx) error {
		var txErr error
		result, txErr = m.MaterializeTx(ctx, tx, userID, plan)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MaterializeTx persists a plan's entities using an already-open transaction,
// so callers can commit the plan together with other writes in one unit.
//
// Categories dedupe against the user's existing set by exact name; a reused
// category does not count as created. Tasks are inserted unconditionally with
// defaults filled for missing fields, and a task naming an unknown category
// lands uncategorized rather than failing the whole plan.
func (m *Materializer) MaterializeTx(ctx context.Context, tx Tx, userID uuid.UUID, plan *models.GeneratedPlan) (*MaterializeResult, error) {
	result := &MaterializeResult{}
	if plan == nil {
		return result, nil
	}

	existing, err := tx.OwnerCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	for _, planCategory := range plan.Categories {
		if _, ok := existing[planCategory.Name]; ok {
			continue
		}

		color := planCategory.Color
		if color == "" {
			color = models.DefaultCategoryColor
		}
		category := &models.Category{
			ID:     uuid.New(),
			UserID: userID,
			Name:   planCategory.Name,
			Color:  color,
		}

		created, err := tx.CreateCategory(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("failed to create category %q: %w", planCategory.Name, err)
		}
		existing[category.Name] = category.ID
		if created {
			result.Categories = append(result.Categories, category)
			result.CategoriesCreated++
		}
	}

	for _, planTask := range plan.Tasks {
		priority := models.Priority(planTask.Priority)
		if !priority.Valid() {
			priority = models.PriorityMedium
		}

		task := &models.Task{
			ID:          uuid.New(),
			UserID:      userID,
			Title:       planTask.Title,
			Description: planTask.Description,
			Priority:    priority,
		}
		if planTask.CategoryName != "" {
			if id, ok := existing[planTask.CategoryName]; ok {
				categoryID := id
				task.CategoryID = &categoryID
			}
		}

		if err := tx.CreateTask(ctx, task); err != nil {
			return nil, fmt.Errorf("failed to create task %q: %w", planTask.Title, err)
		}
		result.Tasks = append(result.Tasks, task)
		result.TasksCreated++
	}

	if m.logger != nil {
		m.logger.Info("plan_materialized",
			zap.String("user_id", userID.String()),
			zap.Int("categories_created", result.CategoriesCreated),
			zap.Int("tasks_created", result.TasksCreated),
		)
	}

	return result, nil
}

// sqlTx implements Tx over a live *sql.Tx.
type sqlTx struct {
	tx *sql.Tx
}

// SQLRunner adapts *DB to the TxRunner interface.
type SQLRunner struct {
	db *DB
}

// NewSQLRunner creates a TxRunner backed by the database.
func NewSQLRunner(db *DB) *SQLRunner {
	return &SQLRunner{db: db}
}

// RunInTx runs fn inside a database transaction.
func (r *SQLRunner) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	return r.db.RunInTx(ctx, func(tx *sql.Tx) error {
		return fn(&sqlTx{tx: tx})
	})
}

func (t *sqlTx) OwnerCategories(ctx context.Context, userID uuid.UUID) (map[string]uuid.UUID, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT id, name FROM categories WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make(map[string]uuid.UUID)
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// CreateCategory races safely against concurrent inserts of the same name:
// ON CONFLICT DO NOTHING plus a reselect means the loser adopts the winner's
// row instead of failing.
func (t *sqlTx) CreateCategory(ctx context.Context, category *models.Category) (bool, error) {
	var id uuid.UUID
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO categories (id, user_id, name, color, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, name) DO NOTHING
		RETURNING id
	`, category.ID, category.UserID, category.Name, category.Color, time.Now()).Scan(&id)

	if err == nil {
		category.ID = id
		return true, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to insert category: %w", err)
	}

	err = t.tx.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE user_id = $1 AND name = $2`,
		category.UserID, category.Name,
	).Scan(&id)
	if err != nil {
		return false, fmt.Errorf("failed to reselect category: %w", err)
	}

	category.ID = id
	return false, nil
}

func (t *sqlTx) CreateTask(ctx context.Context, task *models.Task) error {
	now := time.Now()
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, title, description, done, priority, category_id, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, task.ID, task.UserID, task.Title, task.Description, task.Done, task.Priority, task.CategoryID, task.DueDate, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

func (t *sqlTx) CreateMessage(ctx context.Context, message *models.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	now := time.Now()
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO messages (id, user_id, role, content, session_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, message.ID, message.UserID, message.Role, message.Content, message.SessionID, now)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	message.CreatedAt = now
	return nil
}
