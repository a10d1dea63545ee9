package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// fakeExecer records executed statements and returns canned results.
// Note: full integration testing of Delete() requires a database; this
// covers the cascade statement logic.
type fakeExecer struct {
	queries      []string
	categoryRows int64
	failTasks    bool
}

type fakeResult struct {
	rows int64
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

func (f *fakeExecer) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	f.queries = append(f.queries, query)
	if strings.Contains(query, "FROM tasks") {
		if f.failTasks {
			return nil, errors.New("injected task delete failure")
		}
		return fakeResult{rows: 3}, nil
	}
	return fakeResult{rows: f.categoryRows}, nil
}

func TestDeleteCategoryCascade(t *testing.T) {
	t.Parallel()

	t.Run("deletes tasks before the category", func(t *testing.T) {
		t.Parallel()

		ex := &fakeExecer{categoryRows: 1}
		err := deleteCategoryCascade(context.Background(), ex, uuid.New(), uuid.New())
		if err != nil {
			t.Fatalf("deleteCategoryCascade failed: %v", err)
		}

		if len(ex.queries) != 2 {
			t.Fatalf("Expected 2 statements, got %d", len(ex.queries))
		}
		if !strings.Contains(ex.queries[0], "DELETE FROM tasks") {
			t.Errorf("Expected first statement to delete tasks, got %q", ex.queries[0])
		}
		if !strings.Contains(ex.queries[1], "DELETE FROM categories") {
			t.Errorf("Expected second statement to delete the category, got %q", ex.queries[1])
		}
	})

	t.Run("missing category is an error", func(t *testing.T) {
		t.Parallel()

		ex := &fakeExecer{categoryRows: 0}
		err := deleteCategoryCascade(context.Background(), ex, uuid.New(), uuid.New())
		if err == nil {
			t.Fatal("Expected error for missing category")
		}
	})

	t.Run("task delete failure aborts", func(t *testing.T) {
		t.Parallel()

		ex := &fakeExecer{categoryRows: 1, failTasks: true}
		err := deleteCategoryCascade(context.Background(), ex, uuid.New(), uuid.New())
		if err == nil {
			t.Fatal("Expected error from failed task delete")
		}
		if len(ex.queries) != 1 {
			t.Errorf("Expected no category delete after task failure, got %d statements", len(ex.queries))
		}
	})
}
