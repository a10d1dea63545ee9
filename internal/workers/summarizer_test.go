package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
	"github.com/taskmaster-app/taskmaster-api/internal/queue"
	"github.com/taskmaster-app/taskmaster-api/internal/services/ai"
)

type stubSummarizer struct {
	summary    string
	err        error
	gotHistory []ai.Turn
}

func (s *stubSummarizer) Summarize(_ context.Context, history []ai.Turn) (string, error) {
	s.gotHistory = history
	return s.summary, s.err
}

type stubMessageRepo struct {
	messages []*models.Message
	err      error
}

func (s *stubMessageRepo) Create(_ context.Context, _ *models.Message) error { return nil }

func (s *stubMessageRepo) GetRecent(_ context.Context, _ uuid.UUID, _ int) ([]*models.Message, error) {
	return s.messages, s.err
}

type stubSummaryRepo struct {
	upserted *models.ConversationSummary
	err      error
}

func (s *stubSummaryRepo) Upsert(_ context.Context, summary *models.ConversationSummary) error {
	s.upserted = summary
	return s.err
}

func (s *stubSummaryRepo) GetByUserID(_ context.Context, _ uuid.UUID) (*models.ConversationSummary, error) {
	return nil, nil
}

func TestProcessSummaryJob(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	history := []*models.Message{
		{UserID: userID, Role: models.RoleUser, Content: "add a task for tomorrow"},
		{UserID: userID, Role: models.RoleAssistant, Content: "Done."},
	}

	t.Run("stores summary", func(t *testing.T) {
		t.Parallel()

		summarizer := &stubSummarizer{summary: "User is planning tomorrow's work."}
		summaryRepo := &stubSummaryRepo{}
		worker := NewSummaryWorker(summarizer, &stubMessageRepo{messages: history}, summaryRepo)

		err := worker.ProcessSummaryJob(context.Background(), queue.NewConversationSummaryJob(userID, 0))
		if err != nil {
			t.Fatalf("ProcessSummaryJob failed: %v", err)
		}

		if len(summarizer.gotHistory) != 2 {
			t.Errorf("Expected 2 turns passed to summarizer, got %d", len(summarizer.gotHistory))
		}
		if summaryRepo.upserted == nil {
			t.Fatal("Expected summary to be stored")
		}
		if summaryRepo.upserted.UserID != userID {
			t.Errorf("Summary stored for wrong user: %s", summaryRepo.upserted.UserID)
		}
		if summaryRepo.upserted.Summary != "User is planning tomorrow's work." {
			t.Errorf("Unexpected stored summary %q", summaryRepo.upserted.Summary)
		}
	})

	t.Run("no messages is a no-op", func(t *testing.T) {
		t.Parallel()

		summaryRepo := &stubSummaryRepo{}
		worker := NewSummaryWorker(&stubSummarizer{summary: "unused"}, &stubMessageRepo{}, summaryRepo)

		err := worker.ProcessSummaryJob(context.Background(), queue.NewConversationSummaryJob(userID, 0))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if summaryRepo.upserted != nil {
			t.Error("Expected no summary stored for empty history")
		}
	})

	t.Run("empty summary keeps previous", func(t *testing.T) {
		t.Parallel()

		summaryRepo := &stubSummaryRepo{}
		worker := NewSummaryWorker(&stubSummarizer{summary: ""}, &stubMessageRepo{messages: history}, summaryRepo)

		err := worker.ProcessSummaryJob(context.Background(), queue.NewConversationSummaryJob(userID, 0))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if summaryRepo.upserted != nil {
			t.Error("Expected empty summary not to overwrite the stored one")
		}
	})

	t.Run("summarizer failure propagates", func(t *testing.T) {
		t.Parallel()

		summarizer := &stubSummarizer{err: errors.New("model unavailable")}
		worker := NewSummaryWorker(summarizer, &stubMessageRepo{messages: history}, &stubSummaryRepo{})

		err := worker.ProcessSummaryJob(context.Background(), queue.NewConversationSummaryJob(userID, 0))
		if err == nil {
			t.Fatal("Expected error from failed summarization")
		}
	})

	t.Run("history load failure propagates", func(t *testing.T) {
		t.Parallel()

		worker := NewSummaryWorker(&stubSummarizer{}, &stubMessageRepo{err: errors.New("db down")}, &stubSummaryRepo{})

		err := worker.ProcessSummaryJob(context.Background(), queue.NewConversationSummaryJob(userID, 0))
		if err == nil {
			t.Fatal("Expected error from failed history load")
		}
	})
}
