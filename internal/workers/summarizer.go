package workers

import (
	"context"
	"fmt"
	"log"

	"github.com/taskmaster-app/taskmaster-api/internal/database"
	"github.com/taskmaster-app/taskmaster-api/internal/models"
	"github.com/taskmaster-app/taskmaster-api/internal/queue"
	"github.com/taskmaster-app/taskmaster-api/internal/services/ai"
)

// summaryHistoryLimit is how many recent messages feed one summarization.
const summaryHistoryLimit = 20

// ContextSummarizer condenses a conversation into a short summary.
type ContextSummarizer interface {
	Summarize(ctx context.Context, history []ai.Turn) (string, error)
}

// SummaryWorker processes conversation summary jobs
type SummaryWorker struct {
	summarizer  ContextSummarizer
	messageRepo database.MessageRepositoryInterface
	summaryRepo database.SummaryRepositoryInterface
}

// NewSummaryWorker creates a new summary worker
func NewSummaryWorker(
	summarizer ContextSummarizer,
	messageRepo database.MessageRepositoryInterface,
	summaryRepo database.SummaryRepositoryInterface,
) *SummaryWorker {
	return &SummaryWorker{
		summarizer:  summarizer,
		messageRepo: messageRepo,
		summaryRepo: summaryRepo,
	}
}

// ProcessSummaryJob condenses a user's recent conversation into a stored
// context summary. A user with no messages yet is a no-op, not an error.
func (w *SummaryWorker) ProcessSummaryJob(ctx context.Context, job *queue.Job) error {
	messages, err := w.messageRepo.GetRecent(ctx, job.UserID, summaryHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}
	if len(messages) == 0 {
		log.Printf("No messages to summarize for user %s, skipping", job.UserID)
		return nil
	}

	history := make([]ai.Turn, 0, len(messages))
	for _, message := range messages {
		history = append(history, ai.Turn{
			Role:    string(message.Role),
			Content: message.Content,
		})
	}

	summary, err := w.summarizer.Summarize(ctx, history)
	if err != nil {
		return fmt.Errorf("failed to summarize conversation: %w", err)
	}
	if summary == "" {
		log.Printf("Empty summary for user %s, keeping previous one", job.UserID)
		return nil
	}

	err = w.summaryRepo.Upsert(ctx, &models.ConversationSummary{
		UserID:  job.UserID,
		Summary: summary,
	})
	if err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}

	log.Printf("Summarized %d messages for user %s", len(messages), job.UserID)
	return nil
}

// ProcessJob processes a job based on its type
func (w *SummaryWorker) ProcessJob(ctx context.Context, msg *queue.Message) error {
	job := msg.Job

	switch job.Type {
	case queue.JobTypeConversationSummary:
		if err := w.ProcessSummaryJob(ctx, job); err != nil {
			return w.handleJobError(msg, job, err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	default:
		if nackErr := msg.Nack(false); nackErr != nil { // Unknown job type, send to DLQ
			log.Printf("Failed to nack unknown job type: %v", nackErr)
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// handleJobError retries failed jobs until MaxRetries, then dead-letters them
func (w *SummaryWorker) handleJobError(msg *queue.Message, job *queue.Job, err error) error {
	if job.CanRetry() {
		job.IncrementRetry()
		log.Printf("Summary job %s failed (attempt %d/%d): %v, will retry",
			job.ID, job.RetryCount, job.MaxRetries, err)
		if nackErr := msg.Nack(true); nackErr != nil {
			log.Printf("Failed to nack job: %v", nackErr)
		}
		return fmt.Errorf("job failed (will retry): %w", err)
	}

	log.Printf("Summary job %s failed after %d retries: %v, sending to DLQ",
		job.ID, job.MaxRetries, err)
	if nackErr := msg.Nack(false); nackErr != nil {
		log.Printf("Failed to nack job to DLQ: %v", nackErr)
	}
	return fmt.Errorf("job failed (max retries): %w", err)
}
