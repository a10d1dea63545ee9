package queue

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestNewJob(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	job := NewJob(JobTypeConversationSummary, userID)

	if job.ID == uuid.Nil {
		t.Error("Expected job ID to be set")
	}
	if job.Type != JobTypeConversationSummary {
		t.Errorf("Expected job type to be %s, got %s", JobTypeConversationSummary, job.Type)
	}
	if job.UserID != userID {
		t.Errorf("Expected user ID to be %s, got %s", userID, job.UserID)
	}
	if job.Metadata == nil {
		t.Error("Expected metadata to be initialized")
	}
	if job.RetryCount != 0 {
		t.Errorf("Expected retry count to be 0, got %d", job.RetryCount)
	}
	if job.MaxRetries != 3 {
		t.Errorf("Expected max retries to be 3, got %d", job.MaxRetries)
	}
}

func TestNewConversationSummaryJob(t *testing.T) {
	t.Parallel()

	t.Run("with delay", func(t *testing.T) {
		t.Parallel()

		job := NewConversationSummaryJob(uuid.New(), 2*time.Minute)
		if job.NotBefore == nil {
			t.Fatal("Expected NotBefore to be set")
		}
		if job.NotBefore.Before(time.Now().Add(time.Minute)) {
			t.Error("Expected NotBefore roughly delay in the future")
		}
		if job.ShouldProcess() {
			t.Error("Expected debounced job to not be due yet")
		}
	})

	t.Run("without delay", func(t *testing.T) {
		t.Parallel()

		job := NewConversationSummaryJob(uuid.New(), 0)
		if job.NotBefore != nil {
			t.Error("Expected no NotBefore for immediate job")
		}
		if !job.ShouldProcess() {
			t.Error("Expected immediate job to be due")
		}
	})
}

func TestJob_ShouldProcess(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name string
		job  *Job
		want bool
	}{
		{
			name: "no time constraints",
			job:  &Job{ID: uuid.New(), Type: JobTypeConversationSummary},
			want: true,
		},
		{
			name: "not before in past",
			job:  &Job{ID: uuid.New(), NotBefore: timePtr(now.Add(-1 * time.Hour))},
			want: true,
		},
		{
			name: "not before in future",
			job:  &Job{ID: uuid.New(), NotBefore: timePtr(now.Add(1 * time.Hour))},
			want: false,
		},
		{
			name: "not after in past",
			job:  &Job{ID: uuid.New(), NotAfter: timePtr(now.Add(-1 * time.Hour))},
			want: false,
		},
		{
			name: "within window",
			job: &Job{
				ID:        uuid.New(),
				NotBefore: timePtr(now.Add(-1 * time.Hour)),
				NotAfter:  timePtr(now.Add(1 * time.Hour)),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.job.ShouldProcess(); got != tt.want {
				t.Errorf("ShouldProcess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJob_IsExpired(t *testing.T) {
	t.Parallel()

	job := &Job{ID: uuid.New()}
	if job.IsExpired() {
		t.Error("Expected job without NotAfter to never expire")
	}

	job.NotAfter = timePtr(time.Now().Add(-time.Minute))
	if !job.IsExpired() {
		t.Error("Expected job past NotAfter to be expired")
	}
}

func TestJob_Retry(t *testing.T) {
	t.Parallel()

	job := NewJob(JobTypeConversationSummary, uuid.New())

	for i := 0; i < job.MaxRetries; i++ {
		if !job.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i+1)
		}
		job.IncrementRetry()
	}
	if job.CanRetry() {
		t.Error("Expected no retries left after max")
	}
}
