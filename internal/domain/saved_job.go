package domain

import (
	"context"
	"time"
)

type SavedJob struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	JobID     int64     `json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
	Job       *Job      `json:"job,omitempty"`
}

type SavedJobRepository interface {
	// Save is idempotent; saving twice keeps one row.
	Save(ctx context.Context, userID, jobID int64) (*SavedJob, error)
	Remove(ctx context.Context, userID, jobID int64) error
	ListByUser(ctx context.Context, userID int64, page Page) ([]SavedJob, int64, error)
}

type SavedJobUsecase interface {
	Save(ctx context.Context, actor *Actor, jobID int64) (*SavedJob, error)
	Remove(ctx context.Context, actor *Actor, jobID int64) error
	List(ctx context.Context, actor *Actor, page Page) (*PaginatedResult[SavedJob], error)
}
