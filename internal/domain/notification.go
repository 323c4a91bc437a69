package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const NotificationNewApplication = "new_job_application"

// Notification is a stored per-user message. Data is the type-specific payload.
type Notification struct {
	ID        uuid.UUID       `json:"id"`
	UserID    int64           `json:"user_id"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	ReadAt    *time.Time      `json:"read_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewApplicationData is the payload of a new_job_application notification.
type NewApplicationData struct {
	JobID         int64   `json:"job_id"`
	JobTitle      string  `json:"job_title"`
	ApplicantID   int64   `json:"applicant_id"`
	ApplicantName string  `json:"applicant_name"`
	CoverLetter   *string `json:"cover_letter"`
}

// NotificationList splits unread from recently read notifications.
type NotificationList struct {
	Unread []Notification `json:"unread"`
	Read   []Notification `json:"read"`
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	ListUnread(ctx context.Context, userID int64) ([]Notification, error)
	ListRead(ctx context.Context, userID int64, limit int) ([]Notification, error)
	// MarkRead only touches rows owned by userID.
	MarkRead(ctx context.Context, userID int64, id uuid.UUID, at time.Time) error
	MarkAllRead(ctx context.Context, userID int64, at time.Time) (int64, error)
	Delete(ctx context.Context, userID int64, id uuid.UUID) error
}

type NotificationUsecase interface {
	List(ctx context.Context, actor *Actor) (*NotificationList, error)
	MarkRead(ctx context.Context, actor *Actor, id uuid.UUID) error
	MarkAllRead(ctx context.Context, actor *Actor) (int64, error)
	Delete(ctx context.Context, actor *Actor, id uuid.UUID) error
}
