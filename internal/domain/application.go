package domain

import (
	"context"
	"time"
)

// Application status constants
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusReviewed = "reviewed"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application is identified by the pair (JobID, UserID).
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	UserID      int64     `json:"user_id"`
	CoverLetter *string   `json:"cover_letter"`
	ResumeURL   *string   `json:"resume_url"`
	ResumePath  *string   `json:"resume_path"`
	Status      string    `json:"status"` // pending → reviewed → accepted / rejected
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Owner of the job, loaded with the row for authorization.
	JobEmployerID int64 `json:"-"`

	// Joined data for list responses
	JobTitle       *string `json:"job_title,omitempty"`
	ApplicantName  *string `json:"applicant_name,omitempty"`
	ApplicantEmail *string `json:"applicant_email,omitempty"`
}

func ValidApplicationStatus(status string) bool {
	switch status {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether a non-administrative status change from
// -> to moves the application forward.
func CanTransition(from, to string) bool {
	switch from {
	case ApplicationStatusPending:
		return to == ApplicationStatusReviewed || to == ApplicationStatusAccepted || to == ApplicationStatusRejected
	case ApplicationStatusReviewed:
		return to == ApplicationStatusAccepted || to == ApplicationStatusRejected
	}
	return false
}

// ApplicationFields are the fields of a submission. Omitted fields keep their
// stored value on the update path.
type ApplicationFields struct {
	CoverLetter Optional[string] `json:"cover_letter"`
	ResumeURL   Optional[string] `json:"resume_url"`
	ResumePath  Optional[string] `json:"resume_path"`
	Status      Optional[string] `json:"status"`
}

// Merge copies the supplied fields into app. Status is handled by the caller.
func (f ApplicationFields) Merge(app *Application) {
	f.CoverLetter.ApplyTo(&app.CoverLetter)
	f.ResumeURL.ApplyTo(&app.ResumeURL)
	f.ResumePath.ApplyTo(&app.ResumePath)
}

// SubmitResult is returned by the upsert workflow.
type SubmitResult struct {
	Application        *Application `json:"application"`
	WasFirstSubmission bool         `json:"was_first_submission"`
}

// ApplicationExport is a rendered spreadsheet of a job's applicants.
type ApplicationExport struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	// Upsert locks the (jobID, userID) row when present, otherwise prepares a
	// new one; fn mutates it and learns whether it is new. A lost insert race
	// is retried as an update, so created is true for exactly one caller.
	Upsert(ctx context.Context, jobID, userID int64, fn func(app *Application, created bool) error) (app *Application, created bool, err error)
	GetByID(ctx context.Context, id int64) (*Application, error)
	ListByJob(ctx context.Context, jobID int64, page Page) ([]Application, int64, error)
	ListAllByJob(ctx context.Context, jobID int64) ([]Application, error)
	ListByUser(ctx context.Context, userID int64, page Page) ([]Application, int64, error)
	UpdateLocked(ctx context.Context, id int64, fn func(app *Application) error) (*Application, error)
	DeleteLocked(ctx context.Context, id int64, fn func(app *Application) error) error
}

// ApplicationNotifier delivers the first-submission notice to the employer.
type ApplicationNotifier interface {
	NotifyNewApplication(ctx context.Context, employer *User, job *Job, applicant *User, coverLetter *string) error
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	Submit(ctx context.Context, actor *Actor, jobID int64, fields ApplicationFields) (*SubmitResult, error)
	MyApplications(ctx context.Context, actor *Actor, page Page) (*PaginatedResult[Application], error)
	ListForJob(ctx context.Context, actor *Actor, jobID int64, page Page) (*PaginatedResult[Application], error)
	ExportForJob(ctx context.Context, actor *Actor, jobID int64, format string) (*ApplicationExport, error)
	GetApplication(ctx context.Context, actor *Actor, id int64) (*Application, error)
	UpdateStatus(ctx context.Context, actor *Actor, id int64, status string) (*Application, error)
	Withdraw(ctx context.Context, actor *Actor, id int64) error
}
