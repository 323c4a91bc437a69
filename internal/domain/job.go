package domain

import (
	"context"
	"time"
)

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

type Job struct {
	ID          int64     `json:"id"`
	EmployerID  int64     `json:"employer_id"`
	CompanyID   *int64    `json:"company_id"`
	Title       string    `json:"title"`
	Location    *string   `json:"location"`
	Type        *string   `json:"type"`
	SalaryMin   *float64  `json:"salary_min"`
	SalaryMax   *float64  `json:"salary_max"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined data for list responses
	EmployerName *string `json:"employer_name,omitempty"`
	CompanyName  *string `json:"company_name,omitempty"`
	CompanyLogo  *string `json:"company_logo_url,omitempty"`
}

// IsOpen reports whether the job accepts applications.
func (j *Job) IsOpen() bool {
	return j.Status == JobStatusOpen
}

// SalaryBoundsValid holds when either bound is missing or min <= max.
func (j *Job) SalaryBoundsValid() bool {
	if j.SalaryMin == nil || j.SalaryMax == nil {
		return true
	}
	return *j.SalaryMin <= *j.SalaryMax
}

func ValidJobStatus(status string) bool {
	switch status {
	case JobStatusOpen, JobStatusClosed, JobStatusDraft:
		return true
	}
	return false
}

// JobUpdate carries only the fields present in an update request.
type JobUpdate struct {
	Title       Optional[string]   `json:"title"`
	Location    Optional[string]   `json:"location"`
	Type        Optional[string]   `json:"type"`
	SalaryMin   Optional[float64]  `json:"salary_min"`
	SalaryMax   Optional[float64]  `json:"salary_max"`
	Tags        Optional[[]string] `json:"tags"`
	Description Optional[string]   `json:"description"`
	Status      Optional[string]   `json:"status"`
	CompanyID   Optional[int64]    `json:"company_id"`
}

// Apply merges the update into j. Title, description and status cannot be nulled.
func (u JobUpdate) Apply(j *Job) {
	if u.Title.Set && u.Title.Value != nil {
		j.Title = *u.Title.Value
	}
	if u.Description.Set && u.Description.Value != nil {
		j.Description = *u.Description.Value
	}
	if u.Status.Set && u.Status.Value != nil {
		j.Status = *u.Status.Value
	}
	if u.Tags.Set {
		if u.Tags.Value == nil {
			j.Tags = []string{}
		} else {
			j.Tags = *u.Tags.Value
		}
	}
	u.Location.ApplyTo(&j.Location)
	u.Type.ApplyTo(&j.Type)
	u.SalaryMin.ApplyTo(&j.SalaryMin)
	u.SalaryMax.ApplyTo(&j.SalaryMax)
	u.CompanyID.ApplyTo(&j.CompanyID)
}

type JobFilter struct {
	Query     string
	Keywords  []string // any one occurring in title, description or tags matches
	Location  string
	Type      string
	Status    string
	CompanyID *int64
	Page      Page
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter) ([]Job, int64, error)
	// UpdateLocked loads the job FOR UPDATE, lets fn check and mutate it, and
	// persists the result in the same transaction. fn errors abort the update.
	UpdateLocked(ctx context.Context, id int64, fn func(job *Job) error) (*Job, error)
	// DeleteLocked loads the job FOR UPDATE and deletes it when fn returns nil.
	DeleteLocked(ctx context.Context, id int64, fn func(job *Job) error) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, actor *Actor, job *Job) error
	GetJob(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter) (*PaginatedResult[Job], error)
	UpdateJob(ctx context.Context, actor *Actor, id int64, update JobUpdate) (*Job, error)
	DeleteJob(ctx context.Context, actor *Actor, id int64) error
}
