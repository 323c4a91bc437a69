package domain

import (
	"context"
	"time"
)

type Mentor struct {
	ID          int64     `json:"id"`
	UserID      *int64    `json:"user_id"`
	Name        string    `json:"name"`
	Headline    *string   `json:"headline"`
	Bio         *string   `json:"bio"`
	Expertise   *string   `json:"expertise"`
	Location    *string   `json:"location"`
	Website     *string   `json:"website"`
	LinkedinURL *string   `json:"linkedin_url"`
	GithubURL   *string   `json:"github_url"`
	AvatarURL   *string   `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MentorUpdate struct {
	UserID      Optional[int64]  `json:"user_id"`
	Name        Optional[string] `json:"name"`
	Headline    Optional[string] `json:"headline"`
	Bio         Optional[string] `json:"bio"`
	Expertise   Optional[string] `json:"expertise"`
	Location    Optional[string] `json:"location"`
	Website     Optional[string] `json:"website"`
	LinkedinURL Optional[string] `json:"linkedin_url"`
	GithubURL   Optional[string] `json:"github_url"`
	AvatarURL   Optional[string] `json:"avatar_url"`
}

func (u MentorUpdate) Apply(m *Mentor) {
	if u.Name.Set && u.Name.Value != nil {
		m.Name = *u.Name.Value
	}
	u.UserID.ApplyTo(&m.UserID)
	u.Headline.ApplyTo(&m.Headline)
	u.Bio.ApplyTo(&m.Bio)
	u.Expertise.ApplyTo(&m.Expertise)
	u.Location.ApplyTo(&m.Location)
	u.Website.ApplyTo(&m.Website)
	u.LinkedinURL.ApplyTo(&m.LinkedinURL)
	u.GithubURL.ApplyTo(&m.GithubURL)
	u.AvatarURL.ApplyTo(&m.AvatarURL)
}

type MentorRepository interface {
	Create(ctx context.Context, mentor *Mentor) error
	GetByID(ctx context.Context, id int64) (*Mentor, error)
	// Fetch matches query against name, expertise and location.
	Fetch(ctx context.Context, query string, page Page) ([]Mentor, int64, error)
	Update(ctx context.Context, mentor *Mentor) error
	Delete(ctx context.Context, id int64) error
}

type MentorUsecase interface {
	ListMentors(ctx context.Context, query string, page Page) (*PaginatedResult[Mentor], error)
	GetMentor(ctx context.Context, id int64) (*Mentor, error)
	CreateMentor(ctx context.Context, actor *Actor, mentor *Mentor) error
	UpdateMentor(ctx context.Context, actor *Actor, id int64, update MentorUpdate) (*Mentor, error)
	DeleteMentor(ctx context.Context, actor *Actor, id int64) error
}
