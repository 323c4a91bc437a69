package domain

import (
	"context"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleID       *int64    `json:"role_id"`
	Role         string    `json:"role"` // joined from roles.name
	Phone        *string   `json:"phone"`
	Headline     *string   `json:"headline"`
	Location     *string   `json:"location"`
	Website      *string   `json:"website"`
	LinkedinURL  *string   `json:"linkedin_url"`
	GithubURL    *string   `json:"github_url"`
	Bio          *string   `json:"bio"`
	AvatarURL    *string   `json:"avatar_url"`
	ResumeURL    *string   `json:"resume_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileUpdate carries only the profile fields present in the request.
type ProfileUpdate struct {
	Name        Optional[string] `json:"name"`
	Phone       Optional[string] `json:"phone"`
	Headline    Optional[string] `json:"headline"`
	Location    Optional[string] `json:"location"`
	Website     Optional[string] `json:"website"`
	LinkedinURL Optional[string] `json:"linkedin_url"`
	GithubURL   Optional[string] `json:"github_url"`
	Bio         Optional[string] `json:"bio"`
	AvatarURL   Optional[string] `json:"avatar_url"`
	ResumeURL   Optional[string] `json:"resume_url"`
}

// Apply merges the update into u. Name cannot be cleared.
func (p ProfileUpdate) Apply(u *User) {
	if p.Name.Set && p.Name.Value != nil {
		u.Name = *p.Name.Value
	}
	p.Phone.ApplyTo(&u.Phone)
	p.Headline.ApplyTo(&u.Headline)
	p.Location.ApplyTo(&u.Location)
	p.Website.ApplyTo(&u.Website)
	p.LinkedinURL.ApplyTo(&u.LinkedinURL)
	p.GithubURL.ApplyTo(&u.GithubURL)
	p.Bio.ApplyTo(&u.Bio)
	p.AvatarURL.ApplyTo(&u.AvatarURL)
	p.ResumeURL.ApplyTo(&u.ResumeURL)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	// UpdateRole changes the role and deletes every token of the user in one
	// transaction holding the user row lock.
	UpdateRole(ctx context.Context, userID, roleID int64) (revokedTokens int64, err error)
	Delete(ctx context.Context, id int64) error
}

type UserUsecase interface {
	GetProfile(ctx context.Context, actor *Actor, userID int64) (*User, error)
	UpdateProfile(ctx context.Context, actor *Actor, userID int64, update ProfileUpdate) (*User, error)
	AssignRole(ctx context.Context, actor *Actor, userID, roleID int64) (*User, error)
	DeleteUser(ctx context.Context, actor *Actor, userID int64) error
}
