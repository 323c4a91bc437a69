package domain

import (
	"context"
	"time"
)

// AccessToken is a persisted bearer credential. The plaintext secret is never
// stored; Abilities is the snapshot taken when the token was issued.
type AccessToken struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Name       string     `json:"name"`
	TokenHash  string     `json:"-"`
	Abilities  []string   `json:"abilities"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IssuedToken pairs a stored token with the plaintext value shown exactly once.
type IssuedToken struct {
	PlainText string
	Token     *AccessToken
}

// Session is the resolved identity behind a presented bearer value.
type Session struct {
	User      *User
	Token     *AccessToken
	Abilities []string
}

// Actor converts the session into the identity consumed by authorization.
func (s *Session) Actor() *Actor {
	return &Actor{
		UserID:    s.User.ID,
		Role:      s.User.Role,
		Abilities: s.Abilities,
		TokenID:   s.Token.ID,
	}
}

// AbilityFunc derives the ability snapshot from a role name.
type AbilityFunc func(role string) []string

// TokenRepository persists access tokens. Create and ReplaceForUser lock the
// owning user row, read its current role and set token.Abilities from it
// before inserting, so a snapshot is never taken from a stale role.
type TokenRepository interface {
	Create(ctx context.Context, token *AccessToken, abilitiesFor AbilityFunc) error
	// ReplaceForUser deletes every token of token.UserID and inserts token,
	// atomically per user.
	ReplaceForUser(ctx context.Context, token *AccessToken, abilitiesFor AbilityFunc) (revoked int64, err error)
	GetByID(ctx context.Context, id int64) (*AccessToken, error)
	GetByHash(ctx context.Context, hash string) (*AccessToken, error)
	Touch(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
}

// LoginThrottle counts failed credential checks per throttle key.
type LoginThrottle interface {
	TooManyAttempts(ctx context.Context, key string) (bool, time.Duration, error)
	Hit(ctx context.Context, key string) (int, error)
	Clear(ctx context.Context, key string) error
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	RoleID   int64
}

type LoginInput struct {
	Email     string
	Password  string
	IP        string
	UserAgent string
	RequestID string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User      *User    `json:"user"`
	Abilities []string `json:"abilities"`
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	// Issue creates a token for user, revoking prior ones under single-session policy.
	Issue(ctx context.Context, user *User) (*IssuedToken, error)
	// Resolve fails with a generic authentication error for any unknown,
	// malformed or revoked value.
	Resolve(ctx context.Context, presented string) (*Session, error)
	RevokeCurrent(ctx context.Context, tokenID int64) error
	RevokeAll(ctx context.Context, userID int64) (int64, error)
	Me(ctx context.Context, actor *Actor) (*User, []string, error)
}
