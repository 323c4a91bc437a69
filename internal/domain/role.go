package domain

import (
	"context"
	"time"
)

type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RoleRepository interface {
	List(ctx context.Context) ([]Role, error)
	GetByID(ctx context.Context, id int64) (*Role, error)
	Create(ctx context.Context, role *Role) error
}

type RoleUsecase interface {
	ListRoles(ctx context.Context, actor *Actor) ([]Role, error)
	CreateRole(ctx context.Context, actor *Actor, role *Role) error
}
