package usecase

import (
	"context"
	"errors"
	"strings"

	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
)

type roleUsecase struct {
	roleRepo domain.RoleRepository
	gate     *authz.Gate
}

func NewRoleUsecase(roleRepo domain.RoleRepository, gate *authz.Gate) domain.RoleUsecase {
	return &roleUsecase{roleRepo: roleRepo, gate: gate}
}

func (u *roleUsecase) ListRoles(ctx context.Context, actor *domain.Actor) ([]domain.Role, error) {
	if err := u.gate.Check(actor, authz.ActionList, authz.RoleTarget{}); err != nil {
		return nil, err
	}
	roles, err := u.roleRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return roles, nil
}

func (u *roleUsecase) CreateRole(ctx context.Context, actor *domain.Actor, role *domain.Role) error {
	if err := u.gate.Check(actor, authz.ActionCreate, authz.RoleTarget{}); err != nil {
		return err
	}
	role.Name = strings.ToLower(strings.TrimSpace(role.Name))
	if role.Name == "" {
		return apperror.Field("name", "The name field is required.")
	}
	if err := u.roleRepo.Create(ctx, role); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return apperror.Field("name", "The name has already been taken.")
		}
		return apperror.Internal(err)
	}
	return nil
}
