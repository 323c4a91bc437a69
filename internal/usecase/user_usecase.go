package usecase

import (
	"context"
	"errors"
	"strconv"

	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/security"
)

type userUsecase struct {
	userRepo domain.UserRepository
	roleRepo domain.RoleRepository
	gate     *authz.Gate
	secLog   *security.SecurityLogger
}

func NewUserUsecase(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	gate *authz.Gate,
	secLog *security.SecurityLogger,
) domain.UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		roleRepo: roleRepo,
		gate:     gate,
		secLog:   secLog,
	}
}

func (u *userUsecase) GetProfile(ctx context.Context, actor *domain.Actor, userID int64) (*domain.User, error) {
	if err := u.gate.Check(actor, authz.ActionView, authz.UserTarget{ID: userID}); err != nil {
		return nil, err
	}
	return u.load(ctx, userID)
}

func (u *userUsecase) UpdateProfile(ctx context.Context, actor *domain.Actor, userID int64, update domain.ProfileUpdate) (*domain.User, error) {
	if err := u.gate.Check(actor, authz.ActionUpdate, authz.UserTarget{ID: userID}); err != nil {
		return nil, err
	}
	if update.Name.Set && (update.Name.Value == nil || *update.Name.Value == "") {
		return nil, apperror.Field("name", "The name field is required.")
	}

	user, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	update.Apply(user)

	if err := u.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// AssignRole changes a user's role and revokes their tokens, so no ability
// snapshot outlives the role it was computed from.
func (u *userUsecase) AssignRole(ctx context.Context, actor *domain.Actor, userID, roleID int64) (*domain.User, error) {
	if err := u.gate.Check(actor, authz.ActionUpdate, authz.RoleTarget{}); err != nil {
		return nil, err
	}

	role, err := u.roleRepo.GetByID(ctx, roleID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Field("role_id", "The selected role is invalid.")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	revoked, err := u.userRepo.UpdateRole(ctx, userID, roleID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user.RoleID = &role.ID
	user.Role = role.Name
	u.secLog.LogUserEvent(ctx, security.EventRoleAssigned, strconv.FormatInt(userID, 10), map[string]interface{}{
		"role":           role.Name,
		"by":             actor.UserID,
		"tokens_revoked": revoked,
	})
	return user, nil
}

func (u *userUsecase) DeleteUser(ctx context.Context, actor *domain.Actor, userID int64) error {
	if err := u.gate.Check(actor, authz.ActionDelete, authz.UserTarget{ID: userID}); err != nil {
		return err
	}
	if err := u.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *userUsecase) load(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}
