package usecase

import (
	"context"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"

	"github.com/google/uuid"
)

// readNotificationLimit caps the read notifications returned next to unread ones.
const readNotificationLimit = 50

type notificationUsecase struct {
	notificationRepo domain.NotificationRepository
	now              func() time.Time
}

func NewNotificationUsecase(notificationRepo domain.NotificationRepository) domain.NotificationUsecase {
	return &notificationUsecase{notificationRepo: notificationRepo, now: time.Now}
}

func (u *notificationUsecase) List(ctx context.Context, actor *domain.Actor) (*domain.NotificationList, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Unauthenticated.")
	}
	unread, err := u.notificationRepo.ListUnread(ctx, actor.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	read, err := u.notificationRepo.ListRead(ctx, actor.UserID, readNotificationLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if unread == nil {
		unread = []domain.Notification{}
	}
	if read == nil {
		read = []domain.Notification{}
	}
	return &domain.NotificationList{Unread: unread, Read: read}, nil
}

// MarkRead is scoped to the actor; another user's id reports not found.
func (u *notificationUsecase) MarkRead(ctx context.Context, actor *domain.Actor, id uuid.UUID) error {
	if actor == nil {
		return apperror.Unauthorized("Unauthenticated.")
	}
	err := u.notificationRepo.MarkRead(ctx, actor.UserID, id, u.now().UTC())
	return repoErr(err, "Notification not found")
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, actor *domain.Actor) (int64, error) {
	if actor == nil {
		return 0, apperror.Unauthorized("Unauthenticated.")
	}
	n, err := u.notificationRepo.MarkAllRead(ctx, actor.UserID, u.now().UTC())
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return n, nil
}

func (u *notificationUsecase) Delete(ctx context.Context, actor *domain.Actor, id uuid.UUID) error {
	if actor == nil {
		return apperror.Unauthorized("Unauthenticated.")
	}
	return repoErr(u.notificationRepo.Delete(ctx, actor.UserID, id), "Notification not found")
}
