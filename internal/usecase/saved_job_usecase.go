package usecase

import (
	"context"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
)

type savedJobUsecase struct {
	savedJobRepo domain.SavedJobRepository
	jobRepo      domain.JobRepository
}

func NewSavedJobUsecase(savedJobRepo domain.SavedJobRepository, jobRepo domain.JobRepository) domain.SavedJobUsecase {
	return &savedJobUsecase{savedJobRepo: savedJobRepo, jobRepo: jobRepo}
}

func (u *savedJobUsecase) Save(ctx context.Context, actor *domain.Actor, jobID int64) (*domain.SavedJob, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Unauthenticated.")
	}
	if _, err := u.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, repoErr(err, "Job not found")
	}
	saved, err := u.savedJobRepo.Save(ctx, actor.UserID, jobID)
	if err != nil {
		return nil, repoErr(err, "Job not found")
	}
	return saved, nil
}

// Remove is idempotent: removing a job that was never saved succeeds.
func (u *savedJobUsecase) Remove(ctx context.Context, actor *domain.Actor, jobID int64) error {
	if actor == nil {
		return apperror.Unauthorized("Unauthenticated.")
	}
	if err := u.savedJobRepo.Remove(ctx, actor.UserID, jobID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *savedJobUsecase) List(ctx context.Context, actor *domain.Actor, page domain.Page) (*domain.PaginatedResult[domain.SavedJob], error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Unauthenticated.")
	}
	page = domain.NewPage(page.Page, page.PerPage)
	saved, total, err := u.savedJobRepo.ListByUser(ctx, actor.UserID, page)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(saved, total, page), nil
}
