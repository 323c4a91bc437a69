package usecase

import (
	"context"
	"errors"
	"strings"

	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo     domain.JobRepository
	companyRepo domain.CompanyRepository
	gate        *authz.Gate
}

func NewJobUsecase(jobRepo domain.JobRepository, companyRepo domain.CompanyRepository, gate *authz.Gate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:     jobRepo,
		companyRepo: companyRepo,
		gate:        gate,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, actor *domain.Actor, job *domain.Job) error {
	if err := u.gate.Check(actor, authz.ActionCreate, authz.JobTarget{}); err != nil {
		return err
	}

	job.EmployerID = actor.UserID
	if job.Status == "" {
		job.Status = domain.JobStatusOpen
	}
	if job.Tags == nil {
		job.Tags = []string{}
	}
	if err := validateJob(job); err != nil {
		return err
	}
	if err := u.checkCompany(ctx, actor, job.CompanyID); err != nil {
		return err
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Job not found")
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) (*domain.PaginatedResult[domain.Job], error) {
	filter.Page = domain.NewPage(filter.Page.Page, filter.Page.PerPage)
	if filter.Status != "" && !domain.ValidJobStatus(filter.Status) {
		return nil, apperror.Field("status", "The selected status is invalid.")
	}

	jobs, total, err := u.jobRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(jobs, total, filter.Page), nil
}

// UpdateJob checks ownership against the locked row, so a concurrent
// ownership change cannot slip between the check and the write.
func (u *jobUsecase) UpdateJob(ctx context.Context, actor *domain.Actor, id int64, update domain.JobUpdate) (*domain.Job, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Unauthenticated.")
	}
	if update.Title.Set && (update.Title.Value == nil || strings.TrimSpace(*update.Title.Value) == "") {
		return nil, apperror.Field("title", "The title field is required.")
	}
	if update.Description.Set && (update.Description.Value == nil || strings.TrimSpace(*update.Description.Value) == "") {
		return nil, apperror.Field("description", "The description field is required.")
	}

	job, err := u.jobRepo.UpdateLocked(ctx, id, func(job *domain.Job) error {
		if err := u.gate.Check(actor, authz.ActionUpdate, authz.JobTarget{Job: job}); err != nil {
			return err
		}
		previousCompany := job.CompanyID
		update.Apply(job)
		if err := validateJob(job); err != nil {
			return err
		}
		if update.CompanyID.Set && !sameID(previousCompany, job.CompanyID) {
			return u.checkCompany(ctx, actor, job.CompanyID)
		}
		return nil
	})
	if err != nil {
		return nil, repoErr(err, "Job not found")
	}
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, actor *domain.Actor, id int64) error {
	if actor == nil {
		return apperror.Unauthorized("Unauthenticated.")
	}
	err := u.jobRepo.DeleteLocked(ctx, id, func(job *domain.Job) error {
		return u.gate.Check(actor, authz.ActionDelete, authz.JobTarget{Job: job})
	})
	return repoErr(err, "Job not found")
}

// checkCompany requires a linked company to exist and, for non-admins, to be
// owned by the actor.
func (u *jobUsecase) checkCompany(ctx context.Context, actor *domain.Actor, companyID *int64) error {
	if companyID == nil {
		return nil
	}
	company, err := u.companyRepo.GetByID(ctx, *companyID)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.Field("company_id", "The selected company is invalid.")
	}
	if err != nil {
		return apperror.Internal(err)
	}
	if !actor.IsAdmin() && !company.OwnedBy(actor.UserID) {
		return apperror.Forbidden("You do not own this company")
	}
	return nil
}

func validateJob(job *domain.Job) error {
	details := map[string]string{}
	if strings.TrimSpace(job.Title) == "" {
		details["title"] = "The title field is required."
	}
	if strings.TrimSpace(job.Description) == "" {
		details["description"] = "The description field is required."
	}
	if !domain.ValidJobStatus(job.Status) {
		details["status"] = "The selected status is invalid."
	}
	if job.SalaryMin != nil && *job.SalaryMin < 0 {
		details["salary_min"] = "The salary min must be at least 0."
	}
	if !job.SalaryBoundsValid() {
		details["salary_max"] = "The salary max must be greater than or equal to salary min."
	}
	if len(details) > 0 {
		return apperror.Validation("The given data was invalid.", details)
	}
	return nil
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
