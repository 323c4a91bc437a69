package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// ApplicationConfig toggles optional submission rules.
type ApplicationConfig struct {
	// OpenJobsOnly rejects submissions to closed and draft jobs.
	OpenJobsOnly bool
}

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	userRepo        domain.UserRepository
	notifier        domain.ApplicationNotifier
	gate            *authz.Gate
	validate        *validator.Validate
	cfg             ApplicationConfig
	now             func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
	notifier domain.ApplicationNotifier,
	gate *authz.Gate,
	validate *validator.Validate,
	cfg ApplicationConfig,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		gate:            gate,
		validate:        validate,
		cfg:             cfg,
		now:             time.Now,
	}
}

// Submit creates the (job, actor) application or updates it in place.
// Only the first submission notifies the employer.
func (uc *applicationUsecase) Submit(ctx context.Context, actor *domain.Actor, jobID int64, fields domain.ApplicationFields) (*domain.SubmitResult, error) {
	if err := uc.gate.Check(actor, authz.ActionCreate, authz.ApplicationTarget{}); err != nil {
		return nil, err
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, repoErr(err, "Job not found")
	}
	if uc.cfg.OpenJobsOnly && !job.IsOpen() {
		return nil, apperror.Field("job_id", "Cannot apply to a job that is not open.")
	}

	privileged := actor.IsAdmin()
	if err := uc.validateFields(fields, privileged); err != nil {
		return nil, err
	}

	app, created, err := uc.applicationRepo.Upsert(ctx, jobID, actor.UserID, func(app *domain.Application, created bool) error {
		fields.Merge(app)
		// Status is only ever taken from privileged callers.
		overrides := privileged && fields.Status.Set && fields.Status.Value != nil
		switch {
		case created && overrides:
			app.Status = *fields.Status.Value
		case created:
			app.Status = domain.ApplicationStatusPending
		case overrides:
			app.Status = *fields.Status.Value
		}
		return nil
	})
	if err != nil {
		return nil, repoErr(err, "Job not found")
	}

	if created {
		uc.notifyEmployer(ctx, job, actor.UserID, app.CoverLetter)
	}

	return &domain.SubmitResult{Application: app, WasFirstSubmission: created}, nil
}

func (uc *applicationUsecase) validateFields(fields domain.ApplicationFields, privileged bool) error {
	details := map[string]string{}
	if v := fields.ResumeURL.Value; fields.ResumeURL.Set && v != nil {
		if err := uc.validate.Var(*v, "url,max=255"); err != nil {
			details["resume_url"] = "The resume url must be a valid URL of at most 255 characters."
		}
	}
	if v := fields.ResumePath.Value; fields.ResumePath.Set && v != nil {
		if err := uc.validate.Var(*v, "max=255"); err != nil {
			details["resume_path"] = "The resume path may not be greater than 255 characters."
		}
	}
	if privileged && fields.Status.Set {
		if fields.Status.Value == nil || !domain.ValidApplicationStatus(*fields.Status.Value) {
			details["status"] = "The selected status is invalid."
		}
	}
	if len(details) > 0 {
		return apperror.Validation("The given data was invalid.", details)
	}
	return nil
}

// notifyEmployer never fails the submission; delivery problems are logged.
func (uc *applicationUsecase) notifyEmployer(ctx context.Context, job *domain.Job, applicantID int64, coverLetter *string) {
	employer, err := uc.userRepo.GetByID(ctx, job.EmployerID)
	if err != nil {
		slog.ErrorContext(ctx, "new application notification skipped: employer lookup failed",
			"job_id", job.ID, "employer_id", job.EmployerID, "error", err)
		return
	}
	applicant, err := uc.userRepo.GetByID(ctx, applicantID)
	if err != nil {
		slog.ErrorContext(ctx, "new application notification skipped: applicant lookup failed",
			"job_id", job.ID, "applicant_id", applicantID, "error", err)
		return
	}

	var snapshot *string
	if coverLetter != nil {
		letter := *coverLetter
		snapshot = &letter
	}
	if err := uc.notifier.NotifyNewApplication(ctx, employer, job, applicant, snapshot); err != nil {
		slog.ErrorContext(ctx, "failed to notify employer of new application",
			"job_id", job.ID, "employer_id", employer.ID, "error", err)
	}
}

// MyApplications returns the actor's own applications, newest first
func (uc *applicationUsecase) MyApplications(ctx context.Context, actor *domain.Actor, page domain.Page) (*domain.PaginatedResult[domain.Application], error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Unauthenticated.")
	}
	page = domain.NewPage(page.Page, page.PerPage)
	apps, total, err := uc.applicationRepo.ListByUser(ctx, actor.UserID, page)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(apps, total, page), nil
}

// ListForJob returns a job's applications to its owner or an admin
func (uc *applicationUsecase) ListForJob(ctx context.Context, actor *domain.Actor, jobID int64, page domain.Page) (*domain.PaginatedResult[domain.Application], error) {
	if _, err := uc.ownedJob(ctx, actor, jobID); err != nil {
		return nil, err
	}
	page = domain.NewPage(page.Page, page.PerPage)
	apps, total, err := uc.applicationRepo.ListByJob(ctx, jobID, page)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(apps, total, page), nil
}

// ExportForJob renders every application of a job as a spreadsheet
func (uc *applicationUsecase) ExportForJob(ctx context.Context, actor *domain.Actor, jobID int64, format string) (*domain.ApplicationExport, error) {
	if format != "" && format != ExportFormatXLSX && format != ExportFormatCSV {
		return nil, apperror.Field("format", "The format must be xlsx or csv.")
	}
	job, err := uc.ownedJob(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.ListAllByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	export, err := renderApplications(job, apps, format, uc.now())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return export, nil
}

func (uc *applicationUsecase) GetApplication(ctx context.Context, actor *domain.Actor, id int64) (*domain.Application, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Unauthenticated.")
	}
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Application not found")
	}
	if err := uc.gate.Check(actor, authz.ActionView, authz.ApplicationTarget{Application: app}); err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateStatus lets the job owner move an application forward
// (pending → reviewed → accepted / rejected). Admins may set any status.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, actor *domain.Actor, id int64, status string) (*domain.Application, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Unauthenticated.")
	}
	if !domain.ValidApplicationStatus(status) {
		return nil, apperror.Field("status", "The selected status is invalid.")
	}

	app, err := uc.applicationRepo.UpdateLocked(ctx, id, func(app *domain.Application) error {
		if err := uc.gate.Check(actor, authz.ActionReview, authz.ApplicationTarget{Application: app}); err != nil {
			return err
		}
		if !actor.IsAdmin() && !domain.CanTransition(app.Status, status) {
			return apperror.Field("status", fmt.Sprintf("Cannot change status from %s to %s.", app.Status, status))
		}
		app.Status = status
		return nil
	})
	if err != nil {
		return nil, repoErr(err, "Application not found")
	}
	return app, nil
}

// Withdraw deletes an application; allowed for the applicant and admins
func (uc *applicationUsecase) Withdraw(ctx context.Context, actor *domain.Actor, id int64) error {
	if actor == nil {
		return apperror.Unauthorized("Unauthenticated.")
	}
	err := uc.applicationRepo.DeleteLocked(ctx, id, func(app *domain.Application) error {
		return uc.gate.Check(actor, authz.ActionDelete, authz.ApplicationTarget{Application: app})
	})
	return repoErr(err, "Application not found")
}

func (uc *applicationUsecase) ownedJob(ctx context.Context, actor *domain.Actor, jobID int64) (*domain.Job, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Unauthenticated.")
	}
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, repoErr(err, "Job not found")
	}
	if err := uc.gate.Check(actor, authz.ActionViewApplications, authz.ApplicationTarget{Job: job}); err != nil {
		return nil, err
	}
	return job, nil
}
