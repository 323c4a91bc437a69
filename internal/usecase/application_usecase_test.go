package usecase_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"sync"
	"testing"

	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type applicationFixture struct {
	users    *memUserRepo
	jobs     *memJobRepo
	apps     *memApplicationRepo
	notifier *MockNotifier
	uc       domain.ApplicationUsecase

	employer *domain.User
	seeker   *domain.User
	admin    *domain.User
	job      *domain.Job
}

func newApplicationFixture(t *testing.T, cfg usecase.ApplicationConfig) *applicationFixture {
	t.Helper()
	f := &applicationFixture{users: newMemUserRepo(), jobs: newMemJobRepo(), notifier: new(MockNotifier)}
	f.apps = newMemApplicationRepo(f.jobs)
	f.employer = f.users.add("Erin Employer", "erin@example.com", domain.RoleEmployer)
	f.seeker = f.users.add("Sam Seeker", "sam@example.com", domain.RoleSeeker)
	f.admin = f.users.add("Ada Admin", "ada@example.com", domain.RoleAdmin)
	f.job = f.jobs.add(f.employer.ID, "Go Engineer", domain.JobStatusOpen)
	f.uc = usecase.NewApplicationUsecase(f.apps, f.jobs, f.users, f.notifier, authz.NewGate(), validation.New(), cfg)
	return f
}

func TestSubmitFirstThenUpdate(t *testing.T) {
	ctx := context.Background()
	f := newApplicationFixture(t, usecase.ApplicationConfig{OpenJobsOnly: true})

	f.notifier.On("NotifyNewApplication", mock.Anything,
		mock.MatchedBy(func(u *domain.User) bool { return u.ID == f.employer.ID }),
		mock.MatchedBy(func(j *domain.Job) bool { return j.ID == f.job.ID }),
		mock.MatchedBy(func(u *domain.User) bool { return u.ID == f.seeker.ID }),
		mock.MatchedBy(func(cl *string) bool { return cl != nil && *cl == "A" }),
	).Return(nil).Once()

	first, err := f.uc.Submit(ctx, actorOf(f.seeker), f.job.ID, domain.ApplicationFields{CoverLetter: domain.Some("A")})
	require.NoError(t, err)
	assert.True(t, first.WasFirstSubmission)
	assert.Equal(t, domain.ApplicationStatusPending, first.Application.Status)

	second, err := f.uc.Submit(ctx, actorOf(f.seeker), f.job.ID, domain.ApplicationFields{ResumeURL: domain.Some("https://cdn.example.com/r.pdf")})
	require.NoError(t, err)
	assert.False(t, second.WasFirstSubmission)
	assert.Equal(t, first.Application.ID, second.Application.ID)
	require.NotNil(t, second.Application.CoverLetter)
	assert.Equal(t, "A", *second.Application.CoverLetter, "omitted fields are preserved")
	assert.Equal(t, "https://cdn.example.com/r.pdf", *second.Application.ResumeURL)

	assert.Equal(t, 1, f.apps.count())
	f.notifier.AssertNumberOfCalls(t, "NotifyNewApplication", 1)
}

func TestSubmitExplicitNullClearsField(t *testing.T) {
	ctx := context.Background()
	f := newApplicationFixture(t, usecase.ApplicationConfig{})
	f.notifier.On("NotifyNewApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Submit(ctx, actorOf(f.seeker), f.job.ID, domain.ApplicationFields{CoverLetter: domain.Some("A")})
	require.NoError(t, err)

	res, err := f.uc.Submit(ctx, actorOf(f.seeker), f.job.ID, domain.ApplicationFields{CoverLetter: domain.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, res.Application.CoverLetter)
}

func TestSubmitStatusHandling(t *testing.T) {
	ctx := context.Background()
	f := newApplicationFixture(t, usecase.ApplicationConfig{})
	f.notifier.On("NotifyNewApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	t.Run("seeker supplied status is ignored", func(t *testing.T) {
		res, err := f.uc.Submit(ctx, actorOf(f.seeker), f.job.ID, domain.ApplicationFields{Status: domain.Some(domain.ApplicationStatusAccepted)})
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, res.Application.Status)

		res, err = f.uc.Submit(ctx, actorOf(f.seeker), f.job.ID, domain.ApplicationFields{Status: domain.Some(domain.ApplicationStatusAccepted)})
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, res.Application.Status)
	})

	t.Run("admin may set status at creation and override later", func(t *testing.T) {
		res, err := f.uc.Submit(ctx, actorOf(f.admin), f.job.ID, domain.ApplicationFields{Status: domain.Some(domain.ApplicationStatusReviewed)})
		require.NoError(t, err)
		assert.True(t, res.WasFirstSubmission)
		assert.Equal(t, domain.ApplicationStatusReviewed, res.Application.Status)

		res, err = f.uc.Submit(ctx, actorOf(f.admin), f.job.ID, domain.ApplicationFields{Status: domain.Some(domain.ApplicationStatusPending)})
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, res.Application.Status)

		res, err = f.uc.Submit(ctx, actorOf(f.admin), f.job.ID, domain.ApplicationFields{CoverLetter: domain.Some("note")})
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, res.Application.Status, "status only changes when supplied")
	})

	t.Run("admin status must be valid", func(t *testing.T) {
		_, err := f.uc.Submit(ctx, actorOf(f.admin), f.job.ID, domain.ApplicationFields{Status: domain.Some("hired")})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestSubmitAuthorization(t *testing.T) {
	ctx := context.Background()
	f := newApplicationFixture(t, usecase.ApplicationConfig{OpenJobsOnly: true})
	mentor := f.users.add("Mo Mentor", "mo@example.com", domain.RoleMentor)

	_, err := f.uc.Submit(ctx, nil, f.job.ID, domain.ApplicationFields{})
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))

	_, err = f.uc.Submit(ctx, actorOf(f.employer), f.job.ID, domain.ApplicationFields{})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = f.uc.Submit(ctx, actorOf(mentor), f.job.ID, domain.ApplicationFields{})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = f.uc.Submit(ctx, actorOf(f.seeker), 999, domain.ApplicationFields{})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	closed := f.jobs.add(f.employer.ID, "Closed", domain.JobStatusClosed)
	_, err = f.uc.Submit(ctx, actorOf(f.seeker), closed.ID, domain.ApplicationFields{})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.uc.Submit(ctx, actorOf(f.seeker), f.job.ID, domain.ApplicationFields{ResumeURL: domain.Some("not a url")})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	assert.Equal(t, 0, f.apps.count())
	f.notifier.AssertNotCalled(t, "NotifyNewApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitNotificationFailureDoesNotFailSubmission(t *testing.T) {
	f := newApplicationFixture(t, usecase.ApplicationConfig{})
	f.notifier.On("NotifyNewApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	res, err := f.uc.Submit(context.Background(), actorOf(f.seeker), f.job.ID, domain.ApplicationFields{})
	require.NoError(t, err)
	assert.True(t, res.WasFirstSubmission)
}

func TestConcurrentSubmitCreatesOneRowAndOneNotification(t *testing.T) {
	f := newApplicationFixture(t, usecase.ApplicationConfig{})
	f.notifier.On("NotifyNewApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	firsts := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.uc.Submit(context.Background(), actorOf(f.seeker), f.job.ID, domain.ApplicationFields{CoverLetter: domain.Some("hello")})
			if assert.NoError(t, err) && res.WasFirstSubmission {
				mu.Lock()
				firsts++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, firsts)
	assert.Equal(t, 1, f.apps.count())
	f.notifier.AssertNumberOfCalls(t, "NotifyNewApplication", 1)
}

func TestListAndExportForJob(t *testing.T) {
	ctx := context.Background()
	f := newApplicationFixture(t, usecase.ApplicationConfig{})
	f.notifier.On("NotifyNewApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	_, err := f.uc.Submit(ctx, actorOf(f.seeker), f.job.ID, domain.ApplicationFields{CoverLetter: domain.Some("hi")})
	require.NoError(t, err)

	otherEmployer := f.users.add("Olga", "olga@example.com", domain.RoleEmployer)

	t.Run("owner lists", func(t *testing.T) {
		res, err := f.uc.ListForJob(ctx, actorOf(f.employer), f.job.ID, domain.Page{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Total)
		assert.Equal(t, domain.DefaultPerPage, res.PageSize)
	})

	t.Run("non-owner is denied", func(t *testing.T) {
		_, err := f.uc.ListForJob(ctx, actorOf(otherEmployer), f.job.ID, domain.Page{})
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		_, err = f.uc.ExportForJob(ctx, actorOf(otherEmployer), f.job.ID, "")
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("xlsx export", func(t *testing.T) {
		export, err := f.uc.ExportForJob(ctx, actorOf(f.employer), f.job.ID, "xlsx")
		require.NoError(t, err)
		assert.Contains(t, export.Filename, ".xlsx")

		book, err := excelize.OpenReader(bytes.NewReader(export.Content))
		require.NoError(t, err)
		rows, err := book.GetRows("Applications")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "APPLICATION ID", rows[0][0])
		assert.Equal(t, "pending", rows[1][3])
	})

	t.Run("csv export", func(t *testing.T) {
		export, err := f.uc.ExportForJob(ctx, actorOf(f.admin), f.job.ID, "csv")
		require.NoError(t, err)
		records, err := csv.NewReader(bytes.NewReader(export.Content)).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, "hi", records[1][5])
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := f.uc.ExportForJob(ctx, actorOf(f.employer), f.job.ID, "pdf")
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newApplicationFixture(t, usecase.ApplicationConfig{})
	f.notifier.On("NotifyNewApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	res, err := f.uc.Submit(ctx, actorOf(f.seeker), f.job.ID, domain.ApplicationFields{})
	require.NoError(t, err)
	id := res.Application.ID

	_, err = f.uc.UpdateStatus(ctx, actorOf(f.seeker), id, domain.ApplicationStatusAccepted)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err), "applicants cannot review themselves")

	app, err := f.uc.UpdateStatus(ctx, actorOf(f.employer), id, domain.ApplicationStatusReviewed)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusReviewed, app.Status)

	_, err = f.uc.UpdateStatus(ctx, actorOf(f.employer), id, domain.ApplicationStatusPending)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err), "owners move forward only")

	app, err = f.uc.UpdateStatus(ctx, actorOf(f.employer), id, domain.ApplicationStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusRejected, app.Status)

	app, err = f.uc.UpdateStatus(ctx, actorOf(f.admin), id, domain.ApplicationStatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status, "admins may correct any status")

	_, err = f.uc.UpdateStatus(ctx, actorOf(f.admin), 999, domain.ApplicationStatusPending)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestWithdrawAndView(t *testing.T) {
	ctx := context.Background()
	f := newApplicationFixture(t, usecase.ApplicationConfig{})
	f.notifier.On("NotifyNewApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	res, err := f.uc.Submit(ctx, actorOf(f.seeker), f.job.ID, domain.ApplicationFields{})
	require.NoError(t, err)
	id := res.Application.ID

	_, err = f.uc.GetApplication(ctx, actorOf(f.employer), id)
	assert.NoError(t, err)

	stranger := f.users.add("Tom", "tom@example.com", domain.RoleSeeker)
	_, err = f.uc.GetApplication(ctx, actorOf(stranger), id)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(f.uc.Withdraw(ctx, actorOf(f.employer), id)))
	require.NoError(t, f.uc.Withdraw(ctx, actorOf(f.seeker), id))
	assert.Equal(t, 0, f.apps.count())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(f.uc.Withdraw(ctx, actorOf(f.seeker), id)))

	mine, err := f.uc.MyApplications(ctx, actorOf(f.seeker), domain.Page{})
	require.NoError(t, err)
	assert.Empty(t, mine.Data)
}
