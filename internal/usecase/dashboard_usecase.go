package usecase

import (
	"context"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
)

type dashboardUsecase struct {
	repo domain.DashboardRepository
}

func NewDashboardUsecase(repo domain.DashboardRepository) domain.DashboardUsecase {
	return &dashboardUsecase{repo: repo}
}

// Summary returns admin-wide, employer or personal totals depending on the
// actor's abilities.
func (u *dashboardUsecase) Summary(ctx context.Context, actor *domain.Actor) (*domain.DashboardSummary, error) {
	if actor == nil {
		return nil, apperror.Unauthorized("Unauthenticated.")
	}

	unread, err := u.repo.CountUnreadNotifications(ctx, actor.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	type counter struct {
		key   string
		count func() (int64, error)
	}
	var role string
	var counters []counter

	switch {
	case actor.IsAdmin():
		role = domain.RoleAdmin
		counters = []counter{
			{"users", func() (int64, error) { return u.repo.CountUsers(ctx) }},
			{"jobs", func() (int64, error) { return u.repo.CountJobs(ctx, nil) }},
			{"applications", func() (int64, error) { return u.repo.CountApplications(ctx) }},
		}
	case actor.IsEmployer():
		role = domain.RoleEmployer
		employerID := actor.UserID
		counters = []counter{
			{"my_jobs", func() (int64, error) { return u.repo.CountJobs(ctx, &employerID) }},
			{"applications_to_my_jobs", func() (int64, error) { return u.repo.CountApplicationsToEmployer(ctx, employerID) }},
		}
	default:
		role = actor.Role
		if role == "" {
			role = domain.RoleUser
		}
		counters = []counter{
			{"my_applications", func() (int64, error) { return u.repo.CountApplicationsByUser(ctx, actor.UserID) }},
			{"my_saved_jobs", func() (int64, error) { return u.repo.CountSavedJobs(ctx, actor.UserID) }},
		}
	}

	totals := map[string]int64{"unread_notifications": unread}
	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return nil, apperror.Internal(err)
		}
		totals[c.key] = n
	}
	return &domain.DashboardSummary{Role: role, Totals: totals}, nil
}
