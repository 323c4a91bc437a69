package domain

import "context"

// DashboardSummary carries the totals shown on a user's landing page. Keys of
// Totals depend on Role.
type DashboardSummary struct {
	Role   string           `json:"role"`
	Totals map[string]int64 `json:"totals"`
}

type DashboardRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountJobs(ctx context.Context, employerID *int64) (int64, error)
	CountApplications(ctx context.Context) (int64, error)
	CountApplicationsToEmployer(ctx context.Context, employerID int64) (int64, error)
	CountApplicationsByUser(ctx context.Context, userID int64) (int64, error)
	CountSavedJobs(ctx context.Context, userID int64) (int64, error)
	CountUnreadNotifications(ctx context.Context, userID int64) (int64, error)
}

type DashboardUsecase interface {
	Summary(ctx context.Context, actor *Actor) (*DashboardSummary, error)
}
