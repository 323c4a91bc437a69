package postgres

import (
	"context"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type dashboardRepo struct {
	db *pgxpool.Pool
}

func NewDashboardRepository(db *pgxpool.Pool) domain.DashboardRepository {
	return &dashboardRepo{db: db}
}

func (r *dashboardRepo) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *dashboardRepo) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}

func (r *dashboardRepo) CountJobs(ctx context.Context, employerID *int64) (int64, error) {
	if employerID == nil {
		return r.count(ctx, `SELECT COUNT(*) FROM job_listings`)
	}
	return r.count(ctx, `SELECT COUNT(*) FROM job_listings WHERE employer_id = $1`, *employerID)
}

func (r *dashboardRepo) CountApplications(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM applications`)
}

func (r *dashboardRepo) CountApplicationsToEmployer(ctx context.Context, employerID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM applications a JOIN job_listings j ON j.id = a.job_id WHERE j.employer_id = $1`, employerID)
}

func (r *dashboardRepo) CountApplicationsByUser(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM applications WHERE user_id = $1`, userID)
}

func (r *dashboardRepo) CountSavedJobs(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM saved_jobs WHERE user_id = $1`, userID)
}

func (r *dashboardRepo) CountUnreadNotifications(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL`, userID)
}
