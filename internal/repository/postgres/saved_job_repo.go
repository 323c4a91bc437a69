package postgres

import (
	"context"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type savedJobRepo struct {
	db *pgxpool.Pool
}

func NewSavedJobRepository(db *pgxpool.Pool) domain.SavedJobRepository {
	return &savedJobRepo{db: db}
}

// Save is idempotent: saving twice returns the original row.
func (r *savedJobRepo) Save(ctx context.Context, userID, jobID int64) (*domain.SavedJob, error) {
	if _, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (user_id, job_id) VALUES ($1, $2) ON CONFLICT ON CONSTRAINT saved_jobs_user_job_key DO NOTHING`,
		userID, jobID,
	); err != nil {
		return nil, mapErr(err)
	}

	var s domain.SavedJob
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, job_id, created_at FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID,
	).Scan(&s.ID, &s.UserID, &s.JobID, &s.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (r *savedJobRepo) Remove(ctx context.Context, userID, jobID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	return err
}

func (r *savedJobRepo) ListByUser(ctx context.Context, userID int64, page domain.Page) ([]domain.SavedJob, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM saved_jobs WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT s.id, s.user_id, s.job_id, s.created_at, ` + jobColumns + `, u.name, c.name, c.logo_url
              FROM saved_jobs s
              JOIN job_listings j ON j.id = s.job_id
              LEFT JOIN users u ON u.id = j.employer_id
              LEFT JOIN companies c ON c.id = j.company_id
              WHERE s.user_id = $1
              ORDER BY s.created_at DESC, s.id DESC
              LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	saved := []domain.SavedJob{}
	for rows.Next() {
		var s domain.SavedJob
		var job domain.Job
		var tags []string
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.JobID, &s.CreatedAt,
			&job.ID, &job.EmployerID, &job.CompanyID, &job.Title, &job.Location, &job.Type, &job.SalaryMin, &job.SalaryMax,
			pq.Array(&tags), &job.Description, &job.Status, &job.CreatedAt, &job.UpdatedAt,
			&job.EmployerName, &job.CompanyName, &job.CompanyLogo,
		); err != nil {
			return nil, 0, err
		}
		if tags == nil {
			tags = []string{}
		}
		job.Tags = tags
		s.Job = &job
		saved = append(saved, s)
	}
	return saved, total, rows.Err()
}
