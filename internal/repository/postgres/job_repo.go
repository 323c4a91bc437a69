package postgres

import (
	"context"
	"strings"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const jobColumns = `j.id, j.employer_id, j.company_id, j.title, j.location, j.type, j.salary_min, j.salary_max,
	j.tags, j.description, j.status, j.created_at, j.updated_at`

const selectJob = `SELECT ` + jobColumns + `, u.name, c.name, c.logo_url
	FROM job_listings j
	LEFT JOIN users u ON u.id = j.employer_id
	LEFT JOIN companies c ON c.id = j.company_id`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row pgx.Row, joined bool) (*domain.Job, error) {
	var job domain.Job
	dest := []any{
		&job.ID, &job.EmployerID, &job.CompanyID, &job.Title, &job.Location, &job.Type, &job.SalaryMin, &job.SalaryMax,
		pq.Array(&job.Tags), &job.Description, &job.Status, &job.CreatedAt, &job.UpdatedAt,
	}
	if joined {
		dest = append(dest, &job.EmployerName, &job.CompanyName, &job.CompanyLogo)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, mapErr(err)
	}
	if job.Tags == nil {
		job.Tags = []string{}
	}
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	if job.Tags == nil {
		job.Tags = []string{}
	}
	query := `INSERT INTO job_listings (employer_id, company_id, title, location, type, salary_min, salary_max, tags, description, status)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		job.EmployerID, job.CompanyID, job.Title, job.Location, job.Type, job.SalaryMin, job.SalaryMax,
		pq.Array(job.Tags), job.Description, job.Status,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	return mapErr(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	return scanJob(r.db.QueryRow(ctx, selectJob+` WHERE j.id = $1`, id), true)
}

func jobWhere(filter domain.JobFilter) whereBuilder {
	var w whereBuilder
	if q := strings.TrimSpace(filter.Query); q != "" {
		w.add("(j.title ILIKE ? OR j.description ILIKE ?)", likePattern(q))
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		w.add("j.location ILIKE ?", likePattern(loc))
	}
	if filter.Type != "" {
		w.add("j.type = ?", filter.Type)
	}
	if filter.Status != "" {
		w.add("j.status = ?", filter.Status)
	}
	if filter.CompanyID != nil {
		w.add("j.company_id = ?", *filter.CompanyID)
	}
	if len(filter.Keywords) > 0 {
		patterns := make([]string, 0, len(filter.Keywords))
		for _, kw := range filter.Keywords {
			patterns = append(patterns, likePattern(kw))
		}
		w.add("(j.title ILIKE ANY(?) OR j.description ILIKE ANY(?) OR array_to_string(j.tags, ' ') ILIKE ANY(?))", pq.Array(patterns))
	}
	return w
}

func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter) ([]domain.Job, int64, error) {
	w := jobWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_listings j`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(filter.Page.Limit(), filter.Page.Offset())
	rows, err := r.db.Query(ctx, selectJob+w.sql()+` ORDER BY j.created_at DESC, j.id DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows, true)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, rows.Err()
}

func lockJob(ctx context.Context, tx pgx.Tx, id int64) (*domain.Job, error) {
	return scanJob(tx.QueryRow(ctx, `SELECT `+jobColumns+` FROM job_listings j WHERE j.id = $1 FOR UPDATE`, id), false)
}

func (r *jobRepo) UpdateLocked(ctx context.Context, id int64, fn func(job *domain.Job) error) (*domain.Job, error) {
	var job *domain.Job
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		if job, err = lockJob(ctx, tx, id); err != nil {
			return err
		}
		if err := fn(job); err != nil {
			return err
		}
		if job.Tags == nil {
			job.Tags = []string{}
		}
		query := `UPDATE job_listings SET company_id = $2, title = $3, location = $4, type = $5, salary_min = $6,
                      salary_max = $7, tags = $8, description = $9, status = $10, updated_at = NOW()
                  WHERE id = $1 RETURNING updated_at`
		return mapErr(tx.QueryRow(ctx, query,
			job.ID, job.CompanyID, job.Title, job.Location, job.Type, job.SalaryMin,
			job.SalaryMax, pq.Array(job.Tags), job.Description, job.Status,
		).Scan(&job.UpdatedAt))
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, job.ID)
}

func (r *jobRepo) DeleteLocked(ctx context.Context, id int64, fn func(job *domain.Job) error) error {
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		job, err := lockJob(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(job); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM job_listings WHERE id = $1`, id)
		return err
	})
}
