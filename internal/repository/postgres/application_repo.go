package postgres

import (
	"context"
	"errors"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `a.id, a.job_id, a.user_id, a.cover_letter, a.resume_url, a.resume_path, a.status,
	a.created_at, a.updated_at, j.employer_id`

// selectApplication joins the job for ownership checks and the applicant for
// employer-facing listings.
const selectApplication = `SELECT ` + applicationColumns + `, j.title, u.name, u.email
	FROM applications a
	JOIN job_listings j ON j.id = a.job_id
	JOIN users u ON u.id = a.user_id`

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func scanApplication(row pgx.Row, joined bool) (*domain.Application, error) {
	var a domain.Application
	dest := []any{
		&a.ID, &a.JobID, &a.UserID, &a.CoverLetter, &a.ResumeURL, &a.ResumePath, &a.Status,
		&a.CreatedAt, &a.UpdatedAt, &a.JobEmployerID,
	}
	if joined {
		dest = append(dest, &a.JobTitle, &a.ApplicantName, &a.ApplicantEmail)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &a, nil
}

func lockApplicationPair(ctx context.Context, tx pgx.Tx, jobID, userID int64) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + `
              FROM applications a JOIN job_listings j ON j.id = a.job_id
              WHERE a.job_id = $1 AND a.user_id = $2 FOR UPDATE OF a`
	return scanApplication(tx.QueryRow(ctx, query, jobID, userID), false)
}

func lockApplication(ctx context.Context, tx pgx.Tx, id int64) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + `
              FROM applications a JOIN job_listings j ON j.id = a.job_id
              WHERE a.id = $1 FOR UPDATE OF a`
	app, err := scanApplication(tx.QueryRow(ctx, query, id), false)
	return app, mapErr(err)
}

func saveApplication(ctx context.Context, tx pgx.Tx, a *domain.Application) error {
	query := `UPDATE applications SET cover_letter = $2, resume_url = $3, resume_path = $4, status = $5, updated_at = NOW()
              WHERE id = $1 RETURNING updated_at`
	return mapErr(tx.QueryRow(ctx, query, a.ID, a.CoverLetter, a.ResumeURL, a.ResumePath, a.Status).Scan(&a.UpdatedAt))
}

// Upsert keeps at most one application per (job, user). A concurrent first
// submission that loses the insert race is retried as an update of the
// winner's row, so fn sees created=true exactly once per pair.
func (r *applicationRepo) Upsert(ctx context.Context, jobID, userID int64, fn func(app *domain.Application, created bool) error) (*domain.Application, bool, error) {
	var (
		result  *domain.Application
		created bool
	)
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		update := func(app *domain.Application) error {
			if err := fn(app, false); err != nil {
				return err
			}
			if err := saveApplication(ctx, tx, app); err != nil {
				return err
			}
			result = app
			return nil
		}

		existing, err := lockApplicationPair(ctx, tx, jobID, userID)
		if err == nil {
			return update(existing)
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		app := &domain.Application{JobID: jobID, UserID: userID}
		if err := fn(app, true); err != nil {
			return err
		}
		query := `INSERT INTO applications (job_id, user_id, cover_letter, resume_url, resume_path, status)
                  VALUES ($1, $2, $3, $4, $5, $6)
                  ON CONFLICT ON CONSTRAINT applications_job_user_key DO NOTHING
                  RETURNING id, created_at, updated_at`
		err = tx.QueryRow(ctx, query, jobID, userID, app.CoverLetter, app.ResumeURL, app.ResumePath, app.Status).
			Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
		switch {
		case err == nil:
			if err := tx.QueryRow(ctx, `SELECT employer_id FROM job_listings WHERE id = $1`, jobID).Scan(&app.JobEmployerID); err != nil {
				return mapErr(err)
			}
			result, created = app, true
			return nil
		case !errors.Is(err, pgx.ErrNoRows):
			return mapErr(err)
		}

		existing, err = lockApplicationPair(ctx, tx, jobID, userID)
		if err != nil {
			return mapErr(err)
		}
		return update(existing)
	})
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	app, err := scanApplication(r.db.QueryRow(ctx, selectApplication+` WHERE a.id = $1`, id), true)
	return app, mapErr(err)
}

func (r *applicationRepo) list(ctx context.Context, where string, arg any, page *domain.Page) ([]domain.Application, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications a WHERE `+where, arg).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := selectApplication + ` WHERE ` + where + ` ORDER BY a.created_at DESC, a.id DESC`
	args := []any{arg}
	if page != nil {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, page.Limit(), page.Offset())
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows, true)
		if err != nil {
			return nil, 0, err
		}
		apps = append(apps, *app)
	}
	return apps, total, rows.Err()
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID int64, page domain.Page) ([]domain.Application, int64, error) {
	return r.list(ctx, "a.job_id = $1", jobID, &page)
}

func (r *applicationRepo) ListAllByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	apps, _, err := r.list(ctx, "a.job_id = $1", jobID, nil)
	return apps, err
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID int64, page domain.Page) ([]domain.Application, int64, error) {
	return r.list(ctx, "a.user_id = $1", userID, &page)
}

func (r *applicationRepo) UpdateLocked(ctx context.Context, id int64, fn func(app *domain.Application) error) (*domain.Application, error) {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		app, err := lockApplication(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(app); err != nil {
			return err
		}
		return saveApplication(ctx, tx, app)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *applicationRepo) DeleteLocked(ctx context.Context, id int64, fn func(app *domain.Application) error) error {
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		app, err := lockApplication(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(app); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
		return err
	})
}
