package postgres

import (
	"context"
	"strings"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectCompany = `SELECT id, owner_id, name, website, location, industry, size, description,
	logo_path, logo_url, linkedin_url, twitter_url, created_at, updated_at FROM companies`

type companyRepo struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Website, &c.Location, &c.Industry, &c.Size, &c.Description,
		&c.LogoPath, &c.LogoURL, &c.LinkedinURL, &c.TwitterURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *companyRepo) Create(ctx context.Context, c *domain.Company) error {
	query := `INSERT INTO companies (owner_id, name, website, location, industry, size, description,
                  logo_path, logo_url, linkedin_url, twitter_url)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		c.OwnerID, c.Name, c.Website, c.Location, c.Industry, c.Size, c.Description,
		c.LogoPath, c.LogoURL, c.LinkedinURL, c.TwitterURL,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return mapErr(err)
}

func (r *companyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, selectCompany+` WHERE id = $1`, id))
}

func (r *companyRepo) Fetch(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, int64, error) {
	var w whereBuilder
	if q := strings.TrimSpace(filter.Query); q != "" {
		w.add("(name ILIKE ? OR description ILIKE ?)", likePattern(q))
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		w.add("location ILIKE ?", likePattern(loc))
	}
	if filter.Industry != "" {
		w.add("industry = ?", filter.Industry)
	}
	if filter.Size != "" {
		w.add("size = ?", filter.Size)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(filter.Page.Limit(), filter.Page.Offset())
	rows, err := r.db.Query(ctx, selectCompany+w.sql()+` ORDER BY name ASC, id ASC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, *c)
	}
	return companies, total, rows.Err()
}

func (r *companyRepo) UpdateLocked(ctx context.Context, id int64, fn func(c *domain.Company) error) (*domain.Company, error) {
	var company *domain.Company
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		c, err := scanCompany(tx.QueryRow(ctx, selectCompany+` WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		query := `UPDATE companies SET name = $2, website = $3, location = $4, industry = $5, size = $6,
                      description = $7, logo_path = $8, logo_url = $9, linkedin_url = $10, twitter_url = $11,
                      updated_at = NOW()
                  WHERE id = $1 RETURNING updated_at`
		if err := tx.QueryRow(ctx, query,
			c.ID, c.Name, c.Website, c.Location, c.Industry, c.Size,
			c.Description, c.LogoPath, c.LogoURL, c.LinkedinURL, c.TwitterURL,
		).Scan(&c.UpdatedAt); err != nil {
			return mapErr(err)
		}
		company = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (r *companyRepo) DeleteLocked(ctx context.Context, id int64, fn func(c *domain.Company) error) error {
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		c, err := scanCompany(tx.QueryRow(ctx, selectCompany+` WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
		return err
	})
}
