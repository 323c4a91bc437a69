package postgres

import (
	"context"
	"strings"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectMentor = `SELECT id, user_id, name, headline, bio, expertise, location, website,
	linkedin_url, github_url, avatar_url, created_at, updated_at FROM mentors`

type mentorRepo struct {
	db *pgxpool.Pool
}

func NewMentorRepository(db *pgxpool.Pool) domain.MentorRepository {
	return &mentorRepo{db: db}
}

func scanMentor(row pgx.Row) (*domain.Mentor, error) {
	var m domain.Mentor
	err := row.Scan(
		&m.ID, &m.UserID, &m.Name, &m.Headline, &m.Bio, &m.Expertise, &m.Location, &m.Website,
		&m.LinkedinURL, &m.GithubURL, &m.AvatarURL, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &m, nil
}

func (r *mentorRepo) Create(ctx context.Context, m *domain.Mentor) error {
	query := `INSERT INTO mentors (user_id, name, headline, bio, expertise, location, website, linkedin_url, github_url, avatar_url)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		m.UserID, m.Name, m.Headline, m.Bio, m.Expertise, m.Location, m.Website, m.LinkedinURL, m.GithubURL, m.AvatarURL,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return mapErr(err)
}

func (r *mentorRepo) GetByID(ctx context.Context, id int64) (*domain.Mentor, error) {
	return scanMentor(r.db.QueryRow(ctx, selectMentor+` WHERE id = $1`, id))
}

func (r *mentorRepo) Fetch(ctx context.Context, query string, page domain.Page) ([]domain.Mentor, int64, error) {
	var w whereBuilder
	if q := strings.TrimSpace(query); q != "" {
		w.add("(name ILIKE ? OR expertise ILIKE ? OR headline ILIKE ?)", likePattern(q))
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM mentors`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(page.Limit(), page.Offset())
	rows, err := r.db.Query(ctx, selectMentor+w.sql()+` ORDER BY name ASC, id ASC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	mentors := []domain.Mentor{}
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, 0, err
		}
		mentors = append(mentors, *m)
	}
	return mentors, total, rows.Err()
}

func (r *mentorRepo) Update(ctx context.Context, m *domain.Mentor) error {
	query := `UPDATE mentors SET user_id = $2, name = $3, headline = $4, bio = $5, expertise = $6, location = $7,
                  website = $8, linkedin_url = $9, github_url = $10, avatar_url = $11, updated_at = NOW()
              WHERE id = $1 RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		m.ID, m.UserID, m.Name, m.Headline, m.Bio, m.Expertise, m.Location,
		m.Website, m.LinkedinURL, m.GithubURL, m.AvatarURL,
	).Scan(&m.UpdatedAt)
	return mapErr(err)
}

func (r *mentorRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM mentors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
