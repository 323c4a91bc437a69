package postgres

import (
	"context"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `u.id, u.name, u.email, u.password_hash, u.role_id, COALESCE(r.name, ''),
	u.phone, u.headline, u.location, u.website, u.linkedin_url, u.github_url,
	u.bio, u.avatar_url, u.resume_url, u.created_at, u.updated_at`

const selectUser = `SELECT ` + userColumns + ` FROM users u LEFT JOIN roles r ON r.id = u.role_id`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID, &u.Role,
		&u.Phone, &u.Headline, &u.Location, &u.Website, &u.LinkedinURL, &u.GithubURL,
		&u.Bio, &u.AvatarURL, &u.ResumeURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (name, email, password_hash, role_id)
              VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, user.RoleID).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return mapErr(err)
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, selectUser+` WHERE u.id = $1`, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, selectUser+` WHERE LOWER(u.email) = LOWER($1)`, email))
}

func (r *userRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET name = $2, phone = $3, headline = $4, location = $5, website = $6,
                  linkedin_url = $7, github_url = $8, bio = $9, avatar_url = $10, resume_url = $11,
                  updated_at = NOW()
              WHERE id = $1 RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Name, user.Phone, user.Headline, user.Location, user.Website,
		user.LinkedinURL, user.GithubURL, user.Bio, user.AvatarURL, user.ResumeURL,
	).Scan(&user.UpdatedAt)
	return mapErr(err)
}

// UpdateRole takes the same user row lock as token issue, so a login racing
// the change either finishes first and loses its token here, or waits and
// snapshots the new role.
func (r *userRepo) UpdateRole(ctx context.Context, userID, roleID int64) (int64, error) {
	var revoked int64
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := lockUserRole(ctx, tx, userID, lockForUpdate); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE users SET role_id = $2, updated_at = NOW() WHERE id = $1`, userID, roleID); err != nil {
			return mapErr(err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM personal_access_tokens WHERE user_id = $1`, userID)
		if err != nil {
			return err
		}
		revoked = tag.RowsAffected()
		return nil
	})
	return revoked, err
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
