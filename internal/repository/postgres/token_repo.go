package postgres

import (
	"context"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type tokenRepo struct {
	db *pgxpool.Pool
}

func NewTokenRepository(db *pgxpool.Pool) domain.TokenRepository {
	return &tokenRepo{db: db}
}

const selectToken = `SELECT id, user_id, name, token_hash, abilities, last_used_at, created_at FROM personal_access_tokens`

func scanToken(row pgx.Row) (*domain.AccessToken, error) {
	var t domain.AccessToken
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.TokenHash, pq.Array(&t.Abilities), &t.LastUsedAt, &t.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func insertToken(ctx context.Context, q querier, token *domain.AccessToken) error {
	query := `INSERT INTO personal_access_tokens (user_id, name, token_hash, abilities, created_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return mapErr(q.QueryRow(ctx, query,
		token.UserID, token.Name, token.TokenHash, pq.Array(token.Abilities), token.CreatedAt,
	).Scan(&token.ID))
}

const (
	lockForUpdate = "FOR UPDATE OF u"
	lockForShare  = "FOR SHARE OF u"
)

// lockUserRole locks the user row and returns its current role name.
func lockUserRole(ctx context.Context, tx pgx.Tx, userID int64, lock string) (string, error) {
	var role string
	query := `SELECT COALESCE(r.name, '') FROM users u LEFT JOIN roles r ON r.id = u.role_id WHERE u.id = $1 ` + lock
	if err := tx.QueryRow(ctx, query, userID).Scan(&role); err != nil {
		return "", mapErr(err)
	}
	return role, nil
}

// Create shares the user row lock with other issuers; a role change holding
// it exclusively is waited for.
func (r *tokenRepo) Create(ctx context.Context, token *domain.AccessToken, abilitiesFor domain.AbilityFunc) error {
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		role, err := lockUserRole(ctx, tx, token.UserID, lockForShare)
		if err != nil {
			return err
		}
		token.Abilities = abilitiesFor(role)
		return insertToken(ctx, tx, token)
	})
}

// ReplaceForUser locks the owning user row so concurrent logins of the same
// user serialize; exactly one token survives.
func (r *tokenRepo) ReplaceForUser(ctx context.Context, token *domain.AccessToken, abilitiesFor domain.AbilityFunc) (int64, error) {
	var revoked int64
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		role, err := lockUserRole(ctx, tx, token.UserID, lockForUpdate)
		if err != nil {
			return err
		}
		token.Abilities = abilitiesFor(role)
		tag, err := tx.Exec(ctx, `DELETE FROM personal_access_tokens WHERE user_id = $1`, token.UserID)
		if err != nil {
			return err
		}
		revoked = tag.RowsAffected()
		return insertToken(ctx, tx, token)
	})
	return revoked, err
}

func (r *tokenRepo) GetByID(ctx context.Context, id int64) (*domain.AccessToken, error) {
	return scanToken(r.db.QueryRow(ctx, selectToken+` WHERE id = $1`, id))
}

func (r *tokenRepo) GetByHash(ctx context.Context, hash string) (*domain.AccessToken, error) {
	return scanToken(r.db.QueryRow(ctx, selectToken+` WHERE token_hash = $1`, hash))
}

func (r *tokenRepo) Touch(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE personal_access_tokens SET last_used_at = $2 WHERE id = $1`, id, at)
	return err
}

func (r *tokenRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM personal_access_tokens WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *tokenRepo) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM personal_access_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
