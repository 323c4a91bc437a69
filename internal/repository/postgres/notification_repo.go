package postgres

import (
	"context"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectNotification = `SELECT id, user_id, type, data, read_at, created_at FROM notifications`

type notificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	var data []byte
	if err := row.Scan(&n.ID, &n.UserID, &n.Type, &data, &n.ReadAt, &n.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	n.Data = data
	return &n, nil
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	data := []byte(n.Data)
	if len(data) == 0 {
		data = []byte("{}")
	}
	query := `INSERT INTO notifications (id, user_id, type, data) VALUES ($1, $2, $3, $4::jsonb) RETURNING created_at`
	return mapErr(r.db.QueryRow(ctx, query, n.ID.String(), n.UserID, n.Type, string(data)).Scan(&n.CreatedAt))
}

func (r *notificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	return scanNotification(r.db.QueryRow(ctx, selectNotification+` WHERE id = $1`, id.String()))
}

func (r *notificationRepo) query(ctx context.Context, sql string, args ...any) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func (r *notificationRepo) ListUnread(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return r.query(ctx, selectNotification+` WHERE user_id = $1 AND read_at IS NULL ORDER BY created_at DESC`, userID)
}

func (r *notificationRepo) ListRead(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	return r.query(ctx, selectNotification+` WHERE user_id = $1 AND read_at IS NOT NULL ORDER BY read_at DESC LIMIT $2`, userID, limit)
}

// MarkRead leaves an already-read notification untouched.
func (r *notificationRepo) MarkRead(ctx context.Context, userID int64, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read_at = COALESCE(read_at, $3) WHERE id = $1 AND user_id = $2`,
		id.String(), userID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID int64, at time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET read_at = $2 WHERE user_id = $1 AND read_at IS NULL`, userID, at)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *notificationRepo) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id.String(), userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
