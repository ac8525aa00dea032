package notifications

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantutor/admin-backend/internal/models"
)

// Repository handles the central notification log and per-user copies.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a notification repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a central log entry.
func (r *Repository) Create(ctx context.Context, n *models.Notification) error {
	const q = `INSERT INTO notifications (title, message, type, link, target)
		VALUES ($1, $2, $3, NULLIF($4,''), $5)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, n.Title, n.Message, string(n.Type), n.Link, n.Target).
		Scan(&n.ID, &n.CreatedAt)
}

// GetByID returns a central log entry.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	const q = `SELECT id, title, message, type, COALESCE(link,''), target, created_at
		FROM notifications WHERE id = $1`
	var n models.Notification
	err := r.pool.QueryRow(ctx, q, id).Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.Link, &n.Target, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListRecent returns the newest central log entries.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, message, type, COALESCE(link,''), target, created_at
		 FROM notifications ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.Link, &n.Target, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// DeliverToUser writes one user's copy of a notification. Idempotent:
// re-delivery after a retried fan-out job is a no-op.
func (r *Repository) DeliverToUser(ctx context.Context, notificationID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_notifications (notification_id, user_id)
		 VALUES ($1, $2) ON CONFLICT (notification_id, user_id) DO NOTHING`,
		notificationID, userID)
	return err
}

// DeliverToAll fans one notification out to every user in a single
// statement. Returns the number of copies written; already-delivered
// pairs are skipped, which keeps retried jobs idempotent.
func (r *Repository) DeliverToAll(ctx context.Context, notificationID uuid.UUID) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO user_notifications (notification_id, user_id)
		 SELECT $1, id FROM users
		 ON CONFLICT (notification_id, user_id) DO NOTHING`,
		notificationID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
