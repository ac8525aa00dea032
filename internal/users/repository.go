package users

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantutor/admin-backend/internal/models"
)

// Repository handles user management persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a user management repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns users with XP joined from the overall leaderboard,
// optionally filtered by a search term over display name and email.
func (r *Repository) List(ctx context.Context, search string) ([]models.UserPublic, error) {
	const q = `SELECT u.id, u.email, u.display_name, u.role,
		COALESCE(u.course_id,''), COALESCE(u.level,''), u.plan, u.current_streak,
		COALESCE(l.xp, 0), u.created_at
		FROM users u
		LEFT JOIN leaderboard_overall l ON l.user_id = u.id
		WHERE $1 = '' OR u.display_name ILIKE '%' || $1 || '%' OR u.email ILIKE '%' || $1 || '%'
		ORDER BY u.display_name, u.email`
	rows, err := r.pool.Query(ctx, q, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.UserPublic
	for rows.Next() {
		var u models.UserPublic
		var role string
		if err := rows.Scan(&u.ID, &u.Email, &u.DisplayName, &role,
			&u.CourseID, &u.Level, &u.Plan, &u.CurrentStreak, &u.XP, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = models.Role(role)
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update changes a user's display name and level, and keeps the
// leaderboard display names in sync, in one transaction.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, displayName, level string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE users SET display_name = $1, level = NULLIF($2,''), updated_at = NOW() WHERE id = $3`,
		displayName, level, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	if _, err := tx.Exec(ctx, `UPDATE leaderboard_overall SET display_name = $1 WHERE user_id = $2`, displayName, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE leaderboard_weekly SET display_name = $1 WHERE user_id = $2`, displayName, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes a user. Leaderboard rows, activity events and
// notification copies go with them via ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// PromoteByLevel moves every user on fromLevel to toLevel and returns
// how many were promoted.
func (r *Repository) PromoteByLevel(ctx context.Context, fromLevel, toLevel string) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET level = $2, updated_at = NOW() WHERE level = $1`,
		fromLevel, toLevel)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// Count returns the total number of users.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
