package leaderboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantutor/admin-backend/internal/models"
)

// Board selects which leaderboard table a query runs against.
type Board string

const (
	BoardOverall Board = "leaderboard_overall"
	BoardWeekly  Board = "leaderboard_weekly"
)

// Repository handles leaderboard persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a leaderboard repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Top returns the highest-XP entries of a board.
func (r *Repository) Top(ctx context.Context, board Board, limit int) ([]models.LeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, display_name, xp FROM `+string(board)+` ORDER BY xp DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.XP); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Count returns the number of players on the overall leaderboard.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leaderboard_overall`).Scan(&n)
	return n, err
}
