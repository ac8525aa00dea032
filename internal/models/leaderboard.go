package models

import "github.com/google/uuid"

// LeaderboardEntry is one row of the overall or weekly leaderboard.
type LeaderboardEntry struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	XP          int64     `json:"xp"`
}
