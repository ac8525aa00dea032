package dashboard

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantutor/admin-backend/internal/courses"
	"github.com/vantutor/admin-backend/internal/leaderboard"
	"github.com/vantutor/admin-backend/internal/users"
	"github.com/vantutor/admin-backend/pkg/response"
)

// Handler handles GET /dashboard/stats.
type Handler struct {
	pool            *pgxpool.Pool
	userRepo        *users.Repository
	courseRepo      *courses.Repository
	leaderboardRepo *leaderboard.Repository
}

// NewHandler creates a dashboard handler.
func NewHandler(pool *pgxpool.Pool, userRepo *users.Repository, courseRepo *courses.Repository, leaderboardRepo *leaderboard.Repository) *Handler {
	return &Handler{pool: pool, userRepo: userRepo, courseRepo: courseRepo, leaderboardRepo: leaderboardRepo}
}

// StatsResponse is the JSON shape for the dashboard stat cards.
type StatsResponse struct {
	TotalUsers         int `json:"total_users"`
	TotalCourses       int `json:"total_courses"`
	LeaderboardPlayers int `json:"leaderboard_players"`
	ActiveExams        int `json:"active_exams"`
}

// GetStats handles GET /dashboard/stats.
func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	totalUsers, err := h.userRepo.Count(ctx)
	if err != nil {
		response.Internal(c, "failed to count users")
		return
	}
	totalCourses, err := h.courseRepo.Count(ctx)
	if err != nil {
		response.Internal(c, "failed to count courses")
		return
	}
	players, err := h.leaderboardRepo.Count(ctx)
	if err != nil {
		response.Internal(c, "failed to count leaderboard players")
		return
	}
	exams, err := h.countActiveExams(ctx)
	if err != nil {
		response.Internal(c, "failed to count exams")
		return
	}

	response.OK(c, StatsResponse{
		TotalUsers:         totalUsers,
		TotalCourses:       totalCourses,
		LeaderboardPlayers: players,
		ActiveExams:        exams,
	})
}

func (h *Handler) countActiveExams(ctx context.Context) (int, error) {
	var n int
	err := h.pool.QueryRow(ctx, `SELECT COUNT(*) FROM exams WHERE is_active`).Scan(&n)
	return n, err
}

// GetLeaderboard handles GET /dashboard/leaderboard?board=overall|weekly&limit=N.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	board := leaderboard.BoardOverall
	if c.Query("board") == "weekly" {
		board = leaderboard.BoardWeekly
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	list, err := h.leaderboardRepo.Top(c.Request.Context(), board, limit)
	if err != nil {
		response.Internal(c, "failed to load leaderboard")
		return
	}
	response.OK(c, gin.H{"entries": list})
}
