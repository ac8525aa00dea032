package users

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/vantutor/admin-backend/pkg/response"
)

// Handler handles user management HTTP endpoints (admin console).
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a user management handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /users?search=... (admin: user manager table).
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Internal(c, "failed to list users")
		return
	}
	response.OK(c, gin.H{"users": list})
}

// UpdateRequest is the body for PATCH /users/:id.
type UpdateRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	Level       string `json:"level"`
}

// Update handles PATCH /users/:id (display name and level; leaderboard
// display names follow).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.repo.Update(c.Request.Context(), id, req.DisplayName, req.Level); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "user not found")
			return
		}
		response.Internal(c, "failed to update user")
		return
	}
	response.OK(c, gin.H{"updated": true})
}

// Delete handles DELETE /users/:id. Removes the account and all
// dependent rows (leaderboards, events, notification copies).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "user not found")
			return
		}
		response.Internal(c, "failed to delete user")
		return
	}
	h.logger.Info("user deleted", zap.String("user_id", id.String()))
	response.NoContent(c)
}

// PromoteRequest is the body for POST /users/promote.
type PromoteRequest struct {
	FromLevel string `json:"from_level" binding:"required"`
	ToLevel   string `json:"to_level" binding:"required"`
}

// Promote handles POST /users/promote (bulk level promotion).
func (h *Handler) Promote(c *gin.Context) {
	var req PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.FromLevel == req.ToLevel {
		response.BadRequest(c, "from_level and to_level must differ")
		return
	}
	n, err := h.repo.PromoteByLevel(c.Request.Context(), req.FromLevel, req.ToLevel)
	if err != nil {
		response.Internal(c, "failed to promote users")
		return
	}
	h.logger.Info("users promoted",
		zap.String("from", req.FromLevel), zap.String("to", req.ToLevel), zap.Int("count", n))
	response.OK(c, gin.H{"promoted": n})
}
