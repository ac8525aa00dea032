package activitylog

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vantutor/admin-backend/pkg/response"
)

// Handler ingests activity events reported by the learning apps.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates an activity log handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// LoginEventRequest is the body for POST /events/login.
type LoginEventRequest struct {
	UserID    uuid.UUID  `json:"user_id" binding:"required"`
	Timestamp *time.Time `json:"timestamp"` // defaults to now
	IPAddress string     `json:"ip_address"`
	Location  string     `json:"location"` // pre-resolved "City, Country"
	UserAgent string     `json:"user_agent"`
}

// RecordLogin handles POST /events/login.
func (h *Handler) RecordLogin(c *gin.Context) {
	var req LoginEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	at := time.Now()
	if req.Timestamp != nil {
		at = *req.Timestamp
	}
	if err := h.repo.RecordLogin(c.Request.Context(), req.UserID, at, req.IPAddress, req.Location, req.UserAgent); err != nil {
		h.logger.Warn("record login event failed", zap.Error(err), zap.String("user_id", req.UserID.String()))
		response.Internal(c, "failed to record login event")
		return
	}
	response.Created(c, gin.H{"recorded": true})
}

// SessionEventRequest is the body for POST /events/session.
type SessionEventRequest struct {
	UserID          uuid.UUID `json:"user_id" binding:"required"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationSeconds int64     `json:"duration_seconds" binding:"min=0"`
}

// RecordSession handles POST /events/session.
func (h *Handler) RecordSession(c *gin.Context) {
	var req SessionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.repo.RecordSession(c.Request.Context(), req.UserID, req.StartTime, req.DurationSeconds); err != nil {
		h.logger.Warn("record session event failed", zap.Error(err), zap.String("user_id", req.UserID.String()))
		response.Internal(c, "failed to record session event")
		return
	}
	response.Created(c, gin.H{"recorded": true})
}
