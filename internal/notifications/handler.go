package notifications

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vantutor/admin-backend/internal/models"
	"github.com/vantutor/admin-backend/internal/realtime"
	"github.com/vantutor/admin-backend/pkg/queue"
	"github.com/vantutor/admin-backend/pkg/response"
)

const recentLimit = 10

// EventNotification is the WebSocket event name for pushed notifications.
const EventNotification = "notification"

// PushPayload is the live push body sent over the hub.
type PushPayload struct {
	ID      uuid.UUID               `json:"id"`
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Type    models.NotificationType `json:"type"`
	Link    string                  `json:"link,omitempty"`
}

// Handler handles notification broadcasting endpoints.
type Handler struct {
	repo   *Repository
	queue  *queue.Queue
	hub    *realtime.Hub
	logger *zap.Logger
}

// NewHandler creates a notification handler. hub may be nil (no live push).
func NewHandler(repo *Repository, q *queue.Queue, hub *realtime.Hub, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, queue: q, hub: hub, logger: logger}
}

// SendRequest is the body for POST /notifications.
type SendRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type"`
	Link    string `json:"link"`
	Target  string `json:"target" binding:"required"` // "all" or a user ID
}

// Send handles POST /notifications: writes the central log entry, then
// delivers. A single-user target is delivered inline; target=all is
// handed to the background worker so the request returns immediately.
func (h *Handler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	nType := models.NotificationStudyUpdate
	switch models.NotificationType(req.Type) {
	case "", models.NotificationStudyUpdate:
	case models.NotificationExamReminder, models.NotificationLeaderboardChange, models.NotificationWelcome:
		nType = models.NotificationType(req.Type)
	default:
		response.BadRequest(c, "invalid notification type")
		return
	}

	var targetUser uuid.UUID
	if req.Target != models.TargetAll {
		var err error
		targetUser, err = uuid.Parse(req.Target)
		if err != nil {
			response.BadRequest(c, "target must be \"all\" or a user id")
			return
		}
	}

	n := &models.Notification{
		Title:   req.Title,
		Message: req.Message,
		Type:    nType,
		Link:    req.Link,
		Target:  req.Target,
	}
	ctx := c.Request.Context()
	if err := h.repo.Create(ctx, n); err != nil {
		response.Internal(c, "failed to create notification")
		return
	}

	push := PushPayload{ID: n.ID, Title: n.Title, Message: n.Message, Type: n.Type, Link: n.Link}

	if req.Target == models.TargetAll {
		if err := h.queue.EnqueueNotificationFanout(ctx, queue.NotificationFanoutPayload{NotificationID: n.ID}); err != nil {
			h.logger.Error("enqueue fanout failed", zap.Error(err), zap.String("notification_id", n.ID.String()))
			response.Internal(c, "failed to enqueue broadcast")
			return
		}
	} else {
		if err := h.repo.DeliverToUser(ctx, n.ID, targetUser); err != nil {
			response.Internal(c, "failed to deliver notification")
			return
		}
		if h.hub != nil {
			h.hub.NotifyUser(targetUser, EventNotification, push)
		}
	}

	h.logger.Info("notification sent",
		zap.String("notification_id", n.ID.String()), zap.String("target", n.Target))
	response.Created(c, n)
}

// ListRecent handles GET /notifications (the console's recent list).
func (h *Handler) ListRecent(c *gin.Context) {
	list, err := h.repo.ListRecent(c.Request.Context(), recentLimit)
	if err != nil {
		response.Internal(c, "failed to list notifications")
		return
	}
	response.OK(c, gin.H{"notifications": list})
}
