package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vantutor/admin-backend/internal/models"
	"github.com/vantutor/admin-backend/internal/notifications"
	"github.com/vantutor/admin-backend/internal/realtime"
	"github.com/vantutor/admin-backend/pkg/queue"
)

// NotificationProcessor fans broadcast notifications out: one
// user_notifications row per platform user plus a live push to every
// connected client.
type NotificationProcessor struct {
	repo   *notifications.Repository
	queue  *queue.Queue
	hub    *realtime.Hub
	logger *zap.Logger
}

// NewNotificationProcessor creates a fan-out processor. The worker has
// no local WebSocket clients, so its hub mainly relays pushes to server
// instances through Redis pub/sub; nil disables live pushes entirely.
func NewNotificationProcessor(repo *notifications.Repository, q *queue.Queue, hub *realtime.Hub, logger *zap.Logger) *NotificationProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationProcessor{repo: repo, queue: q, hub: hub, logger: logger}
}

// Process executes one fan-out job.
func (p *NotificationProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeNotificationFanout {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.NotificationFanoutPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	n, err := p.repo.GetByID(ctx, payload.NotificationID)
	if err != nil {
		return fmt.Errorf("notification not found: %s", payload.NotificationID)
	}
	if n.Target != models.TargetAll {
		p.logger.Warn("fanout job for non-broadcast notification, skipping",
			zap.String("notification_id", n.ID.String()), zap.String("target", n.Target))
		return nil
	}

	delivered, err := p.repo.DeliverToAll(ctx, n.ID)
	if err != nil {
		return fmt.Errorf("deliver to all: %w", err)
	}

	if p.hub != nil {
		p.hub.NotifyAll(notifications.EventNotification, notifications.PushPayload{
			ID: n.ID, Title: n.Title, Message: n.Message, Type: n.Type, Link: n.Link,
		})
	}

	p.logger.Info("notification fanned out",
		zap.String("notification_id", n.ID.String()), zap.Int("delivered", delivered))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *NotificationProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("notification worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("notification worker stopping")
				return
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
