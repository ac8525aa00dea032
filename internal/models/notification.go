package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes a broadcast for the client UI.
type NotificationType string

const (
	NotificationStudyUpdate       NotificationType = "study_update"
	NotificationExamReminder      NotificationType = "exam_reminder"
	NotificationLeaderboardChange NotificationType = "leaderboard_change"
	NotificationWelcome           NotificationType = "welcome"
)

// TargetAll is the Notification.Target value for a platform-wide broadcast.
const TargetAll = "all"

// Notification is the central broadcast log entry. Target is either
// TargetAll or a single user ID string.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Link      string           `json:"link,omitempty"`
	Target    string           `json:"target"`
	CreatedAt time.Time        `json:"created_at"`
}

// UserNotification is one user's copy of a broadcast, written by the
// fan-out job (target=all) or inline (single target).
type UserNotification struct {
	ID             uuid.UUID        `json:"id"`
	NotificationID uuid.UUID        `json:"notification_id"`
	UserID         uuid.UUID        `json:"user_id"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	Type           NotificationType `json:"type"`
	Link           string           `json:"link,omitempty"`
	IsRead         bool             `json:"is_read"`
	CreatedAt      time.Time        `json:"created_at"`
}
