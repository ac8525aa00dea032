package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the platform.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTutor   Role = "tutor"
	RoleStudent Role = "student"
)

// User represents a platform user.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Password       string     `json:"-"`
	DisplayName    string     `json:"display_name"`
	Role           Role       `json:"role"`
	CourseID       string     `json:"course_id,omitempty"`
	Level          string     `json:"level,omitempty"`
	Plan           string     `json:"plan"`
	CurrentStreak  int        `json:"current_streak"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UserPublic is User without sensitive fields for API responses.
// XP is joined from the overall leaderboard when listing.
type UserPublic struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name"`
	Role          Role      `json:"role"`
	CourseID      string    `json:"course_id,omitempty"`
	Level         string    `json:"level,omitempty"`
	Plan          string    `json:"plan"`
	CurrentStreak int       `json:"current_streak"`
	XP            int64     `json:"xp"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToPublic converts User to UserPublic (XP joined in by the caller).
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		Role:          u.Role,
		CourseID:      u.CourseID,
		Level:         u.Level,
		Plan:          u.Plan,
		CurrentStreak: u.CurrentStreak,
		CreatedAt:     u.CreatedAt,
	}
}
