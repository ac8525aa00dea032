// Package activity computes platform-wide usage metrics and per-user
// login-anomaly views from raw login and session events. All functions are
// pure: the reference time is an explicit parameter, inputs are never
// mutated, and no I/O happens here. Fetching events and rendering results
// belong to the caller.
package activity

import (
	"time"

	"github.com/google/uuid"
)

// LoginEvent is one recorded login. Location arrives pre-resolved as
// "City, Country"; UserAgent is the raw client string, used only for
// display classification.
type LoginEvent struct {
	Timestamp time.Time `json:"timestamp"`
	IPAddress string    `json:"ip_address"`
	Location  string    `json:"location"`
	UserAgent string    `json:"user_agent"`
}

// SessionEvent is one completed usage session.
type SessionEvent struct {
	StartTime       time.Time `json:"start_time"`
	DurationSeconds int64     `json:"duration_seconds"`
}

// UserActivityRecord holds one user's full event history. Ordering of the
// slices is irrelevant; the record is read-only input to the aggregations.
type UserActivityRecord struct {
	UserID   uuid.UUID      `json:"user_id"`
	Logins   []LoginEvent   `json:"logins"`
	Sessions []SessionEvent `json:"sessions"`
}

// CountryCount is one entry of PlatformMetrics.TopCountries.
type CountryCount struct {
	Country   string `json:"country"`
	UserCount int    `json:"user_count"`
}

// PlatformMetrics is the dashboard-wide aggregation result.
type PlatformMetrics struct {
	ActiveUserCount       int            `json:"active_user_count"`
	AverageSessionMinutes float64        `json:"average_session_minutes"`
	TopCountries          []CountryCount `json:"top_countries"`
}

// AnnotatedLogin pairs a login with its new-country flag. IsNewCountry
// marks the chronologically first login from that country in the user's
// history, even though AnnotatedLogins are returned in recency order.
type AnnotatedLogin struct {
	Login        LoginEvent `json:"login"`
	IsNewCountry bool       `json:"is_new_country"`
}

// HistogramDays is the fixed length of the daily engagement histogram.
const HistogramDays = 30

// UserHistoryView is the per-user analysis result. DailyEngagementMinutes
// always has exactly HistogramDays entries, oldest day first, today last.
type UserHistoryView struct {
	LatestLogin            *LoginEvent      `json:"latest_login,omitempty"`
	AnnotatedLogins        []AnnotatedLogin `json:"annotated_logins"`
	DailyEngagementMinutes []int64          `json:"daily_engagement_minutes"`
}
