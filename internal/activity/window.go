package activity

import "time"

// Trailing windows used by the platform aggregation.
const (
	ActiveUserWindow     = 24 * time.Hour
	SessionAverageWindow = 7 * 24 * time.Hour
	EngagementWindow     = HistogramDays * 24 * time.Hour
)

// InWindow reports whether ts falls inside the trailing window anchored
// at now: ts > now-window. The comparison is strict, so an event exactly
// at the boundary instant is excluded. now is an explicit parameter so
// callers and tests control the clock.
func InWindow(ts, now time.Time, window time.Duration) bool {
	return ts.After(now.Add(-window))
}
