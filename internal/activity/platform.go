package activity

import (
	"math"
	"time"
)

// TopCountryLimit caps PlatformMetrics.TopCountries.
const TopCountryLimit = 5

// userPartial is the per-user contribution to the platform metrics.
// Partials combine associatively, so callers may fan the per-user map
// step out over any partition of the records without changing results.
type userPartial struct {
	countries      []string // distinct, order of first appearance in the user's login slice
	hasActiveLogin bool
	sessionSeconds int64
	sessionCount   int
}

// mapRecord computes one user's partial for the given reference time.
func mapRecord(rec UserActivityRecord, now time.Time) userPartial {
	var p userPartial
	seen := make(map[string]struct{})
	for _, login := range rec.Logins {
		if InWindow(login.Timestamp, now, ActiveUserWindow) {
			p.hasActiveLogin = true
		}
		country, ok := ExtractCountry(login.Location)
		if !ok {
			continue
		}
		if _, dup := seen[country]; dup {
			continue
		}
		seen[country] = struct{}{}
		p.countries = append(p.countries, country)
	}
	for _, s := range rec.Sessions {
		if InWindow(s.StartTime, now, SessionAverageWindow) {
			p.sessionSeconds += s.DurationSeconds
			p.sessionCount++
		}
	}
	return p
}

// ComputeMetrics aggregates all users' activity records into platform
// metrics anchored at now:
//
//   - ActiveUserCount: users with at least one login in the trailing 24h.
//     Session activity alone does not count.
//   - AverageSessionMinutes: mean duration of all sessions started in the
//     trailing 7d, in minutes rounded to one decimal; 0.0 when none.
//   - TopCountries: up to five countries ranked by how many distinct
//     users ever logged in from them (full history, one increment per
//     user per country). Ties keep first-encountered order.
//
// Logins whose location yields no country are skipped silently. The
// function is pure: identical records and now always produce identical
// metrics, and the input is never mutated.
func ComputeMetrics(records []UserActivityRecord, now time.Time) PlatformMetrics {
	metrics := PlatformMetrics{TopCountries: []CountryCount{}}

	counts := make(map[string]int)
	var order []string
	var totalSeconds int64
	var totalSessions int

	for _, rec := range records {
		p := mapRecord(rec, now)
		if p.hasActiveLogin {
			metrics.ActiveUserCount++
		}
		totalSeconds += p.sessionSeconds
		totalSessions += p.sessionCount
		for _, country := range p.countries {
			if _, ok := counts[country]; !ok {
				order = append(order, country)
			}
			counts[country]++
		}
	}

	if totalSessions > 0 {
		minutes := float64(totalSeconds) / float64(totalSessions) / 60
		metrics.AverageSessionMinutes = math.Round(minutes*10) / 10
	}

	metrics.TopCountries = topCountries(counts, order)
	return metrics
}

// topCountries sorts countries by user count descending, stable on the
// order countries were first encountered, and truncates to TopCountryLimit.
func topCountries(counts map[string]int, order []string) []CountryCount {
	ranked := make([]CountryCount, 0, len(order))
	for _, country := range order {
		ranked = append(ranked, CountryCount{Country: country, UserCount: counts[country]})
	}
	// Insertion sort is stable: ties keep first-encountered order.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].UserCount > ranked[j-1].UserCount; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	if len(ranked) > TopCountryLimit {
		ranked = ranked[:TopCountryLimit]
	}
	return ranked
}
