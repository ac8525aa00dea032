package activity

import (
	"sort"
	"time"
)

// Analyze produces a single user's history view anchored at now: the most
// recent login, all logins in recency order annotated with new-country
// flags, and a 30-day daily engagement histogram.
//
// "New country" is a chronological concept: the flags are computed in one
// ascending pass over a running set of countries seen so far, then the
// logins are re-ordered to recency order for display with those flags
// preserved. Logins with an unresolvable country are never flagged and
// never extend the set.
//
// The input record is not mutated; the login slice is copied before
// sorting.
func Analyze(record UserActivityRecord, now time.Time) UserHistoryView {
	view := UserHistoryView{
		AnnotatedLogins:        []AnnotatedLogin{},
		DailyEngagementMinutes: dailyEngagement(record.Sessions, now),
	}

	if len(record.Logins) == 0 {
		return view
	}

	chrono := make([]LoginEvent, len(record.Logins))
	copy(chrono, record.Logins)
	sort.SliceStable(chrono, func(i, j int) bool {
		return chrono[i].Timestamp.Before(chrono[j].Timestamp)
	})

	seen := make(map[string]struct{})
	annotated := make([]AnnotatedLogin, len(chrono))
	for i, login := range chrono {
		flagged := false
		if country, ok := ExtractCountry(login.Location); ok {
			if _, known := seen[country]; !known {
				flagged = true
				seen[country] = struct{}{}
			}
		}
		annotated[i] = AnnotatedLogin{Login: login, IsNewCountry: flagged}
	}

	// Reverse to recency order for display.
	for i, j := 0, len(annotated)-1; i < j; i, j = i+1, j-1 {
		annotated[i], annotated[j] = annotated[j], annotated[i]
	}
	view.AnnotatedLogins = annotated
	latest := annotated[0].Login
	view.LatestLogin = &latest
	return view
}

// dailyEngagement buckets session durations by calendar day in now's
// location over the trailing 30 days. The result always has exactly
// HistogramDays entries, oldest day first, today last, zero-filled for
// days without sessions. Seconds accumulate per bucket and convert to
// whole minutes (rounded) only at output.
func dailyEngagement(sessions []SessionEvent, now time.Time) []int64 {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	seconds := make([]int64, HistogramDays)
	for _, s := range sessions {
		if !InWindow(s.StartTime, now, EngagementWindow) {
			continue
		}
		day := s.StartTime.In(loc)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		// DST makes some days 23 or 25 hours, so round the elapsed time
		// to whole days rather than truncating.
		offset := int((today.Sub(dayStart) + 12*time.Hour) / (24 * time.Hour))
		idx := HistogramDays - 1 - offset
		if idx < 0 || idx >= HistogramDays {
			continue
		}
		seconds[idx] += s.DurationSeconds
	}

	minutes := make([]int64, HistogramDays)
	for i, sec := range seconds {
		minutes[i] = (sec + 30) / 60
	}
	return minutes
}
