package activity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeEmptyRecord(t *testing.T) {
	view := Analyze(UserActivityRecord{UserID: uuid.New()}, testNow)
	assert.Nil(t, view.LatestLogin)
	assert.Empty(t, view.AnnotatedLogins)
	require.Len(t, view.DailyEngagementMinutes, HistogramDays)
	for _, m := range view.DailyEngagementMinutes {
		assert.Zero(t, m)
	}
}

func TestAnalyzeNewCountryFlagsChronological(t *testing.T) {
	// Chronologically: Nigeria, then Ghana, then Nigeria again. Only the
	// first occurrence of each country is flagged, so the recency-ordered
	// output reads false, true (Ghana), true (first Nigeria).
	rec := UserActivityRecord{
		UserID: uuid.New(),
		Logins: []LoginEvent{
			login(testNow.Add(-1*time.Hour), "Lagos, Nigeria"),
			login(testNow.Add(-72*time.Hour), "Lagos, Nigeria"),
			login(testNow.Add(-48*time.Hour), "Accra, Ghana"),
		},
	}

	view := Analyze(rec, testNow)
	require.Len(t, view.AnnotatedLogins, 3)
	assert.False(t, view.AnnotatedLogins[0].IsNewCountry)
	assert.Equal(t, "Accra, Ghana", view.AnnotatedLogins[1].Login.Location)
	assert.True(t, view.AnnotatedLogins[1].IsNewCountry)
	assert.Equal(t, testNow.Add(-72*time.Hour), view.AnnotatedLogins[2].Login.Timestamp)
	assert.True(t, view.AnnotatedLogins[2].IsNewCountry)

	require.NotNil(t, view.LatestLogin)
	assert.Equal(t, testNow.Add(-1*time.Hour), view.LatestLogin.Timestamp)
}

func TestAnalyzeEarliestResolvableLoginAlwaysNew(t *testing.T) {
	rec := UserActivityRecord{
		UserID: uuid.New(),
		Logins: []LoginEvent{
			login(testNow.Add(-time.Hour), "Nairobi, Kenya"),
			login(testNow.Add(-100*time.Hour), "Nairobi, Kenya"),
		},
	}
	view := Analyze(rec, testNow)
	require.Len(t, view.AnnotatedLogins, 2)
	oldest := view.AnnotatedLogins[len(view.AnnotatedLogins)-1]
	assert.True(t, oldest.IsNewCountry)
	assert.False(t, view.AnnotatedLogins[0].IsNewCountry)
}

func TestAnalyzeUnresolvableCountryNeverFlagged(t *testing.T) {
	rec := UserActivityRecord{
		UserID: uuid.New(),
		Logins: []LoginEvent{
			login(testNow.Add(-3*time.Hour), ""),
			login(testNow.Add(-2*time.Hour), "Lagos, Nigeria"),
		},
	}
	view := Analyze(rec, testNow)
	require.Len(t, view.AnnotatedLogins, 2)
	// Recency order: Nigeria first, blank-location login second.
	assert.True(t, view.AnnotatedLogins[0].IsNewCountry)
	assert.False(t, view.AnnotatedLogins[1].IsNewCountry)
}

func TestAnalyzeIdempotent(t *testing.T) {
	rec := UserActivityRecord{
		UserID: uuid.New(),
		Logins: []LoginEvent{
			login(testNow.Add(-1*time.Hour), "Lagos, Nigeria"),
			login(testNow.Add(-48*time.Hour), "Accra, Ghana"),
		},
		Sessions: []SessionEvent{{StartTime: testNow.Add(-2 * time.Hour), DurationSeconds: 600}},
	}
	first := Analyze(rec, testNow)
	second := Analyze(rec, testNow)
	assert.Equal(t, first, second)
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	logins := []LoginEvent{
		login(testNow.Add(-1*time.Hour), "Lagos, Nigeria"),
		login(testNow.Add(-48*time.Hour), "Accra, Ghana"),
	}
	rec := UserActivityRecord{UserID: uuid.New(), Logins: logins}
	_ = Analyze(rec, testNow)
	assert.Equal(t, testNow.Add(-1*time.Hour), logins[0].Timestamp)
	assert.Equal(t, testNow.Add(-48*time.Hour), logins[1].Timestamp)
}

func TestAnalyzeDailyEngagementBuckets(t *testing.T) {
	// Two sessions today, one yesterday, one outside the 30-day window.
	today := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 9, 0, 0, 0, time.UTC)
	rec := UserActivityRecord{
		UserID: uuid.New(),
		Sessions: []SessionEvent{
			{StartTime: today, DurationSeconds: 600},
			{StartTime: today.Add(2 * time.Hour), DurationSeconds: 300},
			{StartTime: today.Add(-24 * time.Hour), DurationSeconds: 1800},
			{StartTime: testNow.Add(-31 * 24 * time.Hour), DurationSeconds: 3600},
		},
	}

	view := Analyze(rec, testNow)
	require.Len(t, view.DailyEngagementMinutes, HistogramDays)
	assert.Equal(t, int64(15), view.DailyEngagementMinutes[HistogramDays-1])
	assert.Equal(t, int64(30), view.DailyEngagementMinutes[HistogramDays-2])
	var total int64
	for _, m := range view.DailyEngagementMinutes {
		total += m
	}
	assert.Equal(t, int64(45), total)
}

func TestAnalyzeDailyEngagementAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// New York springs forward on 2024-03-10, so the seven days between
	// March 8 and March 15 span 167 elapsed hours, not 168.
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, loc)
	rec := UserActivityRecord{
		UserID: uuid.New(),
		Sessions: []SessionEvent{
			{StartTime: time.Date(2024, 3, 8, 9, 0, 0, 0, loc), DurationSeconds: 600},
		},
	}

	view := Analyze(rec, now)
	require.Len(t, view.DailyEngagementMinutes, HistogramDays)
	// Seven calendar days back lands in the 8th bucket from the end.
	assert.Equal(t, int64(10), view.DailyEngagementMinutes[HistogramDays-8])
	var total int64
	for _, m := range view.DailyEngagementMinutes {
		total += m
	}
	assert.Equal(t, int64(10), total)
}

func TestAnalyzeDailyEngagementRoundsMinutes(t *testing.T) {
	today := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 9, 0, 0, 0, time.UTC)
	rec := UserActivityRecord{
		UserID:   uuid.New(),
		Sessions: []SessionEvent{{StartTime: today, DurationSeconds: 90}},
	}
	view := Analyze(rec, testNow)
	// 90s rounds to 2 minutes, only at output time.
	assert.Equal(t, int64(2), view.DailyEngagementMinutes[HistogramDays-1])
}
