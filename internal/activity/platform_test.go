package activity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func login(at time.Time, location string) LoginEvent {
	return LoginEvent{Timestamp: at, IPAddress: "203.0.113.10", Location: location, UserAgent: "Mozilla/5.0"}
}

func record(logins []LoginEvent, sessions []SessionEvent) UserActivityRecord {
	return UserActivityRecord{UserID: uuid.New(), Logins: logins, Sessions: sessions}
}

func TestComputeMetricsEmptyRecords(t *testing.T) {
	m := ComputeMetrics(nil, testNow)
	assert.Equal(t, 0, m.ActiveUserCount)
	assert.Equal(t, 0.0, m.AverageSessionMinutes)
	assert.Empty(t, m.TopCountries)

	m = ComputeMetrics([]UserActivityRecord{}, testNow)
	assert.Equal(t, 0, m.ActiveUserCount)
	assert.Empty(t, m.TopCountries)
}

func TestComputeMetricsActiveUsersAndTieBreak(t *testing.T) {
	// Scenario: U1 logged in 1h ago from Lagos, U2 48h ago from Accra.
	u1 := record([]LoginEvent{login(testNow.Add(-time.Hour), "Lagos, Nigeria")}, nil)
	u2 := record([]LoginEvent{login(testNow.Add(-48*time.Hour), "Accra, Ghana")}, nil)

	m := ComputeMetrics([]UserActivityRecord{u1, u2}, testNow)
	assert.Equal(t, 1, m.ActiveUserCount)
	require.Len(t, m.TopCountries, 2)
	// Equal counts keep insertion order: Nigeria was encountered first.
	assert.Equal(t, CountryCount{Country: "Nigeria", UserCount: 1}, m.TopCountries[0])
	assert.Equal(t, CountryCount{Country: "Ghana", UserCount: 1}, m.TopCountries[1])
}

func TestComputeMetricsSessionOnlyUserNotActive(t *testing.T) {
	rec := record(nil, []SessionEvent{{StartTime: testNow.Add(-time.Hour), DurationSeconds: 1200}})
	m := ComputeMetrics([]UserActivityRecord{rec}, testNow)
	assert.Equal(t, 0, m.ActiveUserCount)
	assert.Equal(t, 20.0, m.AverageSessionMinutes)
}

func TestComputeMetricsCountryCountedOncePerUser(t *testing.T) {
	// Ten logins from France still contribute a single user to France.
	var logins []LoginEvent
	for i := 0; i < 10; i++ {
		logins = append(logins, login(testNow.Add(-time.Duration(i)*time.Hour), "Paris, France"))
	}
	u1 := record(logins, nil)
	u2 := record([]LoginEvent{login(testNow.Add(-2*time.Hour), "Lyon, France")}, nil)

	m := ComputeMetrics([]UserActivityRecord{u1, u2}, testNow)
	require.Len(t, m.TopCountries, 1)
	assert.Equal(t, CountryCount{Country: "France", UserCount: 2}, m.TopCountries[0])
}

func TestComputeMetricsTopCountriesTruncatedAndSorted(t *testing.T) {
	countries := []string{"Nigeria", "Ghana", "Kenya", "Egypt", "Morocco", "Senegal", "Togo"}
	var records []UserActivityRecord
	// countries[i] gets len(countries)-i distinct users.
	for i, c := range countries {
		for n := 0; n < len(countries)-i; n++ {
			records = append(records, record([]LoginEvent{login(testNow.Add(-72*time.Hour), "City, "+c)}, nil))
		}
	}

	m := ComputeMetrics(records, testNow)
	require.Len(t, m.TopCountries, TopCountryLimit)
	for i := 1; i < len(m.TopCountries); i++ {
		assert.GreaterOrEqual(t, m.TopCountries[i-1].UserCount, m.TopCountries[i].UserCount)
	}
	assert.Equal(t, "Nigeria", m.TopCountries[0].Country)
	assert.Equal(t, 7, m.TopCountries[0].UserCount)
}

func TestComputeMetricsMalformedLocationsSkipped(t *testing.T) {
	rec := record([]LoginEvent{
		login(testNow.Add(-time.Hour), ""),
		login(testNow.Add(-2*time.Hour), "   "),
		login(testNow.Add(-3*time.Hour), "Nairobi, Kenya"),
	}, nil)

	m := ComputeMetrics([]UserActivityRecord{rec}, testNow)
	// Malformed locations do not affect the login-based active count.
	assert.Equal(t, 1, m.ActiveUserCount)
	require.Len(t, m.TopCountries, 1)
	assert.Equal(t, "Kenya", m.TopCountries[0].Country)
}

func TestComputeMetricsLocationWithoutCommaIsLiteralCountry(t *testing.T) {
	rec := record([]LoginEvent{login(testNow.Add(-time.Hour), "Unknown")}, nil)
	m := ComputeMetrics([]UserActivityRecord{rec}, testNow)
	require.Len(t, m.TopCountries, 1)
	assert.Equal(t, "Unknown", m.TopCountries[0].Country)
}

func TestComputeMetricsSessionWindowBoundary(t *testing.T) {
	inside := record(nil, []SessionEvent{{StartTime: testNow.Add(-SessionAverageWindow + time.Second), DurationSeconds: 600}})
	m := ComputeMetrics([]UserActivityRecord{inside}, testNow)
	assert.Equal(t, 10.0, m.AverageSessionMinutes)

	atBoundary := record(nil, []SessionEvent{{StartTime: testNow.Add(-SessionAverageWindow), DurationSeconds: 600}})
	m = ComputeMetrics([]UserActivityRecord{atBoundary}, testNow)
	assert.Equal(t, 0.0, m.AverageSessionMinutes)
}

func TestComputeMetricsAverageRoundedToOneDecimal(t *testing.T) {
	rec := record(nil, []SessionEvent{
		{StartTime: testNow.Add(-time.Hour), DurationSeconds: 100},
		{StartTime: testNow.Add(-2 * time.Hour), DurationSeconds: 101},
	})
	// Mean 100.5s = 1.675min, rounds to 1.7.
	m := ComputeMetrics([]UserActivityRecord{rec}, testNow)
	assert.Equal(t, 1.7, m.AverageSessionMinutes)
}

func TestComputeMetricsDeterministic(t *testing.T) {
	records := []UserActivityRecord{
		record([]LoginEvent{login(testNow.Add(-time.Hour), "Lagos, Nigeria"), login(testNow.Add(-30*time.Hour), "Accra, Ghana")},
			[]SessionEvent{{StartTime: testNow.Add(-time.Hour), DurationSeconds: 900}}),
		record([]LoginEvent{login(testNow.Add(-2*time.Hour), "Nairobi, Kenya")}, nil),
	}
	first := ComputeMetrics(records, testNow)
	second := ComputeMetrics(records, testNow)
	assert.Equal(t, first, second)
}
