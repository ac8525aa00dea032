package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, InWindow(now.Add(-time.Hour), now, ActiveUserWindow))
	assert.True(t, InWindow(now, now, ActiveUserWindow))
	assert.False(t, InWindow(now.Add(-25*time.Hour), now, ActiveUserWindow))

	// The boundary instant itself is excluded; one second inside is not.
	boundary := now.Add(-SessionAverageWindow)
	assert.False(t, InWindow(boundary, now, SessionAverageWindow))
	assert.True(t, InWindow(boundary.Add(time.Second), now, SessionAverageWindow))
}
