package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenLeanAPI/internal/types/challenge"
)

func TestNextExpirationDaily(t *testing.T) {
	now := ts("2024-01-15T10:30:00")
	got := NextExpiration(challenge.TypeDaily, now)
	require.NotNil(t, got)
	assert.Equal(t, now.Add(24*time.Hour), *got)
}

func TestNextExpirationWeekly(t *testing.T) {
	now := ts("2024-01-15T10:30:00")
	got := NextExpiration(challenge.TypeWeekly, now)
	require.NotNil(t, got)
	assert.Equal(t, now.Add(7*24*time.Hour), *got)
}

func TestNextExpirationStreakAndGoalNeverExpire(t *testing.T) {
	for _, now := range []time.Time{
		ts("2024-01-15T10:30:00"),
		ts("2024-12-31T23:59:59"),
		ts("1999-06-01T00:00:00"),
	} {
		assert.Nil(t, NextExpiration(challenge.TypeStreak, now))
		assert.Nil(t, NextExpiration(challenge.TypeGoal, now))
	}
}

func TestNextExpirationUnknownTypeHasNoDeadline(t *testing.T) {
	assert.Nil(t, NextExpiration(challenge.Type("monthly"), ts("2024-01-15T10:30:00")))
}
