package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenLeanAPI/internal/types/challenge"
)

func dailyChallenge(target float64) challenge.Challenge {
	return challenge.Challenge{
		Type:         challenge.TypeDaily,
		Requirements: challenge.Requirements{Target: target},
	}
}

func TestApplyBelowTarget(t *testing.T) {
	now := ts("2024-01-15T10:00:00")
	upd, completing := Apply(challenge.Participant{}, dailyChallenge(5), 3, now)

	assert.False(t, completing)
	assert.False(t, upd.Completed)
	assert.Nil(t, upd.CompletionDate)
	assert.Equal(t, 3.0, upd.Progress.Current)
	assert.Equal(t, 3.0, upd.StreakCount)
	assert.Equal(t, now, upd.LastProgressDate)
	assert.False(t, upd.StreakWarningSent)

	require.NotNil(t, upd.StreakExpiresAt)
	assert.Equal(t, now.Add(24*time.Hour), *upd.StreakExpiresAt)
}

func TestApplyReachingTargetCompletes(t *testing.T) {
	now := ts("2024-01-16T09:00:00")
	upd, completing := Apply(challenge.Participant{}, dailyChallenge(5), 5, now)

	assert.True(t, completing)
	assert.True(t, upd.Completed)
	require.NotNil(t, upd.CompletionDate)
	assert.Equal(t, now, *upd.CompletionDate)
	assert.Nil(t, upd.StreakExpiresAt, "completed participants track no expiration")
}

func TestApplyExceedingTargetCompletes(t *testing.T) {
	_, completing := Apply(challenge.Participant{}, dailyChallenge(5), 12, ts("2024-01-16T09:00:00"))
	assert.True(t, completing)
}

// Expiration is forced to nil on completion for every challenge type, even
// the ones NextExpiration would otherwise schedule.
func TestApplyCompletionNullsExpirationForAllTypes(t *testing.T) {
	now := ts("2024-01-16T09:00:00")
	for _, typ := range []challenge.Type{challenge.TypeDaily, challenge.TypeWeekly, challenge.TypeStreak, challenge.TypeGoal} {
		ch := challenge.Challenge{Type: typ, Requirements: challenge.Requirements{Target: 10}}
		upd, completing := Apply(challenge.Participant{}, ch, 10, now)
		assert.True(t, completing, "type %s", typ)
		assert.Nil(t, upd.StreakExpiresAt, "type %s", typ)
	}
}

// Completion is one-way: a later update with a value below the target must
// not resurrect an incomplete state or move the completion date.
func TestApplyCompletionIsMonotonic(t *testing.T) {
	completedAt := ts("2024-01-16T09:00:00")
	prev := challenge.Participant{
		Progress:       challenge.Progress{Current: 5},
		Completed:      true,
		CompletionDate: &completedAt,
	}

	now := ts("2024-01-17T09:00:00")
	upd, completing := Apply(prev, dailyChallenge(5), 2, now)

	assert.False(t, completing, "re-completion must not fire rewards twice")
	assert.True(t, upd.Completed)
	require.NotNil(t, upd.CompletionDate)
	assert.Equal(t, completedAt, *upd.CompletionDate)
	assert.Nil(t, upd.StreakExpiresAt)
	assert.Equal(t, 2.0, upd.Progress.Current)
}

func TestApplyAlreadyCompletedDoesNotReportCompletion(t *testing.T) {
	prev := challenge.Participant{Completed: true}
	_, completing := Apply(prev, dailyChallenge(5), 9, ts("2024-01-17T09:00:00"))
	assert.False(t, completing)
}

func TestApplyStreakCountMirrorsProgress(t *testing.T) {
	upd, _ := Apply(challenge.Participant{}, dailyChallenge(100), 42, ts("2024-01-15T10:00:00"))
	assert.Equal(t, upd.Progress.Current, upd.StreakCount)
}

func TestApplyOverwritesWithoutAccumulating(t *testing.T) {
	prev := challenge.Participant{Progress: challenge.Progress{Current: 4}}
	upd, _ := Apply(prev, dailyChallenge(10), 2, ts("2024-01-15T10:00:00"))
	assert.Equal(t, 2.0, upd.Progress.Current, "the caller supplies the full new value")
}
