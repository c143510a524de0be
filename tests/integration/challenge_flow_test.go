package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenLeanAPI/internal/types/challenge"
	"greenLeanAPI/services"
	"greenLeanAPI/tests/helpers"
)

// TestDailyChallengeLifecycle walks one participant through a daily challenge
// end to end: join, partial progress, window lock, next-day completion,
// aggregate stats, quit.
func TestDailyChallengeLifecycle(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	ctx := context.Background()

	rewardService := services.NewRewardService(pool)
	challengeService := services.NewChallengeService(pool, rewardService, nil)

	clerkID := "user_test_" + time.Now().Format("20060102150405")
	userID := helpers.CreateTestUser(t, pool, clerkID)
	challengeID := helpers.CreateTestChallenge(t, pool, challenge.TypeDaily, 5)

	// Join seeds progress 0 with a live 24h window.
	participant, err := challengeService.Join(ctx, userID, challengeID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, participant.Progress.Current)
	assert.False(t, participant.Completed)
	require.NotNil(t, participant.StreakExpiresAt)
	assert.False(t, participant.StreakWarningSent)

	// Double join hits the unique constraint.
	_, err = challengeService.Join(ctx, userID, challengeID)
	assert.ErrorIs(t, err, services.ErrAlreadyJoined)

	// Partial progress below the target.
	participant, completed, err := challengeService.UpdateProgress(ctx, userID, challengeID, 3)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.Equal(t, 3.0, participant.Progress.Current)
	assert.Equal(t, 3.0, participant.StreakCount)
	require.NotNil(t, participant.LastProgressDate)
	assert.Nil(t, participant.CompletionDate)

	// Second update the same calendar day is locked out.
	_, _, err = challengeService.UpdateProgress(ctx, userID, challengeID, 4)
	assert.ErrorIs(t, err, services.ErrProgressLocked)

	// Next day: reaching the target completes the challenge and clears the
	// expiration deadline.
	helpers.BackdateProgress(t, pool, challengeID, userID, 24*time.Hour)

	participant, completed, err = challengeService.UpdateProgress(ctx, userID, challengeID, 5)
	require.NoError(t, err)
	assert.True(t, completed)
	assert.True(t, participant.Completed)
	require.NotNil(t, participant.CompletionDate)
	assert.Nil(t, participant.StreakExpiresAt)

	// Points were granted on the completion transition.
	rewards, err := rewardService.GetUserRewards(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 50, rewards.Points)

	// Completion is monotonic: a later update reports no new completion and
	// keeps the original completion date.
	firstCompletion := *participant.CompletionDate
	helpers.BackdateProgress(t, pool, challengeID, userID, 24*time.Hour)

	participant, completed, err = challengeService.UpdateProgress(ctx, userID, challengeID, 6)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.True(t, participant.Completed)
	require.NotNil(t, participant.CompletionDate)
	assert.WithinDuration(t, firstCompletion, *participant.CompletionDate, time.Second)

	// No double reward grant.
	rewards, err = rewardService.GetUserRewards(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 50, rewards.Points)

	// Aggregates: one participant, 100% completion, caller's row attached.
	listed, err := challengeService.ListChallenges(ctx, &userID)
	require.NoError(t, err)

	var found *challenge.WithStats
	for _, c := range listed {
		if c.ID == challengeID {
			found = c
			break
		}
	}
	require.NotNil(t, found, "joined challenge missing from listing")
	assert.Equal(t, 1, found.ParticipantsCount)
	assert.Equal(t, 100.0, found.CompletionRate)
	require.NotNil(t, found.UserProgress)
	assert.True(t, found.UserProgress.Completed)

	// Quit removes the row; quitting again is a no-op.
	require.NoError(t, challengeService.Quit(ctx, userID, challengeID))

	participant, err = challengeService.GetParticipant(ctx, userID, challengeID)
	require.NoError(t, err)
	assert.Nil(t, participant)

	require.NoError(t, challengeService.Quit(ctx, userID, challengeID))
}

// TestStreakChallengeWindow exercises the streak eligibility rule: an update
// is allowed only when the previous one landed exactly yesterday.
func TestStreakChallengeWindow(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	ctx := context.Background()

	rewardService := services.NewRewardService(pool)
	challengeService := services.NewChallengeService(pool, rewardService, nil)

	clerkID := "user_streak_" + time.Now().Format("20060102150405")
	userID := helpers.CreateTestUser(t, pool, clerkID)
	challengeID := helpers.CreateTestChallenge(t, pool, challenge.TypeStreak, 7)

	participant, err := challengeService.Join(ctx, userID, challengeID)
	require.NoError(t, err)
	// Streak challenges never carry an expiration deadline.
	assert.Nil(t, participant.StreakExpiresAt)

	_, _, err = challengeService.UpdateProgress(ctx, userID, challengeID, 1)
	require.NoError(t, err)

	// Same day again: not eligible.
	_, _, err = challengeService.UpdateProgress(ctx, userID, challengeID, 2)
	assert.ErrorIs(t, err, services.ErrProgressLocked)

	// Yesterday: eligible.
	helpers.BackdateProgress(t, pool, challengeID, userID, 24*time.Hour)
	participant, _, err = challengeService.UpdateProgress(ctx, userID, challengeID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, participant.StreakCount)

	// Two days ago: the chain is broken and the update is rejected.
	helpers.BackdateProgress(t, pool, challengeID, userID, 48*time.Hour)
	_, _, err = challengeService.UpdateProgress(ctx, userID, challengeID, 3)
	assert.ErrorIs(t, err, services.ErrProgressLocked)
}
