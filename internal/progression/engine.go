package progression

import (
	"time"

	"greenLeanAPI/internal/types/challenge"
)

// Update is the full post-update participant state to persist. The caller
// writes every field; the engine never talks to storage itself.
type Update struct {
	Progress          challenge.Progress
	Completed         bool
	CompletionDate    *time.Time
	StreakCount       float64
	LastProgressDate  time.Time
	StreakExpiresAt   *time.Time
	StreakWarningSent bool
}

// Apply computes the stored state resulting from a progress submission.
// newValue is the full new progress value, not an increment; the engine does
// not clamp or validate it against the previous value.
//
// The returned bool reports a completion *transition*: it is true only when
// this update is the one that takes the participant from incomplete to
// complete, so reward granting fires exactly once. Completion is monotonic —
// once a participant has completed, later updates never clear the completed
// flag or the completion date, and no expiration is tracked again.
//
// Apply performs no temporal eligibility check; callers gate on CanUpdate
// first.
func Apply(prev challenge.Participant, ch challenge.Challenge, newValue float64, now time.Time) (Update, bool) {
	reachedTarget := newValue >= ch.Requirements.Target
	completing := reachedTarget && !prev.Completed
	completed := prev.Completed || reachedTarget

	var completionDate *time.Time
	switch {
	case prev.Completed:
		completionDate = prev.CompletionDate
	case completing:
		t := now
		completionDate = &t
	}

	var expiresAt *time.Time
	if !completed {
		expiresAt = NextExpiration(ch.Type, now)
	}

	return Update{
		Progress:          challenge.Progress{Current: newValue},
		Completed:         completed,
		CompletionDate:    completionDate,
		StreakCount:       newValue,
		LastProgressDate:  now,
		StreakExpiresAt:   expiresAt,
		StreakWarningSent: false,
	}, completing
}
