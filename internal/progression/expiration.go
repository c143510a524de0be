package progression

import (
	"time"

	"greenLeanAPI/internal/types/challenge"
)

// NextExpiration returns the absolute timestamp at which an in-progress
// participation lapses if no further update arrives. Only daily and weekly
// challenges track an expiration; streak continuity is gated by CanUpdate and
// goal challenges have no deadline at all, so both return nil.
func NextExpiration(challengeType challenge.Type, now time.Time) *time.Time {
	switch challengeType {
	case challenge.TypeDaily:
		t := now.Add(24 * time.Hour)
		return &t
	case challenge.TypeWeekly:
		t := now.Add(7 * 24 * time.Hour)
		return &t
	default:
		return nil
	}
}
