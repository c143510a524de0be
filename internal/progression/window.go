package progression

import (
	"math"
	"time"

	"greenLeanAPI/internal/types/challenge"
)

// CanUpdate reports whether a participant whose most recent accepted update
// happened at lastProgressDate is eligible for another update as of now.
// A nil lastProgressDate means the participant has never logged progress and
// is always eligible. Unknown challenge types are treated as always eligible.
func CanUpdate(challengeType challenge.Type, lastProgressDate *time.Time, now time.Time) bool {
	if lastProgressDate == nil {
		return true
	}

	last := lastProgressDate.In(now.Location())

	switch challengeType {
	case challenge.TypeDaily:
		return !sameCalendarDay(last, now)
	case challenge.TypeWeekly:
		return weekNumber(last) != weekNumber(now)
	case challenge.TypeStreak:
		// A streak only continues if the previous update was yesterday.
		// Same-day repeats and gaps of 2+ days are both ineligible.
		yesterday := now.AddDate(0, 0, -1)
		return sameCalendarDay(last, yesterday)
	case challenge.TypeGoal:
		return true
	default:
		return true
	}
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// weekNumber ties week boundaries to January 1st of the date's year rather
// than the Monday-anchored ISO-8601 week. Kept for compatibility with the
// stored participant history; do not swap in ISOWeek.
func weekNumber(t time.Time) int {
	oneJan := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	days := t.Sub(oneJan).Hours() / 24
	return int(math.Ceil((days + float64(oneJan.Weekday()) + 1) / 7))
}
