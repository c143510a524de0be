package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"greenLeanAPI/internal/types/challenge"
)

func ts(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(value string) *time.Time {
	t := ts(value)
	return &t
}

func TestCanUpdateFirstEverUpdate(t *testing.T) {
	now := ts("2024-01-15T10:00:00")
	for _, typ := range []challenge.Type{challenge.TypeDaily, challenge.TypeWeekly, challenge.TypeStreak, challenge.TypeGoal} {
		assert.True(t, CanUpdate(typ, nil, now), "type %s should allow the first update", typ)
	}
}

func TestCanUpdateDaily(t *testing.T) {
	tests := []struct {
		name string
		last *time.Time
		now  time.Time
		want bool
	}{
		{"same day, later hour", tsp("2024-01-15T23:00:00"), ts("2024-01-15T23:30:00"), false},
		{"same day, same instant", tsp("2024-01-15T08:00:00"), ts("2024-01-15T08:00:00"), false},
		{"just past midnight", tsp("2024-01-15T23:00:00"), ts("2024-01-16T00:05:00"), true},
		{"several days later", tsp("2024-01-15T12:00:00"), ts("2024-01-20T12:00:00"), true},
		{"same day-of-month, different month", tsp("2024-01-15T12:00:00"), ts("2024-02-15T12:00:00"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanUpdate(challenge.TypeDaily, tt.last, tt.now))
		})
	}
}

func TestCanUpdateWeekly(t *testing.T) {
	tests := []struct {
		name string
		last *time.Time
		now  time.Time
		want bool
	}{
		// Jan 1 2024 is a Monday; the simplified formula puts Jan 2 and
		// Jan 5 in the same bucket and Jan 8 in the next one.
		{"same bucket", tsp("2024-01-02T10:00:00"), ts("2024-01-05T10:00:00"), false},
		{"next bucket", tsp("2024-01-05T10:00:00"), ts("2024-01-08T10:00:00"), true},
		{"far apart", tsp("2024-01-02T10:00:00"), ts("2024-03-02T10:00:00"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanUpdate(challenge.TypeWeekly, tt.last, tt.now))
		})
	}
}

// The week formula deliberately anchors on January 1st instead of ISO-8601
// Monday weeks. Pin the bucket values so nobody "fixes" it to ISOWeek.
func TestWeekNumberFormula(t *testing.T) {
	// Jan 1 2023 is a Sunday: weekday offset 0.
	assert.Equal(t, 1, weekNumber(ts("2023-01-01T00:00:00")))
	assert.Equal(t, 1, weekNumber(ts("2023-01-06T12:00:00")))
	assert.Equal(t, 2, weekNumber(ts("2023-01-08T12:00:00")))

	// Jan 1 2024 is a Monday: weekday offset 1 shifts every bucket.
	assert.Equal(t, 1, weekNumber(ts("2024-01-01T06:00:00")))
	assert.Equal(t, 2, weekNumber(ts("2024-01-07T06:00:00")))
}

func TestCanUpdateStreak(t *testing.T) {
	now := ts("2024-03-10T09:00:00")

	tests := []struct {
		name string
		last *time.Time
		want bool
	}{
		{"yesterday continues the streak", tsp("2024-03-09T22:00:00"), true},
		{"today already logged", tsp("2024-03-10T01:00:00"), false},
		{"two days ago breaks it", tsp("2024-03-08T09:00:00"), false},
		{"a week ago breaks it", tsp("2024-03-03T09:00:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanUpdate(challenge.TypeStreak, tt.last, now))
		})
	}
}

func TestCanUpdateStreakAcrossMonthBoundary(t *testing.T) {
	now := ts("2024-03-01T08:00:00")
	assert.True(t, CanUpdate(challenge.TypeStreak, tsp("2024-02-29T20:00:00"), now))
	assert.False(t, CanUpdate(challenge.TypeStreak, tsp("2024-02-28T20:00:00"), now))
}

func TestCanUpdateGoalAndUnknownTypesAreAlwaysEligible(t *testing.T) {
	now := ts("2024-01-15T10:00:00")
	last := tsp("2024-01-15T09:59:00")

	assert.True(t, CanUpdate(challenge.TypeGoal, last, now))
	// Unrecognized types fail open rather than erroring.
	assert.True(t, CanUpdate(challenge.Type("marathon"), last, now))
	assert.True(t, CanUpdate(challenge.Type(""), last, now))
}
