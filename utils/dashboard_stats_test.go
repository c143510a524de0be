package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"greenLeanAPI/internal/types/tracking"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func nutritionOn(dates ...string) []tracking.NutritionLog {
	logs := make([]tracking.NutritionLog, 0, len(dates))
	for _, d := range dates {
		logs = append(logs, tracking.NutritionLog{LogDate: day(d), TotalCalories: 700})
	}
	return logs
}

func TestDateRange(t *testing.T) {
	got := DateRange(day("2024-05-10"), 3)
	assert.Equal(t, []string{"2024-05-08", "2024-05-09", "2024-05-10"}, got)
}

func TestActivityStreakCountsBackFromToday(t *testing.T) {
	now := day("2024-05-10")
	logs := nutritionOn("2024-05-10", "2024-05-09", "2024-05-08")
	assert.Equal(t, 3, CalculateActivityStreak(logs, nil, nil, now))
}

func TestActivityStreakBreaksOnGap(t *testing.T) {
	now := day("2024-05-10")
	// Gap on the 9th: only today counts.
	logs := nutritionOn("2024-05-10", "2024-05-08", "2024-05-07")
	assert.Equal(t, 1, CalculateActivityStreak(logs, nil, nil, now))
}

func TestActivityStreakZeroWhenNothingToday(t *testing.T) {
	now := day("2024-05-10")
	logs := nutritionOn("2024-05-09")
	assert.Equal(t, 0, CalculateActivityStreak(logs, nil, nil, now))
}

func TestActivityStreakAnyLogTypeCounts(t *testing.T) {
	now := day("2024-05-10")
	water := []tracking.WaterIntakeLog{{LogDate: day("2024-05-10"), Glasses: 8}}
	workouts := []tracking.WorkoutLog{{WorkoutDate: day("2024-05-09"), Completed: true}}
	assert.Equal(t, 2, CalculateActivityStreak(nil, water, workouts, now))
}

func TestWeeklySummary(t *testing.T) {
	now := day("2024-05-10")
	nutrition := nutritionOn("2024-05-10", "2024-05-09") // 1400 kcal inside the week
	water := []tracking.WaterIntakeLog{
		{LogDate: day("2024-05-10"), Glasses: 8},
		{LogDate: day("2024-05-08"), Glasses: 6},
		{LogDate: day("2024-04-01"), Glasses: 10}, // outside the window
	}
	workouts := []tracking.WorkoutLog{
		{WorkoutDate: day("2024-05-09"), Completed: true},
		{WorkoutDate: day("2024-05-07"), Completed: false},
	}

	got := CalculateWeeklySummary(nutrition, water, workouts, now)

	assert.Equal(t, 1400, got.TotalCalories)
	assert.Equal(t, 200, got.AvgCalories) // 1400 / 7
	assert.Equal(t, 1, got.WorkoutsCompleted)
	assert.Equal(t, 7.0, got.AvgHydration)
	assert.Equal(t, 4, got.DaysActive) // 10th, 9th, 8th, 7th
}

func TestWorkoutStats(t *testing.T) {
	now := day("2024-05-10")
	workouts := []tracking.WorkoutLog{
		{WorkoutDate: day("2024-05-09"), WorkoutType: "cardio", DurationMinutes: 30, CaloriesBurned: 300},
		{WorkoutDate: day("2024-05-07"), WorkoutType: "strength", DurationMinutes: 45, CaloriesBurned: 250},
		{WorkoutDate: day("2024-05-05"), WorkoutType: "cardio", DurationMinutes: 60, CaloriesBurned: 500},
		{WorkoutDate: day("2024-01-01"), WorkoutType: "yoga", DurationMinutes: 90, CaloriesBurned: 200}, // stale
	}

	got := CalculateWorkoutStats(workouts, now)

	assert.Equal(t, 3, got.TotalWorkouts)
	assert.Equal(t, 135, got.TotalMinutes)
	assert.Equal(t, 1050, got.TotalCaloriesBurned)
	assert.Equal(t, 350, got.AvgCaloriesPerSession)
	assert.Equal(t, "cardio", got.MostCommonType)
	assert.Equal(t, 60, got.LongestWorkout)
}

func TestWorkoutStatsEmpty(t *testing.T) {
	got := CalculateWorkoutStats(nil, day("2024-05-10"))
	assert.Equal(t, 0, got.TotalWorkouts)
	assert.Equal(t, "None", got.MostCommonType)
}

func TestDietAdherenceScoring(t *testing.T) {
	now := day("2024-05-28")
	goal := 2000

	nutrition := []tracking.NutritionLog{
		{LogDate: day("2024-05-28"), TotalCalories: 2100}, // within tolerance -> 100
		{LogDate: day("2024-05-27"), TotalCalories: 2500}, // 500 over -> 100 - 30 = 70
	}

	got := CalculateDietAdherence(nutrition, goal, now)

	// 28 scored days: 100 + 70 + 26 zeros.
	assert.Equal(t, 6, got.Overall) // round(170/28)
	assert.Len(t, got.WeeklyTrend, 4)
	assert.Equal(t, 24, got.WeeklyTrend[3]) // round(170/7)
}

func TestDietAdherenceSplitMealsAccumulate(t *testing.T) {
	now := day("2024-05-28")
	nutrition := []tracking.NutritionLog{
		{LogDate: day("2024-05-28"), TotalCalories: 1000},
		{LogDate: day("2024-05-28"), TotalCalories: 900},
	}
	got := CalculateDietAdherence(nutrition, 2000, now)
	assert.Equal(t, 4, got.Overall) // one perfect day of 1900 kcal, 27 zeros -> round(100/28)
}
