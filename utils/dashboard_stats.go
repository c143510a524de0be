package utils

import (
	"math"
	"time"

	"greenLeanAPI/internal/types/stats"
	"greenLeanAPI/internal/types/tracking"
)

const dateLayout = "2006-01-02"

// DateRange returns the trailing N calendar dates ending at now, oldest
// first, formatted as YYYY-MM-DD.
func DateRange(now time.Time, days int) []string {
	dates := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		dates = append(dates, now.AddDate(0, 0, -i).Format(dateLayout))
	}
	return dates
}

func logDateSet(nutrition []tracking.NutritionLog, water []tracking.WaterIntakeLog, workouts []tracking.WorkoutLog) map[string]bool {
	active := make(map[string]bool)
	for _, l := range nutrition {
		active[l.LogDate.Format(dateLayout)] = true
	}
	for _, l := range water {
		active[l.LogDate.Format(dateLayout)] = true
	}
	for _, l := range workouts {
		active[l.WorkoutDate.Format(dateLayout)] = true
	}
	return active
}

// CalculateActivityStreak counts consecutive days, ending today, on which the
// user logged anything at all. Looks back at most 30 days and breaks on the
// first silent day.
func CalculateActivityStreak(nutrition []tracking.NutritionLog, water []tracking.WaterIntakeLog, workouts []tracking.WorkoutLog, now time.Time) int {
	dates := DateRange(now, 30)
	active := logDateSet(nutrition, water, workouts)

	streak := 0
	for i := len(dates) - 1; i >= 0; i-- {
		if !active[dates[i]] {
			break
		}
		streak++
	}
	return streak
}

// CalculateWeeklySummary reduces the trailing 7 days of logs into the
// dashboard's summary card.
func CalculateWeeklySummary(nutrition []tracking.NutritionLog, water []tracking.WaterIntakeLog, workouts []tracking.WorkoutLog, now time.Time) stats.WeeklySummary {
	week := make(map[string]bool)
	for _, d := range DateRange(now, 7) {
		week[d] = true
	}

	var totalCalories float64
	nutritionDays := 0
	activeDays := make(map[string]bool)
	for _, l := range nutrition {
		d := l.LogDate.Format(dateLayout)
		if !week[d] {
			continue
		}
		totalCalories += l.TotalCalories
		nutritionDays++
		activeDays[d] = true
	}

	var glasses int
	waterEntries := 0
	for _, l := range water {
		d := l.LogDate.Format(dateLayout)
		if !week[d] {
			continue
		}
		glasses += l.Glasses
		waterEntries++
		activeDays[d] = true
	}

	workoutsCompleted := 0
	for _, l := range workouts {
		d := l.WorkoutDate.Format(dateLayout)
		if !week[d] {
			continue
		}
		if l.Completed {
			workoutsCompleted++
		}
		activeDays[d] = true
	}

	avgCalories := 0
	if nutritionDays > 0 {
		avgCalories = int(math.Round(totalCalories / 7))
	}
	avgHydration := 0.0
	if waterEntries > 0 {
		avgHydration = math.Round(float64(glasses)/float64(waterEntries)*10) / 10
	}

	return stats.WeeklySummary{
		TotalCalories:     int(math.Round(totalCalories)),
		AvgCalories:       avgCalories,
		WorkoutsCompleted: workoutsCompleted,
		AvgHydration:      avgHydration,
		DaysActive:        len(activeDays),
	}
}

// CalculateWorkoutStats reduces the trailing 30 days of workout logs.
func CalculateWorkoutStats(workouts []tracking.WorkoutLog, now time.Time) stats.WorkoutStats {
	month := make(map[string]bool)
	for _, d := range DateRange(now, 30) {
		month[d] = true
	}

	var result stats.WorkoutStats
	typeCounts := make(map[string]int)
	var totalBurned float64

	for _, w := range workouts {
		if !month[w.WorkoutDate.Format(dateLayout)] {
			continue
		}
		result.TotalWorkouts++
		result.TotalMinutes += w.DurationMinutes
		totalBurned += w.CaloriesBurned
		typeCounts[w.WorkoutType]++
		if w.DurationMinutes > result.LongestWorkout {
			result.LongestWorkout = w.DurationMinutes
		}
	}

	result.TotalCaloriesBurned = int(math.Round(totalBurned))
	if result.TotalWorkouts > 0 {
		result.AvgCaloriesPerSession = int(math.Round(totalBurned / float64(result.TotalWorkouts)))
	}

	result.MostCommonType = "None"
	best := 0
	for typ, n := range typeCounts {
		if n > best || (n == best && typ < result.MostCommonType) {
			best = n
			result.MostCommonType = typ
		}
	}
	return result
}

// CalculateDietAdherence scores the trailing 4 weeks of nutrition logs
// against the user's goal calories. A day within +/-200 kcal of the goal
// scores 100; beyond that the score decays by 1 point per 10 kcal. Unlogged
// days score 0.
func CalculateDietAdherence(nutrition []tracking.NutritionLog, goalCalories int, now time.Time) stats.AdherenceScore {
	dates := DateRange(now, 28)
	const tolerance = 200.0

	consumedByDay := make(map[string]float64)
	for _, l := range nutrition {
		consumedByDay[l.LogDate.Format(dateLayout)] += l.TotalCalories
	}

	dailyScores := make([]int, len(dates))
	for i, d := range dates {
		consumed, logged := consumedByDay[d]
		if !logged {
			continue
		}
		diff := math.Abs(consumed - float64(goalCalories))
		score := 100.0
		if diff > tolerance {
			score = math.Max(0, 100-(diff-tolerance)/10)
		}
		dailyScores[i] = int(math.Round(score))
	}

	weeklyTrend := make([]int, 0, 4)
	sum := 0
	for i, s := range dailyScores {
		sum += s
		if (i+1)%7 == 0 {
			weeklyTrend = append(weeklyTrend, int(math.Round(float64(sumOf(dailyScores[i-6:i+1]))/7)))
		}
	}

	overall := 0
	if len(dailyScores) > 0 {
		overall = int(math.Round(float64(sum) / float64(len(dailyScores))))
	}

	return stats.AdherenceScore{Overall: overall, WeeklyTrend: weeklyTrend}
}

func sumOf(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
