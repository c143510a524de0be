package stats

// WeeklySummary covers the trailing 7 days of a user's logs.
type WeeklySummary struct {
	TotalCalories     int     `json:"total_calories"`
	AvgCalories       int     `json:"avg_calories"`
	WorkoutsCompleted int     `json:"workouts_completed"`
	AvgHydration      float64 `json:"avg_hydration"`
	DaysActive        int     `json:"days_active"`
}

// WorkoutStats covers the trailing 30 days.
type WorkoutStats struct {
	TotalWorkouts         int    `json:"total_workouts"`
	TotalMinutes          int    `json:"total_minutes"`
	TotalCaloriesBurned   int    `json:"total_calories_burned"`
	AvgCaloriesPerSession int    `json:"avg_calories_per_session"`
	MostCommonType        string `json:"most_common_type"`
	LongestWorkout        int    `json:"longest_workout"`
}

type AdherenceScore struct {
	Overall     int   `json:"overall"`
	WeeklyTrend []int `json:"weekly_trend"`
}

// Dashboard is the aggregate payload behind the progress dashboard screen.
type Dashboard struct {
	CurrentStreak int            `json:"current_streak"`
	WeeklySummary WeeklySummary  `json:"weekly_summary"`
	WorkoutStats  WorkoutStats   `json:"workout_stats"`
	DietAdherence AdherenceScore `json:"diet_adherence"`
}

// AdminAnalytics is the back-office overview.
type AdminAnalytics struct {
	TotalUsers           int     `json:"total_users"`
	ProUsers             int     `json:"pro_users"`
	ActiveChallenges     int     `json:"active_challenges"`
	TotalParticipants    int     `json:"total_participants"`
	ChallengesCompleted  int     `json:"challenges_completed"`
	AvgCompletionRate    float64 `json:"avg_completion_rate"`
	NutritionLogsToday   int     `json:"nutrition_logs_today"`
	WorkoutLogsToday     int     `json:"workout_logs_today"`
	ActiveSubscriptions  int     `json:"active_subscriptions"`
	NewUsersLast30Days   int     `json:"new_users_last_30_days"`
}
