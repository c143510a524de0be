package plan

import (
	"time"

	"github.com/google/uuid"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type Goal string

const (
	GoalLoseFat     Goal = "lose_fat"
	GoalMaintain    Goal = "maintain"
	GoalBuildMuscle Goal = "build_muscle"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// QuizAnswers is the intake payload collected at registration.
// Height and weight arrive normalized to metric; the client converts
// imperial input before submitting.
type QuizAnswers struct {
	Age            int           `json:"age"`
	Sex            Sex           `json:"sex"`
	HeightCm       float64       `json:"height_cm"`
	WeightKg       float64       `json:"weight_kg"`
	TargetWeightKg float64       `json:"target_weight_kg"`
	ActivityLevel  ActivityLevel `json:"activity_level"`
	Goal           Goal          `json:"goal"`
	WorkoutsPerWeek int          `json:"workouts_per_week"`
	DietPreference string        `json:"diet_preference"`
}

type Macros struct {
	ProteinG            int `json:"protein_g"`
	CarbsG              int `json:"carbs_g"`
	FatG                int `json:"fat_g"`
	ProteinPctOfCalories int `json:"protein_pct_of_calories"`
	CarbsPctOfCalories   int `json:"carbs_pct_of_calories"`
	FatPctOfCalories     int `json:"fat_pct_of_calories"`
}

// Calculations are the derived nutrition numbers stored with the quiz result.
type Calculations struct {
	BMI          float64 `json:"bmi"`
	BMR          float64 `json:"bmr"`
	TDEE         float64 `json:"tdee"`
	GoalCalories int     `json:"goal_calories"`
	GoalWeightKg float64 `json:"goal_weight_kg"`
	Macros       Macros  `json:"macros"`
}

type DietPlan struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	DailyCalories int       `json:"daily_calories" db:"daily_calories"`
	ProteinG      int       `json:"protein_g" db:"protein_g"`
	CarbsG        int       `json:"carbs_g" db:"carbs_g"`
	FatG          int       `json:"fat_g" db:"fat_g"`
	DietPreference string   `json:"diet_preference" db:"diet_preference"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type WorkoutPlan struct {
	ID               uuid.UUID `json:"id" db:"id"`
	UserID           uuid.UUID `json:"user_id" db:"user_id"`
	FrequencyPerWeek int       `json:"frequency_per_week" db:"frequency_per_week"`
	Focus            string    `json:"focus" db:"focus"`
	SessionMinutes   int       `json:"session_minutes" db:"session_minutes"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

type QuizResult struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	UserID       uuid.UUID    `json:"user_id" db:"user_id"`
	Answers      QuizAnswers  `json:"answers" db:"answers"`
	Calculations Calculations `json:"calculations" db:"calculations"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}
