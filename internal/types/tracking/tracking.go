package tracking

import (
	"time"

	"github.com/google/uuid"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

type NutritionLog struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	LogDate       time.Time `json:"log_date" db:"log_date"`
	MealType      MealType  `json:"meal_type" db:"meal_type"`
	FoodItems     string    `json:"food_items" db:"food_items"`
	TotalCalories float64   `json:"total_calories" db:"total_calories"`
	TotalProtein  float64   `json:"total_protein" db:"total_protein"`
	TotalCarbs    float64   `json:"total_carbs" db:"total_carbs"`
	TotalFats     float64   `json:"total_fats" db:"total_fats"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type WaterIntakeLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	LogDate   time.Time `json:"log_date" db:"log_date"`
	Glasses   int       `json:"glasses" db:"glasses"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type WorkoutLog struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	WorkoutDate     time.Time `json:"workout_date" db:"workout_date"`
	WorkoutType     string    `json:"workout_type" db:"workout_type"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	CaloriesBurned  float64   `json:"calories_burned" db:"calories_burned"`
	Completed       bool      `json:"completed" db:"completed"`
	Notes           string    `json:"notes" db:"notes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type AddNutritionLogRequest struct {
	LogDate       string   `json:"log_date"`
	MealType      MealType `json:"meal_type"`
	FoodItems     string   `json:"food_items"`
	TotalCalories float64  `json:"total_calories"`
	TotalProtein  float64  `json:"total_protein"`
	TotalCarbs    float64  `json:"total_carbs"`
	TotalFats     float64  `json:"total_fats"`
}

type AddWaterLogRequest struct {
	LogDate string `json:"log_date"`
	Glasses int    `json:"glasses"`
}

type AddWorkoutLogRequest struct {
	WorkoutDate     string  `json:"workout_date"`
	WorkoutType     string  `json:"workout_type"`
	DurationMinutes int     `json:"duration_minutes"`
	CaloriesBurned  float64 `json:"calories_burned"`
	Completed       bool    `json:"completed"`
	Notes           string  `json:"notes"`
}
