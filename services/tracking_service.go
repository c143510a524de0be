package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"greenLeanAPI/internal/types/stats"
	"greenLeanAPI/internal/types/tracking"
	"greenLeanAPI/utils"
)

type TrackingService struct {
	db *pgxpool.Pool

	now func() time.Time
}

func NewTrackingService(db *pgxpool.Pool) *TrackingService {
	return &TrackingService{db: db, now: time.Now}
}

func parseLogDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid log date %q: expected YYYY-MM-DD", value)
	}
	return t, nil
}

func (s *TrackingService) AddNutritionLog(ctx context.Context, userID uuid.UUID, req *tracking.AddNutritionLogRequest) (*tracking.NutritionLog, error) {
	logDate, err := parseLogDate(req.LogDate)
	if err != nil {
		return nil, err
	}

	l := &tracking.NutritionLog{
		ID:            uuid.New(),
		UserID:        userID,
		LogDate:       logDate,
		MealType:      req.MealType,
		FoodItems:     req.FoodItems,
		TotalCalories: req.TotalCalories,
		TotalProtein:  req.TotalProtein,
		TotalCarbs:    req.TotalCarbs,
		TotalFats:     req.TotalFats,
		CreatedAt:     s.now(),
	}

	query := `
	INSERT INTO nutrition_logs (id, user_id, log_date, meal_type, food_items, total_calories, total_protein, total_carbs, total_fats, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.Exec(ctx, query,
		l.ID, l.UserID, l.LogDate, l.MealType, l.FoodItems,
		l.TotalCalories, l.TotalProtein, l.TotalCarbs, l.TotalFats, l.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add nutrition log: %w", err)
	}
	return l, nil
}

func (s *TrackingService) AddWaterLog(ctx context.Context, userID uuid.UUID, req *tracking.AddWaterLogRequest) (*tracking.WaterIntakeLog, error) {
	logDate, err := parseLogDate(req.LogDate)
	if err != nil {
		return nil, err
	}

	l := &tracking.WaterIntakeLog{
		ID:        uuid.New(),
		UserID:    userID,
		LogDate:   logDate,
		Glasses:   req.Glasses,
		CreatedAt: s.now(),
	}

	// One row per user per day; re-logging replaces the glass count.
	query := `
	INSERT INTO water_intake_logs (id, user_id, log_date, glasses, created_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (user_id, log_date) DO UPDATE SET glasses = EXCLUDED.glasses
	`
	_, err = s.db.Exec(ctx, query, l.ID, l.UserID, l.LogDate, l.Glasses, l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add water log: %w", err)
	}
	return l, nil
}

func (s *TrackingService) AddWorkoutLog(ctx context.Context, userID uuid.UUID, req *tracking.AddWorkoutLogRequest) (*tracking.WorkoutLog, error) {
	workoutDate, err := parseLogDate(req.WorkoutDate)
	if err != nil {
		return nil, err
	}

	l := &tracking.WorkoutLog{
		ID:              uuid.New(),
		UserID:          userID,
		WorkoutDate:     workoutDate,
		WorkoutType:     req.WorkoutType,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		Completed:       req.Completed,
		Notes:           req.Notes,
		CreatedAt:       s.now(),
	}

	query := `
	INSERT INTO workout_logs (id, user_id, workout_date, workout_type, duration_minutes, calories_burned, completed, notes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.Exec(ctx, query,
		l.ID, l.UserID, l.WorkoutDate, l.WorkoutType, l.DurationMinutes,
		l.CaloriesBurned, l.Completed, l.Notes, l.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add workout log: %w", err)
	}
	return l, nil
}

func (s *TrackingService) DeleteLog(ctx context.Context, userID, logID uuid.UUID, table string) error {
	switch table {
	case "nutrition_logs", "water_intake_logs", "workout_logs":
	default:
		return fmt.Errorf("unknown log table %q", table)
	}

	_, err := s.db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1 AND user_id = $2`, logID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}
	return nil
}

func (s *TrackingService) GetNutritionLogs(ctx context.Context, userID uuid.UUID, since time.Time) ([]tracking.NutritionLog, error) {
	query := `
	SELECT id, user_id, log_date, meal_type, food_items, total_calories, total_protein, total_carbs, total_fats, created_at
	FROM nutrition_logs
	WHERE user_id = $1 AND log_date >= $2
	ORDER BY log_date DESC
	`

	rows, err := s.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get nutrition logs: %w", err)
	}
	defer rows.Close()

	logs := []tracking.NutritionLog{}
	for rows.Next() {
		var l tracking.NutritionLog
		err := rows.Scan(&l.ID, &l.UserID, &l.LogDate, &l.MealType, &l.FoodItems,
			&l.TotalCalories, &l.TotalProtein, &l.TotalCarbs, &l.TotalFats, &l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nutrition log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *TrackingService) GetWaterLogs(ctx context.Context, userID uuid.UUID, since time.Time) ([]tracking.WaterIntakeLog, error) {
	query := `
	SELECT id, user_id, log_date, glasses, created_at
	FROM water_intake_logs
	WHERE user_id = $1 AND log_date >= $2
	ORDER BY log_date DESC
	`

	rows, err := s.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get water logs: %w", err)
	}
	defer rows.Close()

	logs := []tracking.WaterIntakeLog{}
	for rows.Next() {
		var l tracking.WaterIntakeLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.LogDate, &l.Glasses, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan water log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *TrackingService) GetWorkoutLogs(ctx context.Context, userID uuid.UUID, since time.Time) ([]tracking.WorkoutLog, error) {
	query := `
	SELECT id, user_id, workout_date, workout_type, duration_minutes, calories_burned, completed, notes, created_at
	FROM workout_logs
	WHERE user_id = $1 AND workout_date >= $2
	ORDER BY workout_date DESC
	`

	rows, err := s.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get workout logs: %w", err)
	}
	defer rows.Close()

	logs := []tracking.WorkoutLog{}
	for rows.Next() {
		var l tracking.WorkoutLog
		err := rows.Scan(&l.ID, &l.UserID, &l.WorkoutDate, &l.WorkoutType, &l.DurationMinutes,
			&l.CaloriesBurned, &l.Completed, &l.Notes, &l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workout log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// GetDashboard reduces the trailing 30 days of logs into the progress
// dashboard payload. goalCalories comes from the user's diet plan; zero
// means no plan yet and adherence scores as unlogged.
func (s *TrackingService) GetDashboard(ctx context.Context, userID uuid.UUID, goalCalories int) (*stats.Dashboard, error) {
	now := s.now()
	since := now.AddDate(0, 0, -30)

	nutrition, err := s.GetNutritionLogs(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	water, err := s.GetWaterLogs(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	workouts, err := s.GetWorkoutLogs(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	return &stats.Dashboard{
		CurrentStreak: utils.CalculateActivityStreak(nutrition, water, workouts, now),
		WeeklySummary: utils.CalculateWeeklySummary(nutrition, water, workouts, now),
		WorkoutStats:  utils.CalculateWorkoutStats(workouts, now),
		DietAdherence: utils.CalculateDietAdherence(nutrition, goalCalories, now),
	}, nil
}
