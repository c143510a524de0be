package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"greenLeanAPI/internal/types/plan"
	"greenLeanAPI/utils"
)

var ErrNoPlan = errors.New("no plan generated yet")

type PlanService struct {
	db *pgxpool.Pool
}

func NewPlanService(db *pgxpool.Pool) *PlanService {
	return &PlanService{db: db}
}

// SubmitQuiz stores the intake answers with their derived calculations and
// regenerates the user's diet and workout plans from them. Resubmitting the
// quiz replaces both plans.
func (s *PlanService) SubmitQuiz(ctx context.Context, userID uuid.UUID, answers plan.QuizAnswers) (*plan.QuizResult, error) {
	if answers.Age <= 0 || answers.HeightCm <= 0 || answers.WeightKg <= 0 {
		return nil, fmt.Errorf("quiz answers incomplete: age, height and weight are required")
	}

	calc := utils.CalculateNutritionProfile(answers)

	result := &plan.QuizResult{
		ID:           uuid.New(),
		UserID:       userID,
		Answers:      answers,
		Calculations: calc,
		CreatedAt:    time.Now(),
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin quiz transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO quiz_results (id, user_id, answers, calculations, created_at) VALUES ($1, $2, $3, $4, $5)`,
		result.ID, result.UserID, result.Answers, result.Calculations, result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store quiz result: %w", err)
	}

	dietQuery := `
	INSERT INTO diet_plans (id, user_id, daily_calories, protein_g, carbs_g, fat_g, diet_preference, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (user_id) DO UPDATE
	SET daily_calories = EXCLUDED.daily_calories,
	    protein_g = EXCLUDED.protein_g,
	    carbs_g = EXCLUDED.carbs_g,
	    fat_g = EXCLUDED.fat_g,
	    diet_preference = EXCLUDED.diet_preference,
	    created_at = EXCLUDED.created_at
	`
	_, err = tx.Exec(ctx, dietQuery,
		uuid.New(), userID, calc.GoalCalories,
		calc.Macros.ProteinG, calc.Macros.CarbsG, calc.Macros.FatG,
		answers.DietPreference, result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store diet plan: %w", err)
	}

	frequency := answers.WorkoutsPerWeek
	if frequency <= 0 {
		frequency = 3
	}
	workoutQuery := `
	INSERT INTO workout_plans (id, user_id, frequency_per_week, focus, session_minutes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id) DO UPDATE
	SET frequency_per_week = EXCLUDED.frequency_per_week,
	    focus = EXCLUDED.focus,
	    session_minutes = EXCLUDED.session_minutes,
	    created_at = EXCLUDED.created_at
	`
	_, err = tx.Exec(ctx, workoutQuery,
		uuid.New(), userID, frequency, workoutFocus(answers.Goal), 45, result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store workout plan: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit quiz transaction: %w", err)
	}

	return result, nil
}

func workoutFocus(goal plan.Goal) string {
	switch goal {
	case plan.GoalLoseFat:
		return "cardio_and_conditioning"
	case plan.GoalBuildMuscle:
		return "hypertrophy"
	default:
		return "general_fitness"
	}
}

func (s *PlanService) GetDietPlan(ctx context.Context, userID uuid.UUID) (*plan.DietPlan, error) {
	query := `
	SELECT id, user_id, daily_calories, protein_g, carbs_g, fat_g, diet_preference, created_at
	FROM diet_plans
	WHERE user_id = $1
	`

	p := &plan.DietPlan{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.DailyCalories, &p.ProteinG, &p.CarbsG, &p.FatG, &p.DietPreference, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoPlan
		}
		return nil, fmt.Errorf("failed to get diet plan: %w", err)
	}
	return p, nil
}

func (s *PlanService) GetWorkoutPlan(ctx context.Context, userID uuid.UUID) (*plan.WorkoutPlan, error) {
	query := `
	SELECT id, user_id, frequency_per_week, focus, session_minutes, created_at
	FROM workout_plans
	WHERE user_id = $1
	`

	p := &plan.WorkoutPlan{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.FrequencyPerWeek, &p.Focus, &p.SessionMinutes, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoPlan
		}
		return nil, fmt.Errorf("failed to get workout plan: %w", err)
	}
	return p, nil
}

func (s *PlanService) GetLatestQuizResult(ctx context.Context, userID uuid.UUID) (*plan.QuizResult, error) {
	query := `
	SELECT id, user_id, answers, calculations, created_at
	FROM quiz_results
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT 1
	`

	r := &plan.QuizResult{}
	err := s.db.QueryRow(ctx, query, userID).Scan(&r.ID, &r.UserID, &r.Answers, &r.Calculations, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoPlan
		}
		return nil, fmt.Errorf("failed to get quiz result: %w", err)
	}
	return r, nil
}
