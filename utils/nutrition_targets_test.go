package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"greenLeanAPI/internal/types/plan"
)

func TestCalculateBMR(t *testing.T) {
	// Mifflin-St Jeor: 10*70 + 6.25*175 - 5*30 + 5 = 1648.75
	assert.InDelta(t, 1648.75, CalculateBMR(plan.SexMale, 70, 175, 30), 0.001)
	// Female: 10*60 + 6.25*165 - 5*25 - 161 = 1345.25
	assert.InDelta(t, 1345.25, CalculateBMR(plan.SexFemale, 60, 165, 25), 0.001)
}

func TestCalculateBMI(t *testing.T) {
	assert.Equal(t, 22.9, CalculateBMI(70, 175))
	assert.Equal(t, 0.0, CalculateBMI(70, 0))
}

func TestCalculateTDEE(t *testing.T) {
	assert.InDelta(t, 1648.75*1.55, CalculateTDEE(1648.75, plan.ActivityModerate), 0.001)
	// Unknown levels fall back to moderate.
	assert.InDelta(t, 1648.75*1.55, CalculateTDEE(1648.75, plan.ActivityLevel("heroic")), 0.001)
}

func TestGoalCaloriesAdjustment(t *testing.T) {
	assert.Equal(t, 2056, goalCalories(2556, plan.GoalLoseFat))
	assert.Equal(t, 2856, goalCalories(2556, plan.GoalBuildMuscle))
	assert.Equal(t, 2556, goalCalories(2556, plan.GoalMaintain))
}

func TestCalculateMacrosSumsNearGoalCalories(t *testing.T) {
	m := CalculateMacros(2000, 70, plan.GoalLoseFat)

	assert.Equal(t, 154, m.ProteinG) // 70kg * 2.2 g/kg
	total := m.ProteinG*4 + m.CarbsG*4 + m.FatG*9
	// Gram rounding loses a few calories but never overshoots.
	assert.LessOrEqual(t, total, 2000)
	assert.Greater(t, total, 1900)
}

func TestCalculateNutritionProfile(t *testing.T) {
	calc := CalculateNutritionProfile(plan.QuizAnswers{
		Age:            30,
		Sex:            plan.SexMale,
		HeightCm:       175,
		WeightKg:       70,
		TargetWeightKg: 65,
		ActivityLevel:  plan.ActivityModerate,
		Goal:           plan.GoalLoseFat,
	})

	assert.Equal(t, 22.9, calc.BMI)
	assert.Equal(t, 1649.0, calc.BMR)
	assert.Equal(t, 2556.0, calc.TDEE)
	assert.Equal(t, 2056, calc.GoalCalories)
	assert.Equal(t, 65.0, calc.GoalWeightKg)
	assert.Equal(t, 154, calc.Macros.ProteinG)
}
