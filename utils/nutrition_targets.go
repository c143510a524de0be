package utils

import (
	"math"

	"greenLeanAPI/internal/types/plan"
)

// Activity multipliers applied to BMR to estimate total daily energy
// expenditure.
var activityMultipliers = map[plan.ActivityLevel]float64{
	plan.ActivitySedentary:  1.2,
	plan.ActivityLight:      1.375,
	plan.ActivityModerate:   1.55,
	plan.ActivityActive:     1.725,
	plan.ActivityVeryActive: 1.9,
}

// CalculateBMR uses the Mifflin-St Jeor equation.
func CalculateBMR(sex plan.Sex, weightKg, heightCm float64, age int) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == plan.SexMale {
		return base + 5
	}
	return base - 161
}

func CalculateBMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)
	return math.Round(bmi*10) / 10
}

func CalculateTDEE(bmr float64, level plan.ActivityLevel) float64 {
	mult, ok := activityMultipliers[level]
	if !ok {
		mult = activityMultipliers[plan.ActivityModerate]
	}
	return bmr * mult
}

// goalCalories applies a flat adjustment to TDEE: a 500 kcal deficit for fat
// loss, a 300 kcal surplus for muscle gain, maintenance otherwise.
func goalCalories(tdee float64, goal plan.Goal) int {
	switch goal {
	case plan.GoalLoseFat:
		return int(math.Round(tdee - 500))
	case plan.GoalBuildMuscle:
		return int(math.Round(tdee + 300))
	default:
		return int(math.Round(tdee))
	}
}

// CalculateMacros splits goal calories into protein/carbs/fat. Protein is
// anchored to body weight (higher when cutting), fat to 25% of calories,
// carbs take the remainder.
func CalculateMacros(calories int, weightKg float64, goal plan.Goal) plan.Macros {
	proteinPerKg := 1.8
	if goal == plan.GoalLoseFat {
		proteinPerKg = 2.2
	}

	proteinG := int(math.Round(weightKg * proteinPerKg))
	proteinCal := proteinG * 4

	fatCal := int(math.Round(float64(calories) * 0.25))
	fatG := fatCal / 9

	carbsCal := calories - proteinCal - fatCal
	if carbsCal < 0 {
		carbsCal = 0
	}
	carbsG := carbsCal / 4

	pct := func(cal int) int {
		if calories == 0 {
			return 0
		}
		return int(math.Round(float64(cal) / float64(calories) * 100))
	}

	return plan.Macros{
		ProteinG:             proteinG,
		CarbsG:               carbsG,
		FatG:                 fatG,
		ProteinPctOfCalories: pct(proteinCal),
		CarbsPctOfCalories:   pct(carbsCal),
		FatPctOfCalories:     pct(fatCal),
	}
}

// CalculateNutritionProfile derives every stored metric from the quiz intake.
func CalculateNutritionProfile(answers plan.QuizAnswers) plan.Calculations {
	bmr := CalculateBMR(answers.Sex, answers.WeightKg, answers.HeightCm, answers.Age)
	tdee := CalculateTDEE(bmr, answers.ActivityLevel)
	calories := goalCalories(tdee, answers.Goal)

	return plan.Calculations{
		BMI:          CalculateBMI(answers.WeightKg, answers.HeightCm),
		BMR:          math.Round(bmr),
		TDEE:         math.Round(tdee),
		GoalCalories: calories,
		GoalWeightKg: answers.TargetWeightKg,
		Macros:       CalculateMacros(calories, answers.WeightKg, answers.Goal),
	}
}
