package utils

import (
	"fmt"
	"math"
)

const (
	lbsPerKg    = 2.20462
	cmPerInch   = 2.54
	inchPerFoot = 12
)

func KgToLbs(kg float64) float64 {
	return kg * lbsPerKg
}

func LbsToKg(lbs float64) float64 {
	return lbs / lbsPerKg
}

// CmToFeetInches splits a metric height into whole feet and rounded inches.
func CmToFeetInches(cm float64) (feet int, inches int) {
	totalInches := cm / cmPerInch
	feet = int(totalInches / inchPerFoot)
	inches = int(math.Round(math.Mod(totalInches, inchPerFoot)))
	return feet, inches
}

func FeetInchesToCm(feet, inches int) float64 {
	return float64(feet*inchPerFoot+inches) * cmPerInch
}

// FormatHeight renders a height for the user's chosen unit system
// ("imperial" or anything else, treated as metric).
func FormatHeight(cm float64, unitSystem string) string {
	if unitSystem == "imperial" {
		feet, inches := CmToFeetInches(cm)
		return fmt.Sprintf("%d' %d\"", feet, inches)
	}
	return fmt.Sprintf("%d cm", int(math.Round(cm)))
}

func FormatWeight(kg float64, unitSystem string) string {
	if unitSystem == "imperial" {
		return fmt.Sprintf("%.1f lbs", KgToLbs(kg))
	}
	return fmt.Sprintf("%.1f kg", kg)
}
