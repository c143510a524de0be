package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKgLbsRoundTrip(t *testing.T) {
	assert.InDelta(t, 154.32, KgToLbs(70), 0.01)
	assert.InDelta(t, 70, LbsToKg(KgToLbs(70)), 0.0001)
}

func TestCmToFeetInches(t *testing.T) {
	feet, inches := CmToFeetInches(175)
	assert.Equal(t, 5, feet)
	assert.Equal(t, 9, inches)

	feet, inches = CmToFeetInches(177.8)
	assert.Equal(t, 5, feet)
	assert.Equal(t, 10, inches)
}

func TestFeetInchesToCm(t *testing.T) {
	assert.InDelta(t, 177.8, FeetInchesToCm(5, 10), 0.001)
}

func TestFormatHeight(t *testing.T) {
	assert.Equal(t, "175 cm", FormatHeight(175, "metric"))
	assert.Equal(t, "5' 9\"", FormatHeight(175, "imperial"))
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "70.0 kg", FormatWeight(70, "metric"))
	assert.Equal(t, "154.3 lbs", FormatWeight(70, "imperial"))
}
