package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0.0, completionRate(0, 0), "empty challenge must not divide by zero")
	assert.Equal(t, 0.0, completionRate(0, 4))
	assert.Equal(t, 25.0, completionRate(1, 4))
	assert.Equal(t, 50.0, completionRate(2, 4))
	assert.Equal(t, 100.0, completionRate(4, 4))
	assert.InDelta(t, 33.333, completionRate(1, 3), 0.001)
}
