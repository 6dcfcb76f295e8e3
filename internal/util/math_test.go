package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSign(t *testing.T) {
	assert.Equal(t, 1, Sign(42))
	assert.Equal(t, -1, Sign(-3))
	assert.Equal(t, 0, Sign(0))
	assert.Equal(t, 1.0, Sign(0.001))
	assert.Equal(t, -1.0, Sign(-750.5))
	assert.Equal(t, 0.0, Sign(0.0))
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 5, Abs(-5))
	assert.Equal(t, 5, Abs(5))
	assert.Equal(t, 2.5, Abs(-2.5))
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		value, min, max, expected int
	}{
		{value: 200, min: -127, max: 127, expected: 127},
		{value: -200, min: -127, max: 127, expected: -127},
		{value: 15, min: -127, max: 127, expected: 15},
		{value: -127, min: -127, max: 127, expected: -127},
	}

	for _, tt := range tests {
		// WHEN
		result := Coerce(tt.value, tt.min, tt.max)

		// THEN
		assert.Equal(t, tt.expected, result, "value: %d", tt.value)
	}
}

func TestRescaleToWithinBounds(t *testing.T) {
	// WHEN
	alpha, beta := RescaleTo(127, 100, 60)

	// THEN
	assert.Equal(t, 100, alpha)
	assert.Equal(t, 60, beta)
}

func TestRescaleToAboveBounds(t *testing.T) {
	// WHEN
	alpha, beta := RescaleTo(127, 254, 127)

	// THEN
	assert.Equal(t, 127, alpha)
	assert.Equal(t, 63, beta)
}

func TestRescaleToBetaLarger(t *testing.T) {
	// WHEN
	alpha, beta := RescaleTo(100, 50, 200)

	// THEN
	assert.Equal(t, 25, alpha)
	assert.Equal(t, 100, beta)
}

func TestSmoothThirds(t *testing.T) {
	// GIVEN
	previous := 300.0
	current := 0.0

	// WHEN
	result := SmoothThirds(previous, current)

	// THEN
	assert.Equal(t, 200.0, result)
}
