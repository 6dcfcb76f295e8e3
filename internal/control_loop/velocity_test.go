package control_loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVelocityEstimator_FirstSampleIsBaseline(t *testing.T) {
	// GIVEN
	estimator := NewVelocityEstimator(1, 360, false)

	// WHEN
	rate := estimator.Sample(1000, 500)

	// THEN
	assert.Equal(t, 0.0, rate)
}

func TestVelocityEstimator_Rpm(t *testing.T) {
	// GIVEN
	estimator := NewVelocityEstimator(1, 360, false)
	estimator.Sample(0, 0)

	// WHEN
	// 12 ticks in 20ms = 600 ticks/s = 100 RPM
	rate := estimator.Sample(20, 12)

	// THEN
	assert.InDelta(t, 100.0, rate, 0.000001)
}

func TestVelocityEstimator_GearRatio(t *testing.T) {
	// GIVEN
	estimator := NewVelocityEstimator(5, 360, false)
	estimator.Sample(0, 0)

	// WHEN
	rate := estimator.Sample(20, 12)

	// THEN
	assert.InDelta(t, 500.0, rate, 0.000001)
}

func TestVelocityEstimator_SkipsZeroDeltaTime(t *testing.T) {
	// GIVEN
	estimator := NewVelocityEstimator(1, 360, false)
	estimator.Sample(0, 0)
	estimator.Sample(20, 12)

	// WHEN
	rate := estimator.Sample(20, 100)

	// THEN
	assert.InDelta(t, 100.0, rate, 0.000001)

	// WHEN
	// the skipped sample must not have moved the baseline
	rate = estimator.Sample(40, 24)

	// THEN
	assert.InDelta(t, 100.0, rate, 0.000001)
}

func TestVelocityEstimator_Smoothing(t *testing.T) {
	// GIVEN
	estimator := NewVelocityEstimator(1, 360, true)
	estimator.Sample(0, 0)

	// WHEN
	first := estimator.Sample(20, 12)
	second := estimator.Sample(40, 24)

	// THEN
	assert.InDelta(t, 100.0/3, first, 0.000001)
	assert.InDelta(t, (2*100.0/3+100)/3, second, 0.000001)
}

func TestVelocityEstimator_Reset(t *testing.T) {
	// GIVEN
	estimator := NewVelocityEstimator(1, 360, false)
	estimator.Sample(0, 0)
	estimator.Sample(20, 12)

	// WHEN
	estimator.Reset()
	rate := estimator.Sample(40, 9999)

	// THEN
	assert.Equal(t, 0.0, rate)
}
