package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinUp(t *testing.T) {
	// GIVEN
	config := createConfig()

	// WHEN
	result, err := SpinUp(context.Background(), config, 2400, 6*time.Second)

	// THEN
	require.NoError(t, err)
	assert.Len(t, result.Samples, 300)
	assert.Greater(t, result.LockedAfter, time.Duration(0))
	assert.Less(t, result.LockedAfter, 6*time.Second)
	assert.InDelta(t, 2400.0, result.Samples[len(result.Samples)-1], 2*config.Flywheel.LockThreshold)
	assert.Equal(t, 2400.0, result.Final.FlywheelSetpoint)
}

func TestSpinUp_ZeroSetpointNeverLocks(t *testing.T) {
	// WHEN
	result, err := SpinUp(context.Background(), createConfig(), 0, time.Second)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), result.LockedAfter)
	assert.Equal(t, 0.0, result.Final.FlywheelRate)
}

func TestSpinUp_Cancelled(t *testing.T) {
	// GIVEN
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN
	_, err := SpinUp(ctx, createConfig(), 2400, time.Second)

	// THEN
	assert.ErrorIs(t, err, context.Canceled)
}
