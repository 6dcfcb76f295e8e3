package auton

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/robot"
	"github.com/flagbot/flagbot/internal/sim"
	"github.com/flagbot/flagbot/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRunner(t *testing.T, config configuration.Configuration) (*Runner, *sim.Plant) {
	r, plant, err := sim.NewRobot(config, robot.NewManualClock())
	require.NoError(t, err)
	return NewRunner(r, config), plant
}

func findSteps(result RunResult, kind configuration.StepKind) []StepResult {
	var steps []StepResult
	for _, step := range result.Steps {
		if step.Kind == kind {
			steps = append(steps, step)
		}
	}
	return steps
}

func TestRunner_DefaultRoutine(t *testing.T) {
	// GIVEN
	runner, plant := createRunner(t, testingutils.CreateConfig())

	// WHEN
	result, err := runner.Run(context.Background(), configuration.DefaultRoutineId, configuration.AllianceBlue)

	// THEN
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Empty(t, result.Error)
	// nested preload routine steps are recorded with their own routine id
	assert.Equal(t, "preload", result.Steps[0].Routine)
	assert.Len(t, result.Steps, 15)
	assert.Greater(t, result.EndMs, result.StartMs)
	assert.GreaterOrEqual(t, plant.State().Shots, 1)

	turns := findSteps(result, configuration.StepTurn)
	require.Len(t, turns, 2)
	assert.Equal(t, 100.0, turns[0].Value)
}

func TestRunner_MirrorsTurnsForRed(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Routines = []configuration.RoutineConfig{
		{
			ID: "mirror",
			Steps: []configuration.StepConfig{
				{Kind: configuration.StepTurn, Value: 30, Mirror: true},
				{Kind: configuration.StepTurn, Value: 0},
			},
		},
	}
	runner, plant := createRunner(t, config)

	// WHEN
	result, err := runner.Run(context.Background(), "mirror", configuration.AllianceRed)

	// THEN
	require.NoError(t, err)
	require.Len(t, result.Steps, 2)
	assert.Equal(t, -30.0, result.Steps[0].Value)
	assert.True(t, result.Steps[0].Result.Converged)
	assert.InDelta(t, 0.0, plant.State().Heading/10, 10)
}

func TestRunner_UnknownRoutine(t *testing.T) {
	// GIVEN
	runner, _ := createRunner(t, testingutils.CreateConfig())

	// WHEN
	result, err := runner.Run(context.Background(), "skills", configuration.AllianceBlue)

	// THEN
	assert.True(t, errors.Is(err, ErrUnknownRoutine))
	assert.False(t, result.Completed)
	assert.Equal(t, "unknown routine: skills", result.Error)
}

func TestRunner_NotConvergedStepContinues(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Drive.MaxPower = 10
	config.Drive.MaxDuration = 200 * time.Millisecond
	config.Routines = []configuration.RoutineConfig{
		{
			ID: "stuck",
			Steps: []configuration.StepConfig{
				{Kind: configuration.StepDrive, Value: 1000},
				{Kind: configuration.StepWait, Duration: 100 * time.Millisecond},
			},
		},
	}
	runner, _ := createRunner(t, config)

	// WHEN
	result, err := runner.Run(context.Background(), "stuck", configuration.AllianceBlue)

	// THEN
	require.NoError(t, err)
	assert.True(t, result.Completed)
	require.Len(t, result.Steps, 2)
	assert.Contains(t, result.Steps[0].Error, "did not converge")
	assert.False(t, result.Steps[0].Result.Converged)
	assert.Empty(t, result.Steps[1].Error)
}

func TestRunner_NestingGuard(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Routines = []configuration.RoutineConfig{
		{
			ID:    "loop",
			Steps: []configuration.StepConfig{{Kind: configuration.StepRoutine, Routine: "loop"}},
		},
	}
	runner, _ := createRunner(t, config)

	// WHEN
	_, err := runner.Run(context.Background(), "loop", configuration.AllianceBlue)

	// THEN
	assert.ErrorContains(t, err, "nesting deeper than")
}

func TestRunner_DoubleShot(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Sim.Balls = 2
	runner, plant := createRunner(t, config)

	// WHEN
	result, err := runner.Run(context.Background(), "doubleShot", configuration.AllianceBlue)

	// THEN
	require.NoError(t, err)
	require.Len(t, result.Steps, 4)
	shot := result.Steps[2]
	assert.Equal(t, configuration.StepDoubleShot, shot.Kind)
	assert.Empty(t, shot.Error)
	assert.Equal(t, 2, plant.State().Shots)
	assert.Equal(t, 0.0, runner.executor.Robot().State().FlywheelSetpoint)
}

func TestRunner_TrailingFlywheelStepIsApplied(t *testing.T) {
	// GIVEN
	config := testingutils.CreateConfig()
	config.Routines = []configuration.RoutineConfig{
		{
			ID:    "spin",
			Steps: []configuration.StepConfig{{Kind: configuration.StepFlywheel, Value: 1800}},
		},
	}
	runner, _ := createRunner(t, config)

	// WHEN
	result, err := runner.Run(context.Background(), "spin", configuration.AllianceBlue)

	// THEN
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, 1800.0, runner.executor.Robot().State().FlywheelSetpoint)
	assert.Empty(t, runner.executor.pending)
}
