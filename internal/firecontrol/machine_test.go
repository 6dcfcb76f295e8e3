package firecontrol

import (
	"testing"
	"time"

	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func createMachine(clearOn configuration.ClearCondition) *Machine {
	return NewMachine(configuration.FireControlConfig{
		ResetDelay:            2 * time.Second,
		QueueTimeout:          1 * time.Second,
		FireTimeout:           3 * time.Second,
		ClearOn:               clearOn,
		FlywheelDropThreshold: 150,
	})
}

var (
	ejecting = Outputs{Indexer: configuration.ModeForward, Intake: configuration.ModeForward}
	holding  = Outputs{Indexer: configuration.ModeStop, Intake: configuration.ModeStop}
)

func TestMachine_CatchModeWithoutBall(t *testing.T) {
	// GIVEN
	machine := createMachine(configuration.ClearOnSensor)

	// WHEN
	out := machine.Step(Inputs{NowMs: 0, BallLoaded: false})

	// THEN
	assert.Equal(t, ejecting, out)

	// WHEN
	out = machine.Step(Inputs{NowMs: 20, BallLoaded: true})

	// THEN
	assert.Equal(t, holding, out)
}

func TestMachine_SingleShotRequiresLockedFlywheel(t *testing.T) {
	// GIVEN
	machine := createMachine(configuration.ClearOnSensor)
	machine.RequestFire()

	// WHEN
	out := machine.Step(Inputs{NowMs: 0, BallLoaded: true, FlywheelLocked: false})

	// THEN
	assert.Equal(t, holding, out)
	assert.Equal(t, ShotIdle, machine.State().Shot)
	assert.True(t, machine.Busy())
}

func TestMachine_SingleShot(t *testing.T) {
	// GIVEN
	machine := createMachine(configuration.ClearOnSensor)
	machine.RequestFire()

	// WHEN
	out := machine.Step(Inputs{NowMs: 0, BallLoaded: true, FlywheelLocked: true})

	// THEN
	assert.Equal(t, ejecting, out)
	assert.Equal(t, ShotArmed, machine.State().Shot)

	// WHEN
	out = machine.Step(Inputs{NowMs: 20, BallLoaded: true, FlywheelLocked: true})

	// THEN
	assert.Equal(t, ejecting, out)
	assert.Equal(t, ShotFiring, machine.State().Shot)

	// WHEN
	out = machine.Step(Inputs{NowMs: 40, BallLoaded: false, FlywheelLocked: true})

	// THEN
	assert.Equal(t, ShotIdle, machine.State().Shot)
	assert.False(t, machine.State().FireRequested)
	assert.False(t, machine.Busy())
	assert.Equal(t, ejecting, out)
}

func TestMachine_OverridePrecedence(t *testing.T) {
	// GIVEN
	machine := createMachine(configuration.ClearOnSensor)
	machine.SetOverride(configuration.ModeReverse)
	machine.RequestFire()

	inputs := []Inputs{
		{NowMs: 0, BallLoaded: false},
		{NowMs: 20, BallLoaded: true, FlywheelLocked: true},
		{NowMs: 40, BallLoaded: true, FlywheelLocked: true},
	}
	for _, in := range inputs {
		// WHEN
		out := machine.Step(in)

		// THEN
		assert.Equal(t, configuration.ModeReverse, out.Indexer)
		assert.Equal(t, configuration.ModeReverse, out.Intake)
	}
}

func TestMachine_OverrideStopDoesNotOverride(t *testing.T) {
	// GIVEN
	machine := createMachine(configuration.ClearOnSensor)
	machine.SetOverride(configuration.ModeStop)

	// WHEN
	out := machine.Step(Inputs{NowMs: 0, BallLoaded: false})

	// THEN
	assert.Equal(t, ejecting, out)
}

func TestMachine_DoubleShotOrdering(t *testing.T) {
	// GIVEN
	machine := createMachine(configuration.ClearOnSensor)
	machine.RequestDoubleShot()
	machine.SetOverride(configuration.ModeForward)

	steps := []struct {
		in    Inputs
		stage DoubleShotStage
	}{
		{Inputs{NowMs: 0, BallLoaded: true}, StageFirstShotFired},
		{Inputs{NowMs: 20, BallLoaded: true}, StageFirstShotFired},
		{Inputs{NowMs: 40, BallLoaded: false}, StageSecondShotQueued},
		{Inputs{NowMs: 60, BallLoaded: false}, StageSecondShotQueued},
		{Inputs{NowMs: 80, BallLoaded: true}, StageResetting},
		// reset delay not yet elapsed
		{Inputs{NowMs: 100, BallLoaded: false}, StageResetting},
		{Inputs{NowMs: 2060, BallLoaded: false}, StageResetting},
		// elapsed, but a ball is still detected
		{Inputs{NowMs: 2080, BallLoaded: true}, StageResetting},
		{Inputs{NowMs: 2100, BallLoaded: false}, StageIdle},
	}

	previous := StageIdle
	for _, step := range steps {
		// WHEN
		machine.Step(step.in)

		// THEN
		stage := machine.State().Stage
		assert.Equal(t, step.stage, stage, "at %d ms", step.in.NowMs)
		if stage != previous {
			assert.Equal(t, (previous+1)%4, stage)
		}
		previous = stage
	}

	state := machine.State()
	assert.Equal(t, int64(80), state.ResetTimestampMs)
	assert.Equal(t, configuration.ModeStop, state.Override)
	assert.False(t, state.DoubleShotRequested)
	assert.False(t, machine.Busy())
}

func TestMachine_DoubleShotQueueTimeout(t *testing.T) {
	// GIVEN
	machine := createMachine(configuration.ClearOnSensor)
	machine.RequestDoubleShot()
	machine.Step(Inputs{NowMs: 0, BallLoaded: true})
	machine.Step(Inputs{NowMs: 20, BallLoaded: false})

	// WHEN
	machine.Step(Inputs{NowMs: 1000, BallLoaded: false})

	// THEN
	assert.Equal(t, StageSecondShotQueued, machine.State().Stage)

	// WHEN
	out := machine.Step(Inputs{NowMs: 1020, BallLoaded: false})

	// THEN
	assert.Equal(t, StageResetting, machine.State().Stage)
	assert.Equal(t, configuration.ModeForward, out.Indexer)
	assert.Equal(t, configuration.ModeStop, out.Intake)
}

func TestMachine_DoubleShotStuckSensorStillResets(t *testing.T) {
	// GIVEN
	machine := createMachine(configuration.ClearOnFlywheel)
	machine.RequestDoubleShot()

	// WHEN
	// the load sensor never reports the first ball leaving
	machine.Step(Inputs{NowMs: 0, BallLoaded: true})
	machine.Step(Inputs{NowMs: 20, BallLoaded: true, FlywheelError: 400})
	machine.Step(Inputs{NowMs: 40, BallLoaded: true})

	// THEN
	assert.Equal(t, StageResetting, machine.State().Stage)
}

func TestMachine_DoubleShotFlywheelClearCondition(t *testing.T) {
	// GIVEN
	machine := createMachine(configuration.ClearOnFlywheel)
	machine.RequestDoubleShot()
	machine.Step(Inputs{NowMs: 0, BallLoaded: true})

	// WHEN
	machine.Step(Inputs{NowMs: 20, BallLoaded: false, FlywheelError: 100})

	// THEN
	assert.Equal(t, StageFirstShotFired, machine.State().Stage)

	// WHEN
	machine.Step(Inputs{NowMs: 40, BallLoaded: false, FlywheelError: 151})

	// THEN
	assert.Equal(t, StageSecondShotQueued, machine.State().Stage)
}

func TestMachine_DoubleShotWaitsForBall(t *testing.T) {
	// GIVEN
	machine := createMachine(configuration.ClearOnSensor)
	machine.RequestDoubleShot()

	// WHEN
	out := machine.Step(Inputs{NowMs: 0, BallLoaded: false})

	// THEN
	assert.Equal(t, StageIdle, machine.State().Stage)
	assert.Equal(t, ejecting, out)
	assert.True(t, machine.Busy())
}

func TestMachine_Cancel(t *testing.T) {
	// GIVEN
	machine := createMachine(configuration.ClearOnSensor)
	machine.RequestDoubleShot()
	machine.SetOverride(configuration.ModeReverse)
	machine.Step(Inputs{NowMs: 0, BallLoaded: true})

	// WHEN
	machine.Cancel()

	// THEN
	state := machine.State()
	assert.Equal(t, StageIdle, state.Stage)
	assert.Equal(t, configuration.ModeStop, state.Override)
	assert.False(t, machine.Busy())
}
