package control_loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPidLoop_P(t *testing.T) {
	// GIVEN
	loop := NewPidLoop(0.5, 0, 0)
	loop.SetTarget(100)
	loop.SetMeasured(20)

	// WHEN
	output := loop.Step()

	// THEN
	assert.Equal(t, 40.0, output)
	assert.Equal(t, 80.0, loop.Error())
}

func TestPidLoop_IntegralOnlyAdvancesWithGain(t *testing.T) {
	// GIVEN
	loop := NewPidLoop(1, 0, 0)

	// WHEN
	loop.Cycle(10, 0)
	loop.Cycle(10, 0)

	// THEN
	assert.Equal(t, 0.0, loop.State().AccumulatedError)

	// WHEN
	loop.Configure(1, 0.1, 0)
	output := loop.Cycle(10, 0)

	// THEN
	assert.Equal(t, 10.0, loop.State().AccumulatedError)
	assert.InDelta(t, 11.0, output, 0.000001)
}

func TestPidLoop_DerivativeUsesPreviousError(t *testing.T) {
	// GIVEN
	loop := NewPidLoop(0, 0, 2)

	// WHEN
	first := loop.Cycle(10, 0)
	second := loop.Cycle(10, 4)

	// THEN
	assert.Equal(t, 0.0, first)
	assert.Equal(t, 20.0, second)
	assert.Equal(t, 6.0, loop.State().LastError)
}

func TestPidLoop_OutputIsNotClamped(t *testing.T) {
	// GIVEN
	loop := NewPidLoop(10, 0, 0)

	// WHEN
	output := loop.Cycle(1000, 0)

	// THEN
	assert.Equal(t, 10000.0, output)
}

func TestPidLoop_ConfigureKeepsState(t *testing.T) {
	// GIVEN
	loop := NewPidLoop(1, 1, 1)
	loop.Cycle(5, 0)

	// WHEN
	loop.Configure(2, 2, 2)

	// THEN
	state := loop.State()
	assert.Equal(t, 5.0, state.AccumulatedError)
	assert.Equal(t, 5.0, state.LastError)
	assert.Equal(t, 2.0, state.P)
}

func TestPidLoop_Reset(t *testing.T) {
	// GIVEN
	loop := NewPidLoop(1, 1, 1)
	loop.Cycle(5, 0)

	// WHEN
	loop.Reset()

	// THEN
	state := loop.State()
	assert.Equal(t, 0.0, state.AccumulatedError)
	assert.Equal(t, 0.0, state.LastError)
	assert.Equal(t, 5.0, state.Target)
}
