package control_loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func createTbhLoop() *TbhLoop {
	return NewTbhLoop(0.0001, 3000, 750, 1)
}

func TestTbhLoop_ZeroSetpointStops(t *testing.T) {
	// GIVEN
	loop := createTbhLoop()
	loop.Target(2500)
	loop.Update(0)
	loop.Update(2000)

	// WHEN
	loop.Target(0)
	output := loop.Update(2000)

	// THEN
	assert.Equal(t, 0.0, output)
	assert.Equal(t, 0.0, loop.State().Integral)
}

func TestTbhLoop_BangBangDominance(t *testing.T) {
	// GIVEN
	loop := createTbhLoop()
	loop.Target(2500)

	// WHEN
	output := loop.Update(0)

	// THEN
	assert.Equal(t, MaxTbhOutput, output)
	assert.Equal(t, 1.0, loop.State().Integral)

	// WHEN
	loop.Target(500)
	output = loop.Update(2500)

	// THEN
	assert.Equal(t, -MaxTbhOutput, output)
	assert.Equal(t, -1.0, loop.State().Integral)
}

func TestTbhLoop_SpinUpThenSettle(t *testing.T) {
	// GIVEN
	loop := createTbhLoop()
	loop.Target(2500)

	// WHEN
	output := loop.Update(0)

	// THEN
	assert.Equal(t, MaxTbhOutput, output)

	// WHEN
	output = loop.Update(2000)

	// THEN
	// integral path: reseeded integral plus gain * error, clamped to 1
	assert.Equal(t, 1.0, output)

	// WHEN
	output = loop.Update(2600)

	// THEN
	// error changed sign: take back half towards the seeded tbh of 2*2500/3000-1
	integral := 1.0 + 0.0001*-100
	expectedTbh := 0.5 * (integral + (2*2500.0/3000.0 - 1))
	assert.InDelta(t, expectedTbh, output, 0.000001)
	assert.InDelta(t, expectedTbh, loop.State().Tbh, 0.000001)
}

func TestTbhLoop_SignFlipDamping(t *testing.T) {
	// GIVEN
	loop := createTbhLoop()
	loop.Target(1500)
	loop.Update(1000)
	loop.Update(1400)
	before := loop.State()

	// WHEN
	loop.Update(1600)

	// THEN
	after := loop.State()
	integral := before.Integral + 0.0001*-100
	assert.InDelta(t, 0.5*(integral+before.Tbh), after.Tbh, 0.000001)
	assert.Equal(t, after.Tbh, after.Integral)
}

func TestTbhLoop_TargetSeedsTbh(t *testing.T) {
	// GIVEN
	loop := createTbhLoop()

	// WHEN
	loop.Target(1500)

	// THEN
	state := loop.State()
	assert.Equal(t, 0.0, state.Tbh)
	assert.Equal(t, 1.0, state.LastError)

	// WHEN
	loop.Target(750)

	// THEN
	state = loop.State()
	assert.Equal(t, -0.5, state.Tbh)
	assert.Equal(t, -1.0, state.LastError)
}

func TestTbhLoop_TargetSameSetpointIsNoop(t *testing.T) {
	// GIVEN
	loop := createTbhLoop()
	loop.Target(1500)
	loop.Update(1000)
	loop.Update(1600)
	before := loop.State()

	// WHEN
	loop.Target(1500)

	// THEN
	assert.Equal(t, before, loop.State())
}

func TestTbhLoop_IntegralIsBounded(t *testing.T) {
	// GIVEN
	loop := NewTbhLoop(0.01, 3000, 750, 1)
	loop.Target(3000)

	// WHEN
	var output float64
	for i := 0; i < 100; i++ {
		output = loop.Update(2500)
	}

	// THEN
	assert.Equal(t, MaxTbhOutput, output)
}
