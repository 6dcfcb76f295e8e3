package sim

import (
	"context"
	"testing"
	"time"

	"github.com/flagbot/flagbot/internal/actuators"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/robot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createConfig() configuration.Configuration {
	return configuration.Configuration{
		TickRate: 20 * time.Millisecond,
		Channels: configuration.DefaultChannels(),
		Mapping:  configuration.DefaultMapping(),
		Sensors:  configuration.DefaultSimSensors(),
		Flywheel: configuration.FlywheelConfig{
			Gain:               0.00005,
			MaxRpm:             3200,
			GearRatio:          1,
			TicksPerRevolution: 360,
			BangBangThreshold:  750,
			Reseed:             1,
			LockThreshold:      100,
			LockWindow:         5,
		},
		FireControl: configuration.FireControlConfig{
			ResetDelay:   2 * time.Second,
			QueueTimeout: 1 * time.Second,
			ClearOn:      configuration.ClearOnSensor,
		},
		Sim: configuration.DefaultSimConfig(),
	}
}

func drive(left int, right int) []actuators.Command {
	mapping := configuration.DefaultMapping()
	return []actuators.Command{
		{Channel: mapping.FrontLeft, Value: left},
		{Channel: mapping.BackLeft, Value: left},
		{Channel: mapping.FrontRight, Value: right},
		{Channel: mapping.BackRight, Value: right},
	}
}

func TestPlant_DriveForward(t *testing.T) {
	// GIVEN
	plant := NewPlant(createConfig())
	plant.Apply(drive(127, 127))

	// WHEN
	for i := 0; i < 50; i++ {
		plant.Advance(20 * time.Millisecond)
	}

	// THEN
	state := plant.State()
	assert.Greater(t, state.LeftPosition, 0.0)
	assert.InDelta(t, state.LeftPosition, state.RightPosition, 0.000001)
	assert.InDelta(t, 0.0, state.Heading, 0.000001)
}

func TestPlant_TurnInPlace(t *testing.T) {
	// GIVEN
	plant := NewPlant(createConfig())
	plant.Apply(drive(-64, 64))

	// WHEN
	for i := 0; i < 50; i++ {
		plant.Advance(20 * time.Millisecond)
	}

	// THEN
	state := plant.State()
	assert.Greater(t, state.Heading, 0.0)
	assert.InDelta(t, -state.LeftPosition, state.RightPosition, 0.000001)
}

func TestPlant_FlywheelApproachesPower(t *testing.T) {
	// GIVEN
	plant := NewPlant(createConfig())
	plant.Apply([]actuators.Command{
		{Channel: 1, Value: 127},
		{Channel: 8, Value: 127},
	})

	// WHEN
	for i := 0; i < 500; i++ {
		plant.Advance(20 * time.Millisecond)
	}

	// THEN
	assert.InDelta(t, 3200.0, plant.State().FlywheelRpm, 1)
	assert.Greater(t, plant.ReadRole(configuration.RoleFlywheel), 0.0)
}

func TestPlant_ReversedChannels(t *testing.T) {
	// GIVEN
	config := createConfig()
	config.Sim.Preloaded = false
	plant := NewPlant(config)
	// intake (5) and uptake (0) are mounted reversed
	plant.Apply([]actuators.Command{
		{Channel: 5, Value: -127},
		{Channel: 0, Value: -127},
	})

	// WHEN
	for i := 0; i < 20; i++ {
		plant.Advance(20 * time.Millisecond)
	}

	// THEN
	state := plant.State()
	assert.True(t, state.Loaded)
	assert.Equal(t, 3, state.Balls)
	assert.Equal(t, 1.0, plant.ReadRole(configuration.RoleBallLoaded))
}

func TestPlant_BallJamsOnSlowFlywheel(t *testing.T) {
	// GIVEN
	plant := NewPlant(createConfig())
	plant.Apply([]actuators.Command{
		{Channel: 0, Value: -127},
	})

	// WHEN
	for i := 0; i < 20; i++ {
		plant.Advance(20 * time.Millisecond)
	}

	// THEN
	state := plant.State()
	assert.True(t, state.Loaded)
	assert.Equal(t, 0, state.Shots)
}

func TestSensorConfigs_KeepScale(t *testing.T) {
	// GIVEN
	configured := []configuration.SensorConfig{
		{ID: "gyro", Role: configuration.RoleHeading, Scale: 0.2, File: &configuration.FileSensorConfig{Path: "/dev/null"}},
	}

	// WHEN
	result := SensorConfigs(configured)

	// THEN
	require.Len(t, result, len(configuration.SensorRoles))
	heading := result[2]
	assert.Equal(t, "gyro", heading.ID)
	assert.Equal(t, 0.2, heading.Scale)
	assert.NotNil(t, heading.Sim)
	assert.Nil(t, heading.File)
}

func TestNewRobot_SingleShot(t *testing.T) {
	// GIVEN
	config := createConfig()
	r, plant, err := NewRobot(config, robot.NewManualClock())
	require.NoError(t, err)
	ctx := context.Background()
	spinUp := func(state *robot.State) {
		state.FlywheelSetpoint = 2400
	}

	// WHEN
	for i := 0; i < 200 && !r.State().FlywheelLocked; i++ {
		require.NoError(t, r.Tick(ctx, spinUp))
	}
	r.Fire().RequestFire()
	for i := 0; i < 100 && r.Fire().Busy(); i++ {
		require.NoError(t, r.Tick(ctx, spinUp))
	}

	// THEN
	assert.False(t, r.Fire().Busy())
	assert.Equal(t, 1, plant.State().Shots)
}
