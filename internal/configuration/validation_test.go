package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func createValidConfig() Configuration {
	motion := MotionConfig{
		P:           0.5,
		Tolerance:   50,
		MaxPower:    127,
		MaxDuration: 5 * time.Second,
	}
	return Configuration{
		TickRate: 20 * time.Millisecond,
		Channels: DefaultChannels(),
		Mapping:  DefaultMapping(),
		Sensors:  DefaultSimSensors(),
		Sink: SinkConfig{
			Type: SinkTypeSim,
		},
		Flywheel: FlywheelConfig{
			Gain:               0.00005,
			MaxRpm:             3200,
			GearRatio:          1,
			TicksPerRevolution: 360,
			BangBangThreshold:  750,
			Reseed:             1,
			LockThreshold:      100,
			LockWindow:         5,
		},
		Drive:    motion,
		Turn:     motion,
		Routines: DefaultRoutines(),
		Match: MatchConfig{
			Alliance: AllianceBlue,
			Routine:  DefaultRoutineId,
		},
	}
}

func TestValidateDefaultConfig(t *testing.T) {
	// GIVEN
	config := createValidConfig()

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateTickRate(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.TickRate = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "tickRate must be > 0")
}

func TestValidateDuplicateChannelId(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Channels = append(config.Channels, ChannelConfig{Id: 3, Name: "Other", SlewRate: 10})

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "duplicate channel id detected: 3")
}

func TestValidateChannelIdOutOfRange(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Channels[9].Id = 10

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "channel 10: id must be in [0..9]")
}

func TestValidateChannelSlewRate(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Channels[4].SlewRate = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "channel 4: slewRate must be > 0")
}

func TestValidateMappingUnknownChannel(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Channels = config.Channels[:9]
	config.Mapping.Indexer = 9

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "mapping indexer: no channel definition with id 9 found")
}

func TestValidateMappingWithoutFlywheel(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Mapping.Flywheel = nil

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "mapping flywheel: at least one channel is required")
}

func TestValidateSensorSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors[0].Sim = nil

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "sensor left_drive: sub-configuration for sensor is missing, use one of: file | sim")
}

func TestValidateSensorWithMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors[1].File = &FileSensorConfig{Path: "/tmp/right"}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "sensor right_drive: only one sensor type can be used per sensor definition block")
}

func TestValidateSensorDuplicateRole(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors[1].Role = RoleLeftDrive

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "sensor right_drive: role 'leftDrive' is already provided by sensor left_drive")
}

func TestValidateSensorRoleMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensors = config.Sensors[:4]

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "no sensor provides role 'ballLoaded'")
}

func TestValidateFileSinkWithoutDirectory(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sink = SinkConfig{Type: SinkTypeFile}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "sink file: missing directory")
}

func TestValidateUnknownSinkType(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sink = SinkConfig{Type: "pwm"}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "unsupported sink type 'pwm', use one of: sim | file | serial | can")
}

func TestValidateFlywheelMaxRpm(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Flywheel.MaxRpm = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "flywheel: maxRpm must be > 0")
}

func TestValidateMotionWithZeroGains(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Turn.P = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "turn: all PID constants are zero")
}

func TestValidateRoutineSelfReference(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Routines = append(config.Routines, RoutineConfig{
		ID: "loop",
		Steps: []StepConfig{
			{Kind: StepRoutine, Routine: "loop"},
		},
	})

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "routine loop: a routine cannot reference itself")
}

func TestValidateRoutineCycle(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Routines = append(config.Routines,
		RoutineConfig{
			ID:    "a",
			Steps: []StepConfig{{Kind: StepRoutine, Routine: "b"}},
		},
		RoutineConfig{
			ID:    "b",
			Steps: []StepConfig{{Kind: StepRoutine, Routine: "a"}},
		},
	)

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.ErrorContains(t, err, "you have created a routine dependency cycle")
}

func TestValidateRoutineUnknownReference(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Routines = append(config.Routines, RoutineConfig{
		ID:    "outer",
		Steps: []StepConfig{{Kind: StepRoutine, Routine: "missing"}},
	})

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "routine outer: no routine definition with id 'missing' found")
}

func TestValidateRoutineWaitWithoutDuration(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Routines = append(config.Routines, RoutineConfig{
		ID:    "pause",
		Steps: []StepConfig{{Kind: StepWait}},
	})

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "routine pause, step 0: wait requires a duration")
}

func TestValidateRoutineUnknownStepKind(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Routines = append(config.Routines, RoutineConfig{
		ID:    "dance",
		Steps: []StepConfig{{Kind: "spin"}},
	})

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "routine dance, step 0: unsupported step kind 'spin'")
}

func TestValidateMatchRoutineNotFound(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Match.Routine = "skills"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "match: no routine definition with id 'skills' found")
}
