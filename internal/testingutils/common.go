package testingutils

import (
	"time"

	"github.com/flagbot/flagbot/internal/configuration"
)

// CreateConfig returns a complete configuration running against the simulator
// with the default channels, mapping and routines
func CreateConfig() configuration.Configuration {
	return configuration.Configuration{
		TickRate: 20 * time.Millisecond,
		Channels: configuration.DefaultChannels(),
		Mapping:  configuration.DefaultMapping(),
		Sensors:  configuration.DefaultSimSensors(),
		Sink:     configuration.SinkConfig{Type: configuration.SinkTypeSim},
		Flywheel: configuration.FlywheelConfig{
			Gain:               0.00005,
			MaxRpm:             3200,
			GearRatio:          1,
			TicksPerRevolution: 360,
			Smoothing:          true,
			BangBangThreshold:  750,
			Reseed:             1,
			LockThreshold:      100,
			LockWindow:         5,
		},
		Drive: configuration.MotionConfig{
			P:                 0.5,
			DriftCompensation: 600,
			Tolerance:         50,
			MaxPower:          127,
			BrakePower:        60,
			BrakeDuration:     100 * time.Millisecond,
			MaxDuration:       5 * time.Second,
			ResetOnConfigure:  true,
		},
		Turn: configuration.MotionConfig{
			P:                4,
			Tolerance:        5,
			MaxPower:         70,
			BrakePower:       30,
			BrakeDuration:    60 * time.Millisecond,
			MaxDuration:      3 * time.Second,
			ResetOnConfigure: true,
		},
		FireControl: configuration.FireControlConfig{
			ResetDelay:            2 * time.Second,
			QueueTimeout:          1 * time.Second,
			FireTimeout:           3 * time.Second,
			ClearOn:               configuration.ClearOnSensor,
			FlywheelDropThreshold: 150,
		},
		Match: configuration.MatchConfig{
			Alliance: configuration.AllianceBlue,
			Routine:  configuration.DefaultRoutineId,
		},
		Routines: configuration.DefaultRoutines(),
		Sim:      configuration.DefaultSimConfig(),
	}
}
