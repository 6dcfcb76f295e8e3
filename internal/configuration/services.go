package configuration

import "time"

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

// SimConfig holds the constants of the simulated plant
type SimConfig struct {
	// DriveTicksPerSecond is the encoder speed of a drive side at full power
	DriveTicksPerSecond float64 `json:"driveTicksPerSecond"`
	// TurnDecidegreesPerSecond is the gyro rate of an in-place turn at full power
	TurnDecidegreesPerSecond float64 `json:"turnDecidegreesPerSecond"`
	// DriveResponse is the fraction of the speed difference closed per tick
	DriveResponse        float64       `json:"driveResponse"`
	FlywheelTimeConstant time.Duration `json:"flywheelTimeConstant"`
	LoadDuration         time.Duration `json:"loadDuration"`
	EjectDuration        time.Duration `json:"ejectDuration"`
	MinFireRpm           float64       `json:"minFireRpm"`
	Balls                int           `json:"balls"`
	Preloaded            bool          `json:"preloaded"`
}

func DefaultSimConfig() SimConfig {
	return SimConfig{
		DriveTicksPerSecond:      2400,
		TurnDecidegreesPerSecond: 1800,
		DriveResponse:            0.3,
		FlywheelTimeConstant:     400 * time.Millisecond,
		LoadDuration:             300 * time.Millisecond,
		EjectDuration:            100 * time.Millisecond,
		MinFireRpm:               500,
		Balls:                    4,
		Preloaded:                true,
	}
}
