package configuration

import (
	"time"
)

type FlywheelConfig struct {
	// Gain is the integral coefficient of the take-back-half controller
	Gain float64 `json:"gain"`
	// MaxRpm is the free spin RPM at full power
	MaxRpm             float64 `json:"maxRpm"`
	GearRatio          float64 `json:"gearRatio"`
	TicksPerRevolution float64 `json:"ticksPerRevolution"`
	Smoothing          bool    `json:"smoothing"`

	BangBangThreshold float64 `json:"bangBangThreshold"`
	Reseed            float64 `json:"reseed"`

	// LockThreshold is the max error (RPM) over LockWindow ticks for the flywheel to count as locked
	LockThreshold float64 `json:"lockThreshold"`
	LockWindow    int     `json:"lockWindow"`
}

// MotionConfig configures one autonomous motion axis (drive or turn)
type MotionConfig struct {
	P float64 `json:"p"`
	I float64 `json:"i"`
	D float64 `json:"d"`

	// DriftCompensation is subtracted from the drive distance in the direction of travel
	DriftCompensation float64 `json:"driftCompensation"`
	Tolerance         float64 `json:"tolerance"`
	MaxPower          int     `json:"maxPower"`

	BrakePower    int           `json:"brakePower"`
	BrakeDuration time.Duration `json:"brakeDuration"`

	// MaxDuration bounds a single motion call, 0 disables the deadline
	MaxDuration time.Duration `json:"maxDuration"`

	// ResetOnConfigure clears accumulated and last error at the start of every motion call
	ResetOnConfigure bool `json:"resetOnConfigure"`
}
