package control_loop

import (
	"github.com/flagbot/flagbot/internal/util"
)

const (
	millisPerSecond  = 1000.0
	secondsPerMinute = 60.0
)

// VelocityEstimator derives a rotational rate (RPM) from successive encoder samples
type VelocityEstimator struct {
	gearRatio          float64
	ticksPerRevolution float64
	smoothing          bool

	initialized      bool
	lastSampleTimeMs int64
	lastEncoderTicks float64

	rate float64
}

func NewVelocityEstimator(gearRatio float64, ticksPerRevolution float64, smoothing bool) *VelocityEstimator {
	return &VelocityEstimator{
		gearRatio:          gearRatio,
		ticksPerRevolution: ticksPerRevolution,
		smoothing:          smoothing,
	}
}

// Sample updates the rate with the encoder value read at nowMs.
// The first sample only establishes a baseline, samples without elapsed time are ignored.
func (v *VelocityEstimator) Sample(nowMs int64, encoderTicks float64) float64 {
	if !v.initialized {
		v.initialized = true
		v.lastSampleTimeMs = nowMs
		v.lastEncoderTicks = encoderTicks
		return v.rate
	}

	deltaTime := nowMs - v.lastSampleTimeMs
	if deltaTime <= 0 {
		return v.rate
	}
	deltaTicks := encoderTicks - v.lastEncoderTicks

	v.lastSampleTimeMs = nowMs
	v.lastEncoderTicks = encoderTicks

	current := (deltaTicks / float64(deltaTime)) * millisPerSecond * v.gearRatio / v.ticksPerRevolution * secondsPerMinute
	if v.smoothing {
		v.rate = util.SmoothThirds(v.rate, current)
	} else {
		v.rate = current
	}
	return v.rate
}

func (v *VelocityEstimator) Rate() float64 {
	return v.rate
}

func (v *VelocityEstimator) Reset() {
	v.initialized = false
	v.lastSampleTimeMs = 0
	v.lastEncoderTicks = 0
	v.rate = 0
}
