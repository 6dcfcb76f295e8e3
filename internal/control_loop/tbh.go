package control_loop

import (
	"github.com/flagbot/flagbot/internal/util"
)

// MaxTbhOutput is the magnitude of a fully saturated TbhLoop output
const MaxTbhOutput = 1.0

type TbhState struct {
	Setpoint  float64 `json:"setpoint"`
	Process   float64 `json:"process"`
	Error     float64 `json:"error"`
	LastError float64 `json:"lastError"`
	Tbh       float64 `json:"tbh"`
	Integral  float64 `json:"integral"`
	Output    float64 `json:"output"`
}

// TbhLoop is a take-back-half velocity controller with a bang-bang
// fallback for large errors. Output is normalized to [-1, 1].
type TbhLoop struct {
	gain    float64
	maxRate float64
	// errors above this magnitude bypass the integrator
	bangBangThreshold float64
	// integral magnitude set while in bang-bang mode
	reseed float64

	setpoint  float64
	process   float64
	err       float64
	lastError float64
	tbh       float64
	integral  float64
	output    float64
}

func NewTbhLoop(gain float64, maxRate float64, bangBangThreshold float64, reseed float64) *TbhLoop {
	return &TbhLoop{
		gain:              gain,
		maxRate:           maxRate,
		bangBangThreshold: bangBangThreshold,
		reseed:            reseed,
		lastError:         1,
	}
}

// Target changes the setpoint and seeds the take-back value for it
func (l *TbhLoop) Target(setpoint float64) {
	if setpoint == l.setpoint {
		return
	}

	if setpoint > l.setpoint {
		l.lastError = 1
	} else {
		l.lastError = -1
	}

	l.tbh = (2 * setpoint / l.maxRate) - 1
	l.setpoint = setpoint
}

// Update runs a single controller step with the given process value
func (l *TbhLoop) Update(process float64) float64 {
	l.process = process

	if l.setpoint == 0 {
		l.err = 0
		l.output = 0
		l.integral = 0
		return l.output
	}

	l.err = l.setpoint - l.process

	if util.Abs(l.err) > l.bangBangThreshold {
		direction := util.Sign(l.err)
		l.output = direction * MaxTbhOutput
		l.integral = direction * l.reseed
		l.lastError = l.err
		return l.output
	}

	l.integral = util.Coerce(l.integral+l.gain*l.err, -MaxTbhOutput, MaxTbhOutput)

	if util.Sign(l.err) != util.Sign(l.lastError) {
		l.integral = 0.5 * (l.integral + l.tbh)
		l.tbh = l.integral
	}

	l.output = l.integral
	l.lastError = l.err
	return l.output
}

func (l *TbhLoop) Cycle(target float64, measured float64) float64 {
	l.Target(target)
	return l.Update(measured)
}

func (l *TbhLoop) Reset() {
	l.setpoint = 0
	l.process = 0
	l.err = 0
	l.lastError = 1
	l.tbh = 0
	l.integral = 0
	l.output = 0
}

func (l *TbhLoop) Setpoint() float64 {
	return l.setpoint
}

func (l *TbhLoop) Error() float64 {
	return l.err
}

func (l *TbhLoop) Output() float64 {
	return l.output
}

func (l *TbhLoop) State() TbhState {
	return TbhState{
		Setpoint:  l.setpoint,
		Process:   l.process,
		Error:     l.err,
		LastError: l.lastError,
		Tbh:       l.tbh,
		Integral:  l.integral,
		Output:    l.output,
	}
}
