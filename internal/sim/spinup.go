package sim

import (
	"context"
	"time"

	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/robot"
)

// SpinUpResult is the recorded response of the simulated flywheel to a setpoint step
type SpinUpResult struct {
	Setpoint float64
	// Samples holds the measured rpm of every tick
	Samples []float64
	// LockedAfter is the time until the flywheel first counted as locked, -1 if it never did
	LockedAfter time.Duration
	Final       robot.State
}

// SpinUp runs the flywheel of a simulated robot towards rpm for the given duration
func SpinUp(ctx context.Context, config configuration.Configuration, rpm float64, duration time.Duration) (SpinUpResult, error) {
	result := SpinUpResult{Setpoint: rpm, LockedAfter: -1}

	r, _, err := NewRobot(config, robot.NewManualClock())
	if err != nil {
		return result, err
	}

	ticks := int(duration / config.TickRate)
	for i := 0; i < ticks; i++ {
		err := r.Tick(ctx, func(state *robot.State) {
			state.FlywheelSetpoint = rpm
		})
		if err != nil {
			return result, err
		}

		state := r.State()
		result.Samples = append(result.Samples, state.FlywheelRate)
		if state.FlywheelLocked && result.LockedAfter < 0 {
			result.LockedAfter = time.Duration(i+1) * config.TickRate
		}
	}
	result.Final = r.State()
	return result, nil
}
