package auton

import (
	"context"
	"fmt"
	"time"

	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/robot"
	"github.com/flagbot/flagbot/internal/ui"
)

// Launcher wraps the flywheel and fire control for autonomous routines
type Launcher struct {
	executor *Executor
	config   configuration.FireControlConfig
}

func NewLauncher(executor *Executor, config configuration.FireControlConfig) *Launcher {
	return &Launcher{
		executor: executor,
		config:   config,
	}
}

// SetFlywheel changes the flywheel setpoint on the next tick
func (l *Launcher) SetFlywheel(rpm float64) {
	l.executor.Do(func(state *robot.State) {
		state.FlywheelSetpoint = rpm
	})
}

// WaitFlywheel blocks until the measured flywheel rate reached rpm.
// An rpm of 0 waits for the current setpoint.
func (l *Launcher) WaitFlywheel(ctx context.Context, rpm float64) (Result, error) {
	var target float64
	converged, ticks, err := l.executor.TickUntil(ctx, l.config.FireTimeout, nil, func(state robot.State) bool {
		target = rpm
		if target == 0 {
			target = state.FlywheelSetpoint
		}
		return state.FlywheelRate >= target
	})
	result := Result{Converged: converged, Ticks: ticks, Final: target - l.executor.Robot().State().FlywheelRate}
	if err != nil {
		return result, err
	}
	if !converged {
		return result, fmt.Errorf("flywheel %.0f rpm: %w", target, ErrNotConverged)
	}
	return result, nil
}

// SetOverride sets the manual indexer override
func (l *Launcher) SetOverride(mode configuration.MotionMode) {
	l.executor.Robot().Fire().SetOverride(mode)
}

// Fire requests a single shot and blocks until it was fired
func (l *Launcher) Fire(ctx context.Context) (Result, error) {
	l.executor.Robot().Fire().RequestFire()
	return l.waitForFireControl(ctx, "fire", l.config.FireTimeout)
}

// DoubleShot requests a double shot and blocks until the sequence has reset
func (l *Launcher) DoubleShot(ctx context.Context) (Result, error) {
	l.executor.Robot().Fire().RequestDoubleShot()
	timeout := l.config.FireTimeout + l.config.QueueTimeout + l.config.ResetDelay
	return l.waitForFireControl(ctx, "double shot", timeout)
}

func (l *Launcher) waitForFireControl(ctx context.Context, name string, timeout time.Duration) (Result, error) {
	machine := l.executor.Robot().Fire()
	converged, ticks, err := l.executor.TickUntil(ctx, timeout, nil, func(state robot.State) bool {
		return !machine.Busy()
	})
	result := Result{Converged: converged, Ticks: ticks}
	if err != nil {
		return result, err
	}
	if !converged {
		ui.Warning("%s did not complete within %s, cancelling", name, timeout)
		machine.Cancel()
		return result, fmt.Errorf("%s: %w", name, ErrNotConverged)
	}
	return result, nil
}

// Wait keeps the robot ticking for d
func (l *Launcher) Wait(ctx context.Context, d time.Duration) error {
	return l.executor.Hold(ctx, d, nil)
}
