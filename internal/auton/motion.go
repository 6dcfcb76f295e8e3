package auton

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/control_loop"
	"github.com/flagbot/flagbot/internal/robot"
	"github.com/flagbot/flagbot/internal/ui"
	"github.com/flagbot/flagbot/internal/util"
)

var ErrNotConverged = errors.New("did not converge")

// Result describes how a blocking primitive ended
type Result struct {
	Converged bool `json:"converged"`
	Ticks     int  `json:"ticks"`
	// Final is the remaining error when the primitive returned
	Final float64 `json:"final"`
}

// Motion implements the blocking drive and turn primitives
type Motion struct {
	executor *Executor

	drive configuration.MotionConfig
	turn  configuration.MotionConfig

	drivePid *control_loop.PidLoop
	turnPid  *control_loop.PidLoop
}

func NewMotion(executor *Executor, drive configuration.MotionConfig, turn configuration.MotionConfig) *Motion {
	return &Motion{
		executor: executor,
		drive:    drive,
		turn:     turn,
		drivePid: control_loop.NewPidLoop(drive.P, drive.I, drive.D),
		turnPid:  control_loop.NewPidLoop(turn.P, turn.I, turn.D),
	}
}

// Drive moves the robot straight by distance encoder ticks (negative for backwards)
func (m *Motion) Drive(ctx context.Context, distance float64) (Result, error) {
	config := m.drive
	pid := m.drivePid
	configure(pid, config)

	// the robot coasts by roughly the drift after the loop has ended
	target := distance
	if util.Abs(distance) > config.DriftCompensation {
		target = distance - util.Sign(distance)*config.DriftCompensation
	}
	pid.SetTarget(target)

	m.executor.Robot().ResetDrive()
	ui.Debug("Drive: distance %.0f, target %.0f", distance, target)

	converged, ticks, err := m.executor.TickUntil(ctx, config.MaxDuration,
		func(state *robot.State) {
			pid.SetMeasured(state.Sensors.DrivePosition())
			output := clampPower(pid.Step(), config.MaxPower)
			state.SetDrive(output, output)
		},
		func(state robot.State) bool {
			return util.Abs(target-state.Sensors.DrivePosition()) <= config.Tolerance
		},
	)
	result := Result{Converged: converged, Ticks: ticks, Final: pid.Error()}
	if err != nil {
		return result, err
	}

	brake := -int(util.Sign(distance)) * config.BrakePower
	err = m.brake(ctx, config.BrakeDuration, brake, brake)
	if err != nil {
		return result, err
	}

	if !converged {
		return result, fmt.Errorf("drive %.0f: %w (error %.1f after %d ticks)", distance, ErrNotConverged, result.Final, ticks)
	}
	ui.Debug("Drive: converged after %d ticks, error %.1f", ticks, result.Final)
	return result, nil
}

// Turn rotates the robot in place until it faces heading (degrees)
func (m *Motion) Turn(ctx context.Context, heading float64) (Result, error) {
	config := m.turn
	pid := m.turnPid
	configure(pid, config)
	pid.SetTarget(heading)

	ui.Debug("Turn: heading %.1f", heading)

	lastOutput := 0
	converged, ticks, err := m.executor.TickUntil(ctx, config.MaxDuration,
		func(state *robot.State) {
			pid.SetMeasured(state.Sensors.Heading)
			output := clampPower(pid.Step(), config.MaxPower)
			state.SetDrive(-output, output)
			lastOutput = output
		},
		func(state robot.State) bool {
			return util.Abs(heading-state.Sensors.Heading) <= config.Tolerance
		},
	)
	result := Result{Converged: converged, Ticks: ticks, Final: pid.Error()}
	if err != nil {
		return result, err
	}

	direction := util.Sign(lastOutput)
	err = m.brake(ctx, config.BrakeDuration, direction*config.BrakePower, -direction*config.BrakePower)
	if err != nil {
		return result, err
	}

	if !converged {
		return result, fmt.Errorf("turn %.1f: %w (error %.1f after %d ticks)", heading, ErrNotConverged, result.Final, ticks)
	}
	ui.Debug("Turn: converged after %d ticks, error %.1f", ticks, result.Final)
	return result, nil
}

// Power applies a raw drive power for d, then stops the drive
func (m *Motion) Power(ctx context.Context, left int, right int, d time.Duration) error {
	err := m.executor.Hold(ctx, d, func(state *robot.State) {
		state.SetDrive(left, right)
	})
	if err != nil {
		return err
	}
	return m.executor.Tick(ctx, func(state *robot.State) {
		state.SetDrive(0, 0)
	})
}

// brake applies a short counter pulse and stops the drive afterwards
func (m *Motion) brake(ctx context.Context, d time.Duration, left int, right int) error {
	return m.Power(ctx, left, right, d)
}

func configure(pid *control_loop.PidLoop, config configuration.MotionConfig) {
	if config.ResetOnConfigure {
		pid.Reset()
	}
	pid.Configure(config.P, config.I, config.D)
}

func clampPower(output float64, maxPower int) int {
	return int(util.Coerce(output, -float64(maxPower), float64(maxPower)))
}
