package auton

import (
	"context"
	"time"

	"github.com/flagbot/flagbot/internal/firecontrol"
	"github.com/flagbot/flagbot/internal/robot"
)

// Robot is the part of the robot the autonomous primitives need
type Robot interface {
	Tick(ctx context.Context, step robot.StepFunc) error
	State() robot.State
	ResetDrive()
	Stop()
	Fire() *firecontrol.Machine
	TickRate() time.Duration
	Clock() robot.Clock
}

// Executor drives the robot tick by tick on behalf of a blocking caller.
// Changes registered with Do are applied at the start of the next tick.
type Executor struct {
	robot   Robot
	pending []robot.StepFunc
}

func NewExecutor(r Robot) *Executor {
	return &Executor{robot: r}
}

// Do queues a change of the robot state for the next tick
func (e *Executor) Do(step robot.StepFunc) {
	e.pending = append(e.pending, step)
}

// Tick runs a single tick, applying all queued changes before step
func (e *Executor) Tick(ctx context.Context, step robot.StepFunc) error {
	pending := e.pending
	e.pending = nil
	return e.robot.Tick(ctx, func(state *robot.State) {
		for _, p := range pending {
			p(state)
		}
		if step != nil {
			step(state)
		}
	})
}

// Flush runs one more tick if changes are still queued
func (e *Executor) Flush(ctx context.Context) error {
	if len(e.pending) == 0 {
		return nil
	}
	return e.Tick(ctx, nil)
}

func (e *Executor) Robot() Robot {
	return e.robot
}

func (e *Executor) NowMs() int64 {
	return e.robot.Clock().NowMs()
}

// TickUntil ticks until done returns true after a tick, or until timeout elapsed.
// At least one tick is run, a timeout of 0 never expires.
func (e *Executor) TickUntil(ctx context.Context, timeout time.Duration, step robot.StepFunc, done func(state robot.State) bool) (bool, int, error) {
	start := e.NowMs()
	ticks := 0
	for {
		if err := e.Tick(ctx, step); err != nil {
			return false, ticks, err
		}
		ticks++
		if done(e.robot.State()) {
			return true, ticks, nil
		}
		if timeout > 0 && e.NowMs()-start >= timeout.Milliseconds() {
			return false, ticks, nil
		}
	}
}

// Hold keeps ticking for d with step applied on every tick
func (e *Executor) Hold(ctx context.Context, d time.Duration, step robot.StepFunc) error {
	start := e.NowMs()
	for e.NowMs()-start < d.Milliseconds() {
		if err := e.Tick(ctx, step); err != nil {
			return err
		}
	}
	return nil
}
