package robot

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/flagbot/flagbot/internal/actuators"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/control_loop"
	"github.com/flagbot/flagbot/internal/firecontrol"
	"github.com/flagbot/flagbot/internal/sensors"
	"github.com/flagbot/flagbot/internal/ui"
	"github.com/flagbot/flagbot/internal/util"
)

const sinkErrorWindowSize = 50

// StepFunc is called once per tick, after the sensors have been read and
// before any controller runs. It may change the intents of the state.
type StepFunc func(state *State)

// Robot runs the control tick: sense, step, control, actuate
type Robot struct {
	tickRate time.Duration
	mapping  configuration.MappingConfig
	flywheel configuration.FlywheelConfig

	clock Clock
	feed  *sensors.Feed
	bank  *actuators.Bank
	sink  actuators.Sink

	velocity *control_loop.VelocityEstimator
	tbh      *control_loop.TbhLoop
	fire     *firecontrol.Machine

	lockWindow       *rolling.PointPolicy
	lastSetpoint     float64
	sinkErrorsWindow *rolling.PointPolicy

	state State

	mu        sync.RWMutex
	published State
}

func New(
	config configuration.Configuration,
	clock Clock,
	feed *sensors.Feed,
	bank *actuators.Bank,
	sink actuators.Sink,
) *Robot {
	flywheel := config.Flywheel

	lockWindow := util.CreateRollingWindow(flywheel.LockWindow)
	util.FillWindow(lockWindow, flywheel.LockWindow, math.Inf(1))

	return &Robot{
		tickRate: config.TickRate,
		mapping:  config.Mapping,
		flywheel: flywheel,
		clock:    clock,
		feed:     feed,
		bank:     bank,
		sink:     sink,
		velocity: control_loop.NewVelocityEstimator(flywheel.GearRatio, flywheel.TicksPerRevolution, flywheel.Smoothing),
		tbh:      control_loop.NewTbhLoop(flywheel.Gain, flywheel.MaxRpm, flywheel.BangBangThreshold, flywheel.Reseed),
		fire:     firecontrol.NewMachine(config.FireControl),

		lockWindow:       lockWindow,
		sinkErrorsWindow: util.CreateRollingWindow(sinkErrorWindowSize),

		state: State{
			Indexer: configuration.ModeStop,
			Intake:  configuration.ModeStop,
		},
	}
}

// Tick runs a single control tick and then sleeps for the tick rate
func (r *Robot) Tick(ctx context.Context, step StepFunc) error {
	nowMs := r.clock.NowMs()
	state := &r.state

	state.Tick++
	state.Sensors = r.feed.Read(nowMs)

	if step != nil {
		step(state)
	}

	r.stepFlywheel(nowMs, state)

	out := r.fire.Step(firecontrol.Inputs{
		NowMs:          nowMs,
		BallLoaded:     state.Sensors.BallLoaded,
		FlywheelError:  state.FlywheelError,
		FlywheelLocked: state.FlywheelLocked,
	})
	state.Indexer = out.Indexer
	state.Intake = out.Intake
	state.Fire = r.fire.State()

	applyTargets(r.bank, mapOutputs(r.mapping, state))
	commands := r.bank.Resolve()
	r.write(ctx, commands)

	state.Channels = r.channelStates()
	r.publish()

	return r.clock.Sleep(ctx, r.tickRate)
}

func (r *Robot) stepFlywheel(nowMs int64, state *State) {
	// a stale encoder value would read as a stopped wheel
	rate := r.velocity.Rate()
	if !state.Sensors.FlywheelStale {
		rate = r.velocity.Sample(nowMs, state.Sensors.FlywheelTicks)
	}

	if state.FlywheelSetpoint != r.lastSetpoint {
		util.FillWindow(r.lockWindow, r.flywheel.LockWindow, math.Inf(1))
		r.lastSetpoint = state.FlywheelSetpoint
	}

	r.tbh.Target(state.FlywheelSetpoint)
	r.tbh.Update(rate)

	state.FlywheelRate = rate
	state.FlywheelError = state.FlywheelSetpoint - rate
	state.Flywheel = r.tbh.State()

	r.lockWindow.Append(util.Abs(state.FlywheelError))
	state.FlywheelLocked = state.FlywheelSetpoint != 0 &&
		util.GetWindowMax(r.lockWindow) <= r.flywheel.LockThreshold
}

func (r *Robot) write(ctx context.Context, commands []actuators.Command) {
	err := r.sink.Write(ctx, commands)
	if err != nil {
		ui.Warning("Error writing to %s sink: %v", r.sink.GetType(), err)
		r.sinkErrorsWindow.Append(1)
	} else {
		r.sinkErrorsWindow.Append(0)
	}
	r.state.SinkErrorRate = util.GetWindowSum(r.sinkErrorsWindow) / sinkErrorWindowSize
}

func (r *Robot) channelStates() []ChannelState {
	channels := r.bank.GetChannels()
	result := make([]ChannelState, 0, len(channels))
	for _, channel := range channels {
		result = append(result, ChannelState{
			Id:        channel.GetId(),
			Name:      channel.GetName(),
			Target:    channel.GetTarget(),
			Commanded: channel.GetLastCommanded(),
			Output:    channel.Output(),
		})
	}
	return result
}

func (r *Robot) publish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = r.state
}

// Snapshot returns the state published by the last completed tick
func (r *Robot) Snapshot() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.published
}

// State returns the current state, only to be used from the goroutine running Tick
func (r *Robot) State() State {
	return r.state
}

func (r *Robot) Fire() *firecontrol.Machine {
	return r.fire
}

// Sensors returns the sensors read by every tick
func (r *Robot) Sensors() []sensors.Sensor {
	return r.feed.GetSensors()
}

// ResetDrive zeroes the drive encoders
func (r *Robot) ResetDrive() {
	r.feed.ResetDrive()
}

func (r *Robot) TickRate() time.Duration {
	return r.tickRate
}

func (r *Robot) Clock() Clock {
	return r.clock
}

// Stop clears all intents, outputs ramp down over the next ticks
func (r *Robot) Stop() {
	r.state.SetDrive(0, 0)
	r.state.FlywheelSetpoint = 0
	r.fire.Cancel()
}

// Close writes a zero command to every channel and closes the sink.
// Slew limits are bypassed, the actuators stop immediately.
func (r *Robot) Close() error {
	r.bank.Stop()
	channels := r.bank.GetChannels()
	commands := make([]actuators.Command, 0, len(channels))
	for _, channel := range channels {
		commands = append(commands, actuators.Command{Channel: channel.GetId()})
	}
	err := r.sink.Write(context.Background(), commands)
	if err != nil {
		ui.Warning("Unable to stop actuators: %v", err)
	}
	return errors.Join(err, r.sink.Close())
}
