package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flagbot/flagbot/internal/auton"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/firecontrol"
	"github.com/flagbot/flagbot/internal/robot"
	"github.com/flagbot/flagbot/internal/ui"
	"github.com/flagbot/flagbot/internal/util"
)

var (
	ErrNotInDriverMode  = errors.New("operator commands are only accepted in driver mode")
	ErrAutonomousActive = errors.New("an autonomous run is already active")
)

type Mode string

const (
	ModeDisabled   Mode = "disabled"
	ModeDriver     Mode = "driver"
	ModeAutonomous Mode = "autonomous"
)

func ParseMode(text string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(text)))
	switch mode {
	case ModeDisabled, ModeDriver, ModeAutonomous:
		return mode, nil
	}
	return "", fmt.Errorf("unknown mode '%s', use one of: disabled | driver | autonomous", text)
}

// RunRecorder stores the result of finished autonomous runs
type RunRecorder interface {
	SaveRun(run auton.RunResult) (uint64, error)
}

type RobotController interface {
	Run(ctx context.Context) error
	RunOnce(ctx context.Context) error

	Mode() Mode
	SetMode(mode Mode) error
	StartAutonomous(match configuration.MatchConfig) error
	LastRun() *auton.RunResult

	Submit(command Command) error
}

type robotController struct {
	robot    auton.Robot
	config   configuration.Configuration
	recorder RunRecorder

	// only used by the goroutine running the loop
	appliedMode Mode

	mu          sync.Mutex
	mode        Mode
	queue       []Command
	match       configuration.MatchConfig
	cancelAuton context.CancelFunc
	lastRun     *auton.RunResult
}

func NewRobotController(r auton.Robot, config configuration.Configuration, recorder RunRecorder) RobotController {
	return &robotController{
		robot:       r,
		config:      config,
		recorder:    recorder,
		appliedMode: ModeDisabled,
		mode:        ModeDisabled,
	}
}

// Run ticks the robot until ctx is done
func (c *robotController) Run(ctx context.Context) error {
	ui.Info("Starting controller loop with a tick rate of %s", c.robot.TickRate())
	for {
		err := c.RunOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// RunOnce runs a single tick, or a complete routine when autonomous mode was requested
func (c *robotController) RunOnce(ctx context.Context) error {
	if c.Mode() == ModeAutonomous {
		return c.runAutonomous(ctx)
	}
	return c.robot.Tick(ctx, c.step)
}

func (c *robotController) step(state *robot.State) {
	c.mu.Lock()
	mode := c.mode
	queue := c.queue
	c.queue = nil
	c.mu.Unlock()

	fire := c.robot.Fire()
	if mode != c.appliedMode {
		ui.Info("Switching from %s to %s mode", c.appliedMode, mode)
		if mode == ModeDisabled {
			fire.Cancel()
		}
		c.appliedMode = mode
	}

	switch mode {
	case ModeDisabled:
		state.SetDrive(0, 0)
		state.FlywheelSetpoint = 0
	case ModeDriver:
		for _, command := range queue {
			command.apply(state, fire)
		}
	}
}

func (c *robotController) runAutonomous(ctx context.Context) error {
	autonCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	match := c.match
	c.cancelAuton = cancel
	c.mu.Unlock()

	c.appliedMode = ModeAutonomous
	runner := auton.NewRunner(c.robot, c.config)
	result, err := runner.Run(autonCtx, match.Routine, match.Alliance)
	// intents of an aborted run must not carry over into driver mode
	c.robot.Stop()

	c.mu.Lock()
	c.cancelAuton = nil
	c.lastRun = &result
	if c.mode == ModeAutonomous {
		c.mode = ModeDisabled
	}
	c.mu.Unlock()

	if c.recorder != nil {
		_, saveErr := c.recorder.SaveRun(result)
		if saveErr != nil {
			ui.Warning("Unable to store autonomous run: %v", saveErr)
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		ui.Warning("Autonomous run of '%s' ended early: %v", match.Routine, err)
	}
	return nil
}

func (c *robotController) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches between disabled and driver mode, an active autonomous run is aborted
func (c *robotController) SetMode(mode Mode) error {
	if mode == ModeAutonomous {
		return errors.New("autonomous mode is entered by starting a routine")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelAuton != nil {
		c.cancelAuton()
	}
	c.mode = mode
	c.queue = nil
	return nil
}

// StartAutonomous requests a run of the routine of the given match,
// it starts with the next iteration of the loop
func (c *robotController) StartAutonomous(match configuration.MatchConfig) error {
	known := false
	for _, routine := range c.config.Routines {
		if routine.ID == match.Routine {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %s", auton.ErrUnknownRoutine, match.Routine)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeAutonomous {
		return ErrAutonomousActive
	}
	c.match = match
	c.mode = ModeAutonomous
	c.queue = nil
	return nil
}

func (c *robotController) LastRun() *auton.RunResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastRun == nil {
		return nil
	}
	result := *c.lastRun
	return &result
}

// Submit queues an operator command, it is applied at the start of the next tick
func (c *robotController) Submit(command Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeDriver {
		return ErrNotInDriverMode
	}
	c.queue = append(c.queue, command)
	return nil
}

// Command is an operator request
type Command struct {
	Name  string
	apply func(state *robot.State, fire *firecontrol.Machine)
}

// DriveCommand mixes joystick axes in [-127, 127] into drive intents
func DriveCommand(forward int, turn int) Command {
	left, right := mixArcade(forward, turn)
	return Command{
		Name: fmt.Sprintf("drive %d/%d", forward, turn),
		apply: func(state *robot.State, fire *firecontrol.Machine) {
			state.SetDrive(left, right)
		},
	}
}

func FlywheelCommand(rpm float64) Command {
	return Command{
		Name: fmt.Sprintf("flywheel %.0f", rpm),
		apply: func(state *robot.State, fire *firecontrol.Machine) {
			state.FlywheelSetpoint = rpm
		},
	}
}

func FireCommand(double bool) Command {
	if double {
		return Command{
			Name: "double shot",
			apply: func(state *robot.State, fire *firecontrol.Machine) {
				fire.RequestDoubleShot()
			},
		}
	}
	return Command{
		Name: "fire",
		apply: func(state *robot.State, fire *firecontrol.Machine) {
			fire.RequestFire()
		},
	}
}

func OverrideCommand(mode configuration.MotionMode) Command {
	return Command{
		Name: fmt.Sprintf("override %s", mode),
		apply: func(state *robot.State, fire *firecontrol.Machine) {
			fire.SetOverride(mode)
		},
	}
}

const (
	forwardThreshold = 60
	turnThreshold    = 90
	turnFactor       = 0.9
)

// mixArcade ignores small stick deflections and keeps the ratio of both
// sides when their sum exceeds the command range
func mixArcade(forward int, turn int) (int, int) {
	if util.Abs(forward) <= forwardThreshold {
		forward = 0
	}
	if util.Abs(turn) <= turnThreshold {
		turn = 0
	} else {
		turn = int(float64(turn) * turnFactor)
	}

	left := forward + turn
	right := forward - turn
	scaledLeft, scaledRight := util.RescaleTo(configuration.MaxCommandValue, util.Abs(left), util.Abs(right))
	return util.Sign(left) * scaledLeft, util.Sign(right) * scaledRight
}
