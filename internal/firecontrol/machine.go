package firecontrol

import (
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/ui"
)

type ShotState string

const (
	ShotIdle   ShotState = "idle"
	ShotArmed  ShotState = "armed"
	ShotFiring ShotState = "firing"
)

// DoubleShotStage is the stage of the double shot sequence, stages
// are only ever entered in ascending order and wrap back to idle
type DoubleShotStage int

const (
	StageIdle DoubleShotStage = iota
	StageFirstShotFired
	StageSecondShotQueued
	StageResetting
)

func (s DoubleShotStage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageFirstShotFired:
		return "firstShotFired"
	case StageSecondShotQueued:
		return "secondShotQueued"
	case StageResetting:
		return "resetting"
	}
	return "unknown"
}

// Inputs is everything the machine observes during a tick
type Inputs struct {
	NowMs      int64
	BallLoaded bool
	// FlywheelError is setpoint minus measured flywheel rate
	FlywheelError  float64
	FlywheelLocked bool
}

// Outputs are the committed roller modes of a tick
type Outputs struct {
	Indexer configuration.MotionMode `json:"indexer"`
	Intake  configuration.MotionMode `json:"intake"`
}

// State is a read-only copy of the machine
type State struct {
	Shot                ShotState                `json:"shot"`
	Stage               DoubleShotStage          `json:"stage"`
	StageName           string                   `json:"stageName"`
	FireRequested       bool                     `json:"fireRequested"`
	DoubleShotRequested bool                     `json:"doubleShotRequested"`
	Override            configuration.MotionMode `json:"override"`
	ResetTimestampMs    int64                    `json:"resetTimestampMs"`
	Outputs             Outputs                  `json:"outputs"`
}

// Machine sequences the intake and indexer for single and double shots
type Machine struct {
	config configuration.FireControlConfig

	fireRequested       bool
	doubleShotRequested bool
	override            configuration.MotionMode

	shot  ShotState
	stage DoubleShotStage

	stageEnteredMs   int64
	resetTimestampMs int64

	outputs Outputs
}

func NewMachine(config configuration.FireControlConfig) *Machine {
	return &Machine{
		config:   config,
		override: configuration.ModeStop,
		shot:     ShotIdle,
		stage:    StageIdle,
		outputs: Outputs{
			Indexer: configuration.ModeStop,
			Intake:  configuration.ModeStop,
		},
	}
}

func (m *Machine) RequestFire() {
	m.fireRequested = true
}

func (m *Machine) RequestDoubleShot() {
	m.doubleShotRequested = true
}

// SetOverride sets a manual indexer mode, anything but stop wins over the automation
func (m *Machine) SetOverride(mode configuration.MotionMode) {
	m.override = mode
}

// Cancel drops all pending requests and returns to idle
func (m *Machine) Cancel() {
	m.fireRequested = false
	m.doubleShotRequested = false
	m.override = configuration.ModeStop
	m.setShot(ShotIdle)
	m.setStage(StageIdle, 0)
}

// Busy is true while a shot is requested or in progress
func (m *Machine) Busy() bool {
	return m.fireRequested || m.doubleShotRequested || m.shot != ShotIdle || m.stage != StageIdle
}

// Step advances the machine by one tick
func (m *Machine) Step(in Inputs) Outputs {
	var out Outputs
	if m.stage != StageIdle || (m.doubleShotRequested && in.BallLoaded && m.shot == ShotIdle) {
		out = m.stepDoubleShot(in)
	} else {
		out = m.stepSingleShot(in)
	}

	if m.override != configuration.ModeStop {
		out.Indexer = m.override
		out.Intake = m.override
	}

	m.outputs = out
	return out
}

func (m *Machine) stepSingleShot(in Inputs) Outputs {
	switch m.shot {
	case ShotIdle:
		if m.fireRequested && in.BallLoaded && in.FlywheelLocked {
			m.setShot(ShotArmed)
			return eject()
		}
	case ShotArmed:
		m.setShot(ShotFiring)
		return eject()
	case ShotFiring:
		if !in.BallLoaded {
			m.fireRequested = false
			m.setShot(ShotIdle)
			break
		}
		return eject()
	}
	return catch(in.BallLoaded)
}

func (m *Machine) stepDoubleShot(in Inputs) Outputs {
	switch m.stage {
	case StageIdle:
		m.setStage(StageFirstShotFired, in.NowMs)
	case StageFirstShotFired:
		if m.firstShotCleared(in) {
			m.setStage(StageSecondShotQueued, in.NowMs)
		}
	case StageSecondShotQueued:
		timedOut := in.NowMs-m.stageEnteredMs >= m.config.QueueTimeout.Milliseconds()
		if in.BallLoaded || timedOut {
			m.resetTimestampMs = in.NowMs
			m.setStage(StageResetting, in.NowMs)
		}
	case StageResetting:
		elapsed := in.NowMs - m.resetTimestampMs
		if !in.BallLoaded && elapsed >= m.config.ResetDelay.Milliseconds() {
			m.fireRequested = false
			m.doubleShotRequested = false
			m.override = configuration.ModeStop
			m.setStage(StageIdle, in.NowMs)
			return catch(in.BallLoaded)
		}
	}

	switch m.stage {
	case StageResetting:
		return Outputs{Indexer: configuration.ModeForward, Intake: configuration.ModeStop}
	default:
		return eject()
	}
}

func (m *Machine) firstShotCleared(in Inputs) bool {
	switch m.config.ClearOn {
	case configuration.ClearOnFlywheel:
		return in.FlywheelError > m.config.FlywheelDropThreshold
	default:
		return !in.BallLoaded
	}
}

func (m *Machine) setShot(state ShotState) {
	if m.shot != state {
		ui.Debug("Shot: %s -> %s", m.shot, state)
	}
	m.shot = state
}

func (m *Machine) setStage(stage DoubleShotStage, nowMs int64) {
	if m.stage != stage {
		ui.Debug("Double shot: %s -> %s", m.stage, stage)
	}
	m.stage = stage
	m.stageEnteredMs = nowMs
}

func (m *Machine) State() State {
	return State{
		Shot:                m.shot,
		Stage:               m.stage,
		StageName:           m.stage.String(),
		FireRequested:       m.fireRequested,
		DoubleShotRequested: m.doubleShotRequested,
		Override:            m.override,
		ResetTimestampMs:    m.resetTimestampMs,
		Outputs:             m.outputs,
	}
}

// eject runs both rollers forward, pushing the loaded ball into the flywheel
func eject() Outputs {
	return Outputs{Indexer: configuration.ModeForward, Intake: configuration.ModeForward}
}

// catch runs the rollers until a ball reaches the indexer sensor
func catch(ballLoaded bool) Outputs {
	if ballLoaded {
		return Outputs{Indexer: configuration.ModeStop, Intake: configuration.ModeStop}
	}
	return Outputs{Indexer: configuration.ModeForward, Intake: configuration.ModeForward}
}
