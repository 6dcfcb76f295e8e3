package configuration

import (
	"fmt"
	"strings"
	"time"
)

type StepKind string

const (
	// StepDrive drives Value encoder ticks (negative for backwards)
	StepDrive StepKind = "drive"
	// StepTurn turns to the heading Value (degrees), mirrored by alliance if Mirror is set
	StepTurn StepKind = "turn"
	// StepWait idles for Duration
	StepWait StepKind = "wait"
	// StepPower applies the raw drive power Value to both sides for Duration
	StepPower StepKind = "power"
	// StepFlywheel sets the flywheel setpoint to Value (RPM)
	StepFlywheel StepKind = "flywheel"
	// StepWaitFlywheel waits until the flywheel rate reaches Value (or the current setpoint if 0)
	StepWaitFlywheel StepKind = "waitFlywheel"
	// StepOverride sets the indexer override to Mode
	StepOverride StepKind = "override"
	// StepFire requests a single shot and waits for it to complete
	StepFire StepKind = "fire"
	// StepDoubleShot requests a double shot and waits for the sequence to reset
	StepDoubleShot StepKind = "doubleShot"
	// StepRoutine runs the routine with the id Routine
	StepRoutine StepKind = "routine"
)

var StepKinds = []StepKind{
	StepDrive, StepTurn, StepWait, StepPower, StepFlywheel, StepWaitFlywheel,
	StepOverride, StepFire, StepDoubleShot, StepRoutine,
}

func ParseStepKind(text string) (StepKind, error) {
	for _, kind := range StepKinds {
		if strings.EqualFold(string(kind), text) {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown step kind '%s'", text)
}

type RoutineConfig struct {
	ID    string       `json:"id"`
	Steps []StepConfig `json:"steps"`
}

type StepConfig struct {
	Kind     StepKind      `json:"kind"`
	Value    float64       `json:"value"`
	Duration time.Duration `json:"duration"`
	Mirror   bool          `json:"mirror"`
	Mode     MotionMode    `json:"mode"`
	Routine  string        `json:"routine"`
}

const DefaultRoutineId = "flag"

// DefaultRoutines returns the built-in autonomous routines
func DefaultRoutines() []RoutineConfig {
	return []RoutineConfig{
		{
			ID: "preload",
			Steps: []StepConfig{
				{Kind: StepFlywheel, Value: 2400},
				{Kind: StepWaitFlywheel},
				{Kind: StepWait, Duration: 400 * time.Millisecond},
				{Kind: StepOverride, Mode: ModeForward},
				{Kind: StepWait, Duration: 500 * time.Millisecond},
			},
		},
		{
			ID: DefaultRoutineId,
			Steps: []StepConfig{
				{Kind: StepRoutine, Routine: "preload"},
				{Kind: StepPower, Value: 80, Duration: 50 * time.Millisecond},
				// face the inside of the field
				{Kind: StepTurn, Value: 100, Mirror: true},
				{Kind: StepOverride, Mode: ModeStop},
				{Kind: StepWait, Duration: 200 * time.Millisecond},
				// square against the wall
				{Kind: StepPower, Value: -60, Duration: 400 * time.Millisecond},
				{Kind: StepFlywheel, Value: 2000},
				{Kind: StepDrive, Value: 1300},
				{Kind: StepDrive, Value: -1300},
				{Kind: StepTurn, Value: 0, Mirror: true},
				{Kind: StepFire},
			},
		},
		{
			ID: "doubleShot",
			Steps: []StepConfig{
				{Kind: StepFlywheel, Value: 2400},
				{Kind: StepWaitFlywheel},
				{Kind: StepDoubleShot},
				{Kind: StepFlywheel, Value: 0},
			},
		},
	}
}
