package configuration

import (
	"fmt"
	"strings"
	"time"
)

// ClearCondition selects how the double shot sequence detects that the first projectile left
type ClearCondition string

const (
	ClearOnSensor   ClearCondition = "sensor"
	ClearOnFlywheel ClearCondition = "flywheel"
)

func ParseClearCondition(text string) (ClearCondition, error) {
	for _, c := range []ClearCondition{ClearOnSensor, ClearOnFlywheel} {
		if strings.EqualFold(string(c), text) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown clear condition '%s'", text)
}

type FireControlConfig struct {
	// ResetDelay is the minimum time spent in the resetting stage of a double shot
	ResetDelay time.Duration `json:"resetDelay"`
	// QueueTimeout bounds the wait for the second projectile of a double shot
	QueueTimeout time.Duration `json:"queueTimeout"`
	// FireTimeout bounds fire-wait steps of autonomous routines
	FireTimeout time.Duration `json:"fireTimeout"`

	ClearOn               ClearCondition `json:"clearOn"`
	FlywheelDropThreshold float64        `json:"flywheelDropThreshold"`
}

// MotionMode is the direction of a roller subsystem (intake or indexer)
type MotionMode string

const (
	ModeStop    MotionMode = "stop"
	ModeForward MotionMode = "forward"
	ModeReverse MotionMode = "reverse"
)

func ParseMotionMode(text string) (MotionMode, error) {
	for _, m := range []MotionMode{ModeStop, ModeForward, ModeReverse} {
		if strings.EqualFold(string(m), text) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode '%s', use one of: stop | forward | reverse", text)
}
