package robot

import (
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/control_loop"
	"github.com/flagbot/flagbot/internal/firecontrol"
	"github.com/flagbot/flagbot/internal/sensors"
)

// ChannelState is the output of a single channel after a tick
type ChannelState struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	Target    int    `json:"target"`
	Commanded int    `json:"commanded"`
	Output    int    `json:"output"`
}

// State is the aggregate robot record. It is only mutated by the tick
// that owns it, everybody else reads published copies.
type State struct {
	Tick uint64 `json:"tick"`

	Sensors sensors.Snapshot `json:"sensors"`

	// drive intents in [-127, 127]
	LeftDrive  int `json:"leftDrive"`
	RightDrive int `json:"rightDrive"`

	FlywheelSetpoint float64               `json:"flywheelSetpoint"`
	FlywheelRate     float64               `json:"flywheelRate"`
	FlywheelError    float64               `json:"flywheelError"`
	FlywheelLocked   bool                  `json:"flywheelLocked"`
	Flywheel         control_loop.TbhState `json:"flywheel"`

	Indexer configuration.MotionMode `json:"indexer"`
	Intake  configuration.MotionMode `json:"intake"`
	Fire    firecontrol.State        `json:"fire"`

	Channels []ChannelState `json:"channels"`

	// SinkErrorRate is the fraction of failed sink writes over the recent ticks
	SinkErrorRate float64 `json:"sinkErrorRate"`
}

// SetDrive sets both drive intents
func (s *State) SetDrive(left int, right int) {
	s.LeftDrive = left
	s.RightDrive = right
}
