package robot

import (
	"math"

	"github.com/flagbot/flagbot/internal/actuators"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/control_loop"
	"github.com/flagbot/flagbot/internal/ui"
)

// mapOutputs translates the intents of the robot state into channel targets
func mapOutputs(mapping configuration.MappingConfig, state *State) map[int]int {
	targets := map[int]int{
		mapping.FrontLeft:  state.LeftDrive,
		mapping.BackLeft:   state.LeftDrive,
		mapping.FrontRight: state.RightDrive,
		mapping.BackRight:  state.RightDrive,
		mapping.Intake:     modePower(state.Intake, mapping.ModePower),
		mapping.Indexer:    modePower(state.Indexer, mapping.ModePower),
	}

	flywheel := int(math.Round(state.Flywheel.Output / control_loop.MaxTbhOutput * actuators.MaxCommandValue))
	for _, id := range mapping.Flywheel {
		targets[id] = flywheel
	}
	return targets
}

func modePower(mode configuration.MotionMode, power int) int {
	switch mode {
	case configuration.ModeForward:
		return power
	case configuration.ModeReverse:
		return -power
	}
	return 0
}

func applyTargets(bank *actuators.Bank, targets map[int]int) {
	for id, value := range targets {
		err := bank.SetTarget(id, value)
		if err != nil {
			ui.Warning("Unable to apply channel target: %v", err)
		}
	}
}
