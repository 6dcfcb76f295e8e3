package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flagbot/flagbot/internal/ui"
	"github.com/looplab/tarjan"
	"golang.org/x/exp/slices"
)

const (
	MaxChannelCount = 10
	MaxCommandValue = 127
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if config.TickRate <= 0 {
		return errors.New("tickRate must be > 0")
	}
	err := validateChannels(config)
	if err != nil {
		return err
	}
	err = validateMapping(config)
	if err != nil {
		return err
	}
	err = validateSensors(config)
	if err != nil {
		return err
	}
	err = validateSink(config)
	if err != nil {
		return err
	}
	err = validateFlywheel(config)
	if err != nil {
		return err
	}
	err = validateMotion("drive", config.Drive)
	if err != nil {
		return err
	}
	err = validateMotion("turn", config.Turn)
	if err != nil {
		return err
	}
	err = validateRoutines(config)
	if err != nil {
		return err
	}
	return ValidateMatch(config)
}

func validateChannels(config *Configuration) error {
	seen := map[int]bool{}
	for _, channel := range config.Channels {
		if channel.Id < 0 || channel.Id >= MaxChannelCount {
			return fmt.Errorf("channel %d: id must be in [0..%d]", channel.Id, MaxChannelCount-1)
		}
		if seen[channel.Id] {
			return fmt.Errorf("duplicate channel id detected: %d", channel.Id)
		}
		seen[channel.Id] = true

		if channel.Deadband < 0 || channel.Deadband > MaxCommandValue {
			return fmt.Errorf("channel %d: deadband must be in [0..%d]", channel.Id, MaxCommandValue)
		}
		if channel.SlewRate <= 0 {
			return fmt.Errorf("channel %d: slewRate must be > 0", channel.Id)
		}
	}
	return nil
}

func validateMapping(config *Configuration) error {
	mapping := config.Mapping
	named := map[string]int{
		"frontLeft":  mapping.FrontLeft,
		"backLeft":   mapping.BackLeft,
		"frontRight": mapping.FrontRight,
		"backRight":  mapping.BackRight,
		"intake":     mapping.Intake,
		"indexer":    mapping.Indexer,
	}
	for i, id := range mapping.Flywheel {
		named[fmt.Sprintf("flywheel[%d]", i)] = id
	}

	for name, id := range named {
		if !channelIdExists(id, config) {
			return fmt.Errorf("mapping %s: no channel definition with id %d found", name, id)
		}
	}
	if len(mapping.Flywheel) == 0 {
		return errors.New("mapping flywheel: at least one channel is required")
	}
	if mapping.ModePower <= 0 || mapping.ModePower > MaxCommandValue {
		return fmt.Errorf("mapping modePower: must be in [1..%d]", MaxCommandValue)
	}
	return nil
}

func channelIdExists(id int, config *Configuration) bool {
	for _, channel := range config.Channels {
		if channel.Id == id {
			return true
		}
	}
	return false
}

func validateSensors(config *Configuration) error {
	ids := map[string]bool{}
	roles := map[SensorRole]string{}
	for _, sensorConfig := range config.Sensors {
		if ids[sensorConfig.ID] {
			return fmt.Errorf("duplicate sensor id detected: %s", sensorConfig.ID)
		}
		ids[sensorConfig.ID] = true

		subConfigs := 0
		if sensorConfig.File != nil {
			subConfigs++
		}
		if sensorConfig.Sim != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: file | sim", sensorConfig.ID)
		}

		if !slices.Contains(SensorRoles, sensorConfig.Role) {
			return fmt.Errorf("sensor %s: unsupported role '%s'", sensorConfig.ID, sensorConfig.Role)
		}
		if other, ok := roles[sensorConfig.Role]; ok {
			return fmt.Errorf("sensor %s: role '%s' is already provided by sensor %s", sensorConfig.ID, sensorConfig.Role, other)
		}
		roles[sensorConfig.Role] = sensorConfig.ID

		if sensorConfig.File != nil && len(sensorConfig.File.Path) <= 0 {
			return fmt.Errorf("sensor %s: missing file path", sensorConfig.ID)
		}
	}

	for _, role := range SensorRoles {
		if _, ok := roles[role]; !ok {
			return fmt.Errorf("no sensor provides role '%s'", role)
		}
	}
	return nil
}

func validateSink(config *Configuration) error {
	sink := config.Sink
	switch sink.Type {
	case SinkTypeSim:
		if !sensorsUseSim(config) {
			ui.Warning("Simulated sink configured, but no sensor reads from the simulator")
		}
	case SinkTypeFile:
		if sink.File == nil || len(sink.File.Directory) <= 0 {
			return errors.New("sink file: missing directory")
		}
	case SinkTypeSerial:
		if sink.Serial == nil || len(sink.Serial.Port) <= 0 {
			return errors.New("sink serial: missing port")
		}
		if sink.Serial.BaudRate <= 0 {
			return errors.New("sink serial: baudRate must be > 0")
		}
	case SinkTypeCan:
		if sink.Can == nil || len(sink.Can.Interface) <= 0 {
			return errors.New("sink can: missing interface")
		}
	default:
		types := make([]string, 0, len(SinkTypes))
		for _, t := range SinkTypes {
			types = append(types, string(t))
		}
		return fmt.Errorf("unsupported sink type '%s', use one of: %s", sink.Type, strings.Join(types, " | "))
	}
	return nil
}

func sensorsUseSim(config *Configuration) bool {
	for _, sensorConfig := range config.Sensors {
		if sensorConfig.Sim != nil {
			return true
		}
	}
	return false
}

func validateFlywheel(config *Configuration) error {
	flywheel := config.Flywheel
	if flywheel.MaxRpm <= 0 {
		return errors.New("flywheel: maxRpm must be > 0")
	}
	if flywheel.TicksPerRevolution <= 0 {
		return errors.New("flywheel: ticksPerRevolution must be > 0")
	}
	if flywheel.GearRatio <= 0 {
		return errors.New("flywheel: gearRatio must be > 0")
	}
	if flywheel.Gain <= 0 {
		return errors.New("flywheel: gain must be > 0")
	}
	if flywheel.BangBangThreshold <= 0 {
		return errors.New("flywheel: bangBangThreshold must be > 0")
	}
	if flywheel.LockWindow <= 0 {
		return errors.New("flywheel: lockWindow must be > 0")
	}
	return nil
}

func validateMotion(name string, motion MotionConfig) error {
	if motion.P == 0 && motion.I == 0 && motion.D == 0 {
		return fmt.Errorf("%s: all PID constants are zero", name)
	}
	if motion.Tolerance <= 0 {
		return fmt.Errorf("%s: tolerance must be > 0", name)
	}
	if motion.MaxPower <= 0 || motion.MaxPower > MaxCommandValue {
		return fmt.Errorf("%s: maxPower must be in [1..%d]", name, MaxCommandValue)
	}
	if motion.MaxDuration <= 0 {
		ui.Warning("%s: no maxDuration configured, motions that never converge will block forever", name)
	}
	return nil
}

func validateRoutines(config *Configuration) error {
	graph := make(map[interface{}][]interface{})

	ids := map[string]bool{}
	for _, routine := range config.Routines {
		if ids[routine.ID] {
			return fmt.Errorf("duplicate routine id detected: %s", routine.ID)
		}
		ids[routine.ID] = true
	}

	for _, routine := range config.Routines {
		var connections []interface{}
		for idx, step := range routine.Steps {
			if !slices.Contains(StepKinds, step.Kind) {
				return fmt.Errorf("routine %s, step %d: unsupported step kind '%s'", routine.ID, idx, step.Kind)
			}

			switch step.Kind {
			case StepWait, StepPower:
				if step.Duration <= 0 {
					return fmt.Errorf("routine %s, step %d: %s requires a duration", routine.ID, idx, step.Kind)
				}
			case StepOverride:
				if len(step.Mode) <= 0 {
					return fmt.Errorf("routine %s, step %d: override requires a mode", routine.ID, idx)
				}
			case StepRoutine:
				if step.Routine == routine.ID {
					return fmt.Errorf("routine %s: a routine cannot reference itself", routine.ID)
				}
				if !ids[step.Routine] {
					return fmt.Errorf("routine %s: no routine definition with id '%s' found", routine.ID, step.Routine)
				}
				connections = append(connections, step.Routine)
			}
		}
		graph[routine.ID] = connections
	}

	return validateNoLoops(graph)
}

func validateNoLoops(graph map[interface{}][]interface{}) error {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return fmt.Errorf("you have created a routine dependency cycle: %v", items)
		}
	}
	return nil
}

// ValidateMatch checks the alliance and that the selected routine is defined
func ValidateMatch(config *Configuration) error {
	match := config.Match
	if match.Alliance != AllianceBlue && match.Alliance != AllianceRed {
		return fmt.Errorf("match: unsupported alliance '%s'", match.Alliance)
	}
	for _, routine := range config.Routines {
		if routine.ID == match.Routine {
			return nil
		}
	}
	return fmt.Errorf("match: no routine definition with id '%s' found", match.Routine)
}
