package configuration

import (
	"fmt"
	"strings"
)

// SensorRole identifies which robot signal a sensor provides
type SensorRole string

const (
	RoleLeftDrive  SensorRole = "leftDrive"
	RoleRightDrive SensorRole = "rightDrive"
	RoleHeading    SensorRole = "heading"
	RoleFlywheel   SensorRole = "flywheel"
	RoleBallLoaded SensorRole = "ballLoaded"
)

// SensorRoles lists every role the sensor feed requires
var SensorRoles = []SensorRole{RoleLeftDrive, RoleRightDrive, RoleHeading, RoleFlywheel, RoleBallLoaded}

func ParseSensorRole(text string) (SensorRole, error) {
	for _, role := range SensorRoles {
		if strings.EqualFold(string(role), text) {
			return role, nil
		}
	}
	return "", fmt.Errorf("unknown sensor role '%s'", text)
}

type SensorConfig struct {
	ID   string     `json:"id"`
	Role SensorRole `json:"role"`
	// Scale is multiplied with the raw value, 0 means 1
	Scale float64 `json:"scale"`

	File *FileSensorConfig `json:"file,omitempty"`
	Sim  *SimSensorConfig  `json:"sim,omitempty"`
}

// GetScale returns the effective scale factor of this sensor
func (c SensorConfig) GetScale() float64 {
	if c.Scale == 0 {
		return 1
	}
	return c.Scale
}

type FileSensorConfig struct {
	Path string `json:"path"`
}

// SimSensorConfig binds a sensor to the simulated plant
type SimSensorConfig struct{}

// DefaultSimSensors returns a sensor set that reads everything from the simulator
func DefaultSimSensors() []SensorConfig {
	return []SensorConfig{
		{ID: "left_drive", Role: RoleLeftDrive, Sim: &SimSensorConfig{}},
		{ID: "right_drive", Role: RoleRightDrive, Sim: &SimSensorConfig{}},
		// the gyro reports tenths of a degree
		{ID: "gyro", Role: RoleHeading, Scale: 0.1, Sim: &SimSensorConfig{}},
		{ID: "flywheel_encoder", Role: RoleFlywheel, Sim: &SimSensorConfig{}},
		{ID: "indexer_switch", Role: RoleBallLoaded, Sim: &SimSensorConfig{}},
	}
}
