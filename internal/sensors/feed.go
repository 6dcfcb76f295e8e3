package sensors

import (
	"errors"
	"fmt"

	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/ui"
)

var ErrMissingRole = errors.New("no sensor provides role")

// Snapshot holds every sensor value of a single tick
type Snapshot struct {
	NowMs         int64   `json:"nowMs"`
	LeftDrive     float64 `json:"leftDrive"`
	RightDrive    float64 `json:"rightDrive"`
	Heading       float64 `json:"heading"`
	FlywheelTicks float64 `json:"flywheelTicks"`
	BallLoaded    bool    `json:"ballLoaded"`
	// FlywheelStale is set when the flywheel encoder could not be read this tick
	FlywheelStale bool `json:"flywheelStale"`
}

// DrivePosition is the mean of both drive encoders
func (s Snapshot) DrivePosition() float64 {
	return (s.LeftDrive + s.RightDrive) / 2
}

// Value returns the value of the given role, a loaded ball is 1
func (s Snapshot) Value(role configuration.SensorRole) float64 {
	switch role {
	case configuration.RoleLeftDrive:
		return s.LeftDrive
	case configuration.RoleRightDrive:
		return s.RightDrive
	case configuration.RoleHeading:
		return s.Heading
	case configuration.RoleFlywheel:
		return s.FlywheelTicks
	case configuration.RoleBallLoaded:
		if s.BallLoaded {
			return 1
		}
	}
	return 0
}

// Feed captures all sensors once per tick
type Feed struct {
	sensors map[configuration.SensorRole]Sensor
	// subtracted from the scaled value, used to zero the drive encoders
	offsets map[configuration.SensorRole]float64
}

func NewFeed(sensorList []Sensor) (*Feed, error) {
	roles := map[configuration.SensorRole]Sensor{}
	for _, sensor := range sensorList {
		roles[sensor.GetConfig().Role] = sensor
	}
	for _, role := range configuration.SensorRoles {
		if _, ok := roles[role]; !ok {
			return nil, fmt.Errorf("%w '%s'", ErrMissingRole, role)
		}
	}
	return &Feed{
		sensors: roles,
		offsets: map[configuration.SensorRole]float64{},
	}, nil
}

// Read captures the current value of every sensor. A sensor that fails
// to read keeps its last value.
func (f *Feed) Read(nowMs int64) Snapshot {
	flywheel, flywheelOk := f.read(configuration.RoleFlywheel)
	return Snapshot{
		NowMs:         nowMs,
		LeftDrive:     f.value(configuration.RoleLeftDrive),
		RightDrive:    f.value(configuration.RoleRightDrive),
		Heading:       f.value(configuration.RoleHeading),
		FlywheelTicks: flywheel,
		FlywheelStale: !flywheelOk,
		BallLoaded:    f.value(configuration.RoleBallLoaded) != 0,
	}
}

func (f *Feed) value(role configuration.SensorRole) float64 {
	value, _ := f.read(role)
	return value
}

// read returns the offset corrected value of role and false if the last value had to be reused
func (f *Feed) read(role configuration.SensorRole) (float64, bool) {
	scaled, ok := f.readScaled(role)
	return scaled - f.offsets[role], ok
}

func (f *Feed) readScaled(role configuration.SensorRole) (float64, bool) {
	sensor := f.sensors[role]
	value, err := sensor.GetValue()
	if err != nil {
		ui.Warning("Error reading sensor %s: %v", sensor.GetId(), err)
		return sensor.GetLastValue(), false
	}
	scaled := value * sensor.GetConfig().GetScale()
	sensor.SetLastValue(scaled)
	return scaled, true
}

// ResetDrive zeroes both drive encoders at their current position.
// The encoders are read again, so motion since the last tick is not carried over.
func (f *Feed) ResetDrive() {
	for _, role := range []configuration.SensorRole{configuration.RoleLeftDrive, configuration.RoleRightDrive} {
		f.offsets[role], _ = f.readScaled(role)
	}
}

func (f *Feed) GetSensors() []Sensor {
	result := make([]Sensor, 0, len(f.sensors))
	for _, role := range configuration.SensorRoles {
		result = append(result, f.sensors[role])
	}
	return result
}
