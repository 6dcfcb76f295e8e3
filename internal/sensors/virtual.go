package sensors

import (
	"github.com/flagbot/flagbot/internal/configuration"
)

// VirtualSensor holds a value that is set programmatically
type VirtualSensor struct {
	ID        string                   `json:"id"`
	Role      configuration.SensorRole `json:"role"`
	Value     float64                  `json:"value"`
	Err       error                    `json:"-"`
	LastValue float64                  `json:"lastValue"`
}

func (sensor VirtualSensor) GetId() string {
	return sensor.ID
}

func (sensor VirtualSensor) GetConfig() configuration.SensorConfig {
	return configuration.SensorConfig{
		ID:   sensor.ID,
		Role: sensor.Role,
	}
}

func (sensor VirtualSensor) GetValue() (float64, error) {
	if sensor.Err != nil {
		return 0, sensor.Err
	}
	return sensor.Value, nil
}

func (sensor VirtualSensor) GetLastValue() float64 {
	return sensor.LastValue
}

func (sensor *VirtualSensor) SetLastValue(value float64) {
	sensor.LastValue = value
}
