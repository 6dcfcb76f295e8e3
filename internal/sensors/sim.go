package sensors

import (
	"github.com/flagbot/flagbot/internal/configuration"
)

// SimSensor reads its role from a simulated plant
type SimSensor struct {
	Config    configuration.SensorConfig `json:"configuration"`
	Source    SimulatedSource            `json:"-"`
	LastValue float64                    `json:"lastValue"`
}

func (sensor SimSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor SimSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor SimSensor) GetValue() (float64, error) {
	return sensor.Source.ReadRole(sensor.Config.Role), nil
}

func (sensor SimSensor) GetLastValue() float64 {
	return sensor.LastValue
}

func (sensor *SimSensor) SetLastValue(value float64) {
	sensor.LastValue = value
}
