package sensors

import (
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/util"
)

type FileSensor struct {
	Config    configuration.SensorConfig `json:"configuration"`
	LastValue float64                    `json:"lastValue"`
}

func (sensor FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor FileSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor FileSensor) GetValue() (float64, error) {
	filePath, err := util.ExpandPath(sensor.Config.File.Path)
	if err != nil {
		return 0, err
	}

	integer, err := util.ReadIntFromFile(filePath)
	if err != nil {
		return 0, err
	}
	return float64(integer), nil
}

func (sensor FileSensor) GetLastValue() float64 {
	return sensor.LastValue
}

func (sensor *FileSensor) SetLastValue(value float64) {
	sensor.LastValue = value
}
