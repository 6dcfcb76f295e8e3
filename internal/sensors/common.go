package sensors

import (
	"fmt"

	"github.com/flagbot/flagbot/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SensorMap = cmap.New[Sensor]()
)

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// GetValue returns the current raw value of this sensor
	GetValue() (float64, error)

	// GetLastValue returns the last successfully read and scaled value
	GetLastValue() float64
	SetLastValue(value float64)
}

// SimulatedSource provides sensor values of a simulated robot
type SimulatedSource interface {
	ReadRole(role configuration.SensorRole) float64
}

// NewSensor creates the sensor described by config, source is only used by simulated sensors
func NewSensor(config configuration.SensorConfig, source SimulatedSource) (Sensor, error) {
	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Sim != nil {
		if source == nil {
			return nil, fmt.Errorf("sensor %s: simulated sensor requires a running simulator", config.ID)
		}
		return &SimSensor{
			Config: config,
			Source: source,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}
