package sim

import (
	"github.com/flagbot/flagbot/internal/actuators"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/robot"
	"github.com/flagbot/flagbot/internal/sensors"
)

// NewRobot creates a robot whose sensors and sink are connected to a new plant.
// Sensor scales of the configuration are kept, sensor sources are replaced.
func NewRobot(config configuration.Configuration, clock robot.Clock) (*robot.Robot, *Plant, error) {
	plant := NewPlant(config)

	var list []sensors.Sensor
	for _, sensorConfig := range SensorConfigs(config.Sensors) {
		sensor, err := sensors.NewSensor(sensorConfig, plant)
		if err != nil {
			return nil, nil, err
		}
		list = append(list, sensor)
	}

	feed, err := sensors.NewFeed(list)
	if err != nil {
		return nil, nil, err
	}

	bank := actuators.NewBank(config.Channels)
	r := robot.New(config, clock, feed, bank, NewSink(plant, config.TickRate))
	return r, plant, nil
}

// SensorConfigs returns a simulated sensor for every role, based on the given sensors
func SensorConfigs(configured []configuration.SensorConfig) []configuration.SensorConfig {
	byRole := map[configuration.SensorRole]configuration.SensorConfig{}
	for _, sensorConfig := range configuration.DefaultSimSensors() {
		byRole[sensorConfig.Role] = sensorConfig
	}
	for _, sensorConfig := range configured {
		byRole[sensorConfig.Role] = configuration.SensorConfig{
			ID:    sensorConfig.ID,
			Role:  sensorConfig.Role,
			Scale: sensorConfig.Scale,
			Sim:   &configuration.SimSensorConfig{},
		}
	}

	result := make([]configuration.SensorConfig, 0, len(byRole))
	for _, role := range configuration.SensorRoles {
		result = append(result, byRole[role])
	}
	return result
}
