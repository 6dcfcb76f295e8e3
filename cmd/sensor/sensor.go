package sensor

import (
	"fmt"

	"github.com/flagbot/flagbot/cmd/global"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/sensors"
	"github.com/flagbot/flagbot/internal/sim"
	"github.com/flagbot/flagbot/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var sensorId string

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the current scaled value of a sensor",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		sensor, err := getSensor(sensorId)
		if err != nil {
			return err
		}

		value, err := sensor.GetValue()
		if err != nil {
			return err
		}
		fmt.Printf("%.2f", value*sensor.GetConfig().GetScale())
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func getSensor(id string) (sensors.Sensor, error) {
	err := global.LoadConfig()
	if err != nil {
		ui.Fatal("%v", err)
	}

	config := configuration.CurrentConfig
	// simulated sensors read a freshly created plant
	plant := sim.NewPlant(config)

	availableSensorIds := []string{}
	for _, sensorConfig := range config.Sensors {
		availableSensorIds = append(availableSensorIds, sensorConfig.ID)
		if sensorConfig.ID == id {
			return sensors.NewSensor(sensorConfig, plant)
		}
	}

	return nil, fmt.Errorf("no sensor with id found: %s, options: %s", id, availableSensorIds)
}
