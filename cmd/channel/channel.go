package channel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flagbot/flagbot/cmd/global"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "channel",
	Short:            "Actuator channel related commands",
	TraverseChildren: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured actuator channels and their role",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := global.LoadConfig()
		if err != nil {
			ui.Fatal("%v", err)
		}

		config := configuration.CurrentConfig
		roles := channelRoles(config.Mapping)

		var rows [][]string
		for _, channel := range config.Channels {
			rows = append(rows, []string{
				strconv.Itoa(channel.Id),
				channel.Name,
				strings.Join(roles[channel.Id], ", "),
				strconv.Itoa(channel.Deadband),
				strconv.Itoa(channel.SlewRate),
				strconv.FormatBool(channel.Reversed),
			})
		}
		global.PrintTable([]string{"ID", "Name", "Role", "Deadband", "Slew", "Reversed"}, rows)
		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}

func channelRoles(mapping configuration.MappingConfig) map[int][]string {
	roles := map[int][]string{}
	roles[mapping.FrontLeft] = append(roles[mapping.FrontLeft], "drive front left")
	roles[mapping.BackLeft] = append(roles[mapping.BackLeft], "drive back left")
	roles[mapping.FrontRight] = append(roles[mapping.FrontRight], "drive front right")
	roles[mapping.BackRight] = append(roles[mapping.BackRight], "drive back right")
	for idx, id := range mapping.Flywheel {
		roles[id] = append(roles[id], fmt.Sprintf("flywheel %d", idx+1))
	}
	roles[mapping.Intake] = append(roles[mapping.Intake], "intake")
	roles[mapping.Indexer] = append(roles[mapping.Indexer], "indexer")
	return roles
}
