package auton

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flagbot/flagbot/cmd/global"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured routines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := global.LoadConfig()
		if err != nil {
			ui.Fatal("%v", err)
		}
		config := configuration.CurrentConfig

		var rows [][]string
		for _, routine := range config.Routines {
			var steps []string
			for _, step := range routine.Steps {
				steps = append(steps, describeStep(step))
			}
			id := routine.ID
			if id == config.Match.Routine {
				id += " *"
			}
			rows = append(rows, []string{id, strconv.Itoa(len(routine.Steps)), strings.Join(steps, ", ")})
		}
		global.PrintTable([]string{"ID", "Steps", "Sequence"}, rows)
		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}

func describeStep(step configuration.StepConfig) string {
	switch step.Kind {
	case configuration.StepRoutine:
		return "routine " + step.Routine
	case configuration.StepWait:
		return "wait " + step.Duration.String()
	case configuration.StepPower:
		return fmt.Sprintf("power %.0f for %s", step.Value, step.Duration)
	case configuration.StepOverride:
		return "override " + string(step.Mode)
	case configuration.StepFire, configuration.StepDoubleShot:
		return string(step.Kind)
	case configuration.StepTurn:
		if step.Mirror {
			return fmt.Sprintf("turn %.0f (mirrored)", step.Value)
		}
	}
	return fmt.Sprintf("%s %.0f", step.Kind, step.Value)
}
