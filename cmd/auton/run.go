package auton

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/flagbot/flagbot/cmd/global"
	"github.com/flagbot/flagbot/internal/auton"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/robot"
	"github.com/flagbot/flagbot/internal/sim"
	"github.com/flagbot/flagbot/internal/ui"
	"github.com/spf13/cobra"
)

var (
	routineId string
	alliance  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a routine against the simulator and print the result of every step",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := global.LoadConfig()
		if err != nil {
			ui.Fatal("%v", err)
		}
		config := configuration.CurrentConfig

		match := config.Match
		if routineId != "" {
			match.Routine = routineId
		}
		if alliance != "" {
			match.Alliance, err = configuration.ParseAlliance(alliance)
			if err != nil {
				return err
			}
		}

		r, plant, err := sim.NewRobot(config, robot.NewManualClock())
		if err != nil {
			return err
		}
		runner := auton.NewRunner(r, config)
		result, runErr := runner.Run(context.Background(), match.Routine, match.Alliance)

		var rows [][]string
		for idx, step := range result.Steps {
			converged, ticks, final := "", "", ""
			if step.Result != nil {
				converged = strconv.FormatBool(step.Result.Converged)
				ticks = strconv.Itoa(step.Result.Ticks)
				final = fmt.Sprintf("%.1f", step.Result.Final)
			}
			rows = append(rows, []string{
				strconv.Itoa(idx + 1),
				step.Routine,
				string(step.Kind),
				fmt.Sprintf("%.0f", step.Value),
				converged,
				ticks,
				final,
				step.Error,
			})
		}
		global.PrintTable([]string{"#", "Routine", "Kind", "Value", "Converged", "Ticks", "Remaining", "Error"}, rows)

		state := plant.State()
		global.PrintTable(
			[]string{"Alliance", "Duration", "Shots", "Balls left", "Heading", "Left", "Right"},
			[][]string{{
				string(match.Alliance),
				(time.Duration(result.EndMs-result.StartMs) * time.Millisecond).String(),
				strconv.Itoa(state.Shots),
				strconv.Itoa(state.Balls),
				fmt.Sprintf("%.1f°", state.Heading/10),
				fmt.Sprintf("%.0f", state.LeftPosition),
				fmt.Sprintf("%.0f", state.RightPosition),
			}},
		)
		return runErr
	},
}

func init() {
	runCmd.Flags().StringVarP(&routineId, "routine", "r", "", "Routine ID, defaults to the routine of the match configuration")
	runCmd.Flags().StringVarP(&alliance, "alliance", "a", "", "Alliance (blue | red), defaults to the alliance of the match configuration")
	Command.AddCommand(runCmd)
}
