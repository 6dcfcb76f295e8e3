package flywheel

import (
	"context"
	"fmt"
	"time"

	"github.com/flagbot/flagbot/cmd/global"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/sim"
	"github.com/flagbot/flagbot/internal/ui"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	rpm      float64
	duration time.Duration
)

var Command = &cobra.Command{
	Use:              "flywheel",
	Short:            "Flywheel related commands",
	TraverseChildren: true,
}

var spinUpCmd = &cobra.Command{
	Use:   "spinup",
	Short: "Simulate a flywheel spin-up with the configured controller and plot the response",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := global.LoadConfig()
		if err != nil {
			ui.Fatal("%v", err)
		}
		config := configuration.CurrentConfig

		result, err := sim.SpinUp(context.Background(), config, rpm, duration)
		if err != nil {
			return err
		}

		lockedAfter := "never"
		if result.LockedAfter >= 0 {
			lockedAfter = result.LockedAfter.String()
		}
		final := result.Final
		global.PrintTable(
			[]string{"Setpoint", "RPM", "Error", "Output", "Locked after"},
			[][]string{{
				fmt.Sprintf("%.0f", result.Setpoint),
				fmt.Sprintf("%.0f", final.FlywheelRate),
				fmt.Sprintf("%.0f", final.FlywheelError),
				fmt.Sprintf("%.3f", final.Flywheel.Output),
				lockedAfter,
			}},
		)

		if len(result.Samples) == 0 {
			return nil
		}
		caption := fmt.Sprintf("RPM over %s (%s per tick)", duration, config.TickRate)
		graph := asciigraph.Plot(result.Samples, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln("%s", graph)
		return nil
	},
}

func init() {
	spinUpCmd.Flags().Float64VarP(&rpm, "rpm", "r", 2400, "Flywheel setpoint")
	spinUpCmd.Flags().DurationVarP(&duration, "duration", "d", 4*time.Second, "Simulated time")
	Command.AddCommand(spinUpCmd)
}
