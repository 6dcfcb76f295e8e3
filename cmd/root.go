package cmd

import (
	"fmt"
	"os"

	"github.com/flagbot/flagbot/cmd/auton"
	"github.com/flagbot/flagbot/cmd/channel"
	"github.com/flagbot/flagbot/cmd/config"
	"github.com/flagbot/flagbot/cmd/flywheel"
	"github.com/flagbot/flagbot/cmd/global"
	"github.com/flagbot/flagbot/cmd/match"
	"github.com/flagbot/flagbot/cmd/sensor"
	"github.com/flagbot/flagbot/internal"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flagbot",
	Short: "A daemon running the control loop of a competition robot.",
	Long: `flagbot runs the drivetrain, flywheel launcher and fire control
of a competition robot on a fixed tick, against real hardware or a simulator.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		setupUi()
		printHeader()

		err := global.LoadConfig()
		if err != nil {
			ui.Error("Config Validation Error: %v", err)
			os.Exit(1)
		}

		internal.RunDaemon()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/flagbot.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)

	rootCmd.AddCommand(channel.Command)
	rootCmd.AddCommand(sensor.Command)
	rootCmd.AddCommand(flywheel.Command)
	rootCmd.AddCommand(auton.Command)
	rootCmd.AddCommand(match.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("flag", pterm.NewStyle(pterm.FgLightRed)),
		pterm.NewLettersFromStringWithStyle("bot", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()
	if err != nil {
		fmt.Println("flagbot")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		setupUi()
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
