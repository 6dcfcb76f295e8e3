package match

import (
	"errors"
	"os"

	"github.com/flagbot/flagbot/cmd/global"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/persistence"
	"github.com/flagbot/flagbot/internal/ui"
	"github.com/spf13/cobra"
)

var (
	alliance string
	routine  string
)

var Command = &cobra.Command{
	Use:              "match",
	Short:            "Match selection related commands",
	TraverseChildren: true,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the match selection used for the next autonomous run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := global.LoadConfig()
		if err != nil {
			ui.Fatal("%v", err)
		}
		config := configuration.CurrentConfig

		p := persistence.NewPersistence(config.DbPath)
		err = p.Init()
		if err != nil {
			return err
		}

		source := "stored"
		match, err := p.LoadMatchConfig()
		if errors.Is(err, os.ErrNotExist) {
			source = "configuration"
			match = config.Match
		} else if err != nil {
			return err
		}

		global.PrintTable([]string{"Alliance", "Routine", "Source"}, [][]string{
			{string(match.Alliance), match.Routine, source},
		})
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the match selection used for the next autonomous run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := global.LoadConfig()
		if err != nil {
			ui.Fatal("%v", err)
		}
		config := configuration.CurrentConfig

		match := config.Match
		if alliance != "" {
			match.Alliance, err = configuration.ParseAlliance(alliance)
			if err != nil {
				return err
			}
		}
		if routine != "" {
			match.Routine = routine
		}

		config.Match = match
		err = configuration.ValidateMatch(&config)
		if err != nil {
			return err
		}

		p := persistence.NewPersistence(config.DbPath)
		err = p.Init()
		if err != nil {
			return err
		}
		err = p.SaveMatchConfig(match)
		if err != nil {
			return err
		}
		ui.Success("Stored match selection: %s alliance, routine '%s'", match.Alliance, match.Routine)
		return nil
	},
}

func init() {
	setCmd.Flags().StringVarP(&alliance, "alliance", "a", "", "Alliance (blue | red)")
	setCmd.Flags().StringVarP(&routine, "routine", "r", "", "Routine ID")

	Command.AddCommand(showCmd)
	Command.AddCommand(setCmd)
}
