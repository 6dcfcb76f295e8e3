package auton

import (
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "auton",
	Short:            "Autonomous routine related commands",
	TraverseChildren: true,
}
