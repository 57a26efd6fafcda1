package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "planner" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "planner",
		Short:         "Plan work blocks, track sessions, get nudged when it's time",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newProjectCmd(app),
		newTagCmd(app),
		newPlanCmd(app),
		newSessionCmd(app),
		newStatsCmd(app),
		newSettingCmd(app),
		newNotifyCmd(app),
	)

	return root
}
