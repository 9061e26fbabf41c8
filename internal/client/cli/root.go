package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the command tree. The connection and queue settings
// are read by the config package straight from os.Args; the mirror flags
// registered here only keep cobra from rejecting them.
func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "paperdrop",
		Short:         "Capture documents offline and sync them to the paperdrop server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var ignored string
	cmd.PersistentFlags().StringVarP(&ignored, "config", "c", "", "path to a JSON config file")
	cmd.PersistentFlags().StringVarP(&ignored, "server", "a", "", "base URL of the intake server")
	cmd.PersistentFlags().StringVarP(&ignored, "database", "d", "", "path of the local queue database")
	cmd.PersistentFlags().StringVarP(&ignored, "api-key", "k", "", "static API key")
	cmd.PersistentFlags().StringVarP(&ignored, "probe-interval", "i", "", "probe interval in seconds")
	cmd.PersistentFlags().StringVarP(&ignored, "timeout", "t", "", "upload timeout in seconds")

	cmd.AddCommand(
		newEnqueueCmd(app),
		newPendingCmd(app),
		newSyncCmd(app),
		newWatchCmd(app),
	)

	return cmd
}
