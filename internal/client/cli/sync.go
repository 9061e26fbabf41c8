package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Drain the queue to the server once",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.engine.SyncOnce(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %d, evicted %d, %d remaining\n",
				res.Sent, res.Evicted, res.Remaining)
			return nil
		},
	}
}
