package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPendingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List documents waiting in the local queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.repos.Uploads.ListPending(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "queue is empty")
				return nil
			}
			for _, u := range list {
				target := "inbox"
				if u.ProjectID != nil {
					target = "project " + *u.ProjectID
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d bytes\t%s\t%s\n",
					u.LocalID, u.OriginalName, len(u.Payload), target, u.EnqueuedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
