package cli

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/juralis/paperdrop/internal/client/models"
)

func newEnqueueCmd(app *App) *cobra.Command {
	var (
		project string
		author  string
	)

	cmd := &cobra.Command{
		Use:   "enqueue <file>",
		Short: "Add a document to the local upload queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			payload, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			u := &models.PendingUpload{
				SyncKey:      uuid.NewString(),
				OriginalName: filepath.Base(path),
				ContentType:  detectContentType(path, payload),
				Payload:      payload,
				EnqueuedAt:   time.Now().UTC(),
			}
			if project != "" {
				u.ProjectID = &project
			}
			if author != "" {
				u.AuthorName = &author
			}

			if err := app.repos.Uploads.Enqueue(cmd.Context(), u); err != nil {
				return err
			}

			n, err := app.engine.QueueLength(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "queued %s (%d bytes), %d pending\n", u.OriginalName, len(payload), n)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "assign to this project on upload")
	cmd.Flags().StringVar(&author, "author", "", "author name to record")

	return cmd
}

func detectContentType(path string, payload []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return http.DetectContentType(payload)
}
