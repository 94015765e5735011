package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file-id>",
		Short: "Show a file's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			logger := setupLogging()

			provider, err := newProvider(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = provider.Shutdown(ctx) }()

			client, err := newDriveClient(ctx, logger, provider.Metrics())
			if err != nil {
				return err
			}

			record, err := client.GetFileMetadata(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:        %s\n", record.ID)
			fmt.Fprintf(out, "Name:      %s\n", record.Name)
			fmt.Fprintf(out, "MIME type: %s\n", record.MimeType)
			fmt.Fprintf(out, "Link:      %s\n", record.WebViewLink)
			return nil
		},
	}
}
