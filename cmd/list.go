package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okibo/drivefetch/internal/drive"
)

func newListCmd() *cobra.Command {
	var (
		mimeType string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "list <folder-id>",
		Short: "List the files in a Drive folder",
		Long: `List the non-trashed files of a Drive folder in server order.

By default only the first result page is shown and results are limited to
PDF files; pass --mime-type "" to list every file type and --all to walk
all result pages.`,
		Args: cobra.ExactArgs(1),
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

			var records []*drive.FileRecord
			if all {
				records, err = client.ListAllFiles(ctx, args[0], mimeType)
			} else {
				records, err = client.ListFiles(ctx, args[0], mimeType)
			}
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tMIME TYPE\tLINK")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.MimeType, r.WebViewLink)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&mimeType, "mime-type", drive.DefaultMimeType, `MIME type filter (use "" to disable the filter)`)
	cmd.Flags().BoolVar(&all, "all", false, "Walk all result pages instead of only the first")

	return cmd
}
