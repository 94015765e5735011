package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <file-id>",
		Short: "Download a file from Drive",
		Long: `Download the content of a file to the local filesystem.

Without --output the file is left at a freshly created temporary path and
that path is printed; the caller owns the file from then on.`,
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

			path, err := client.DownloadFile(ctx, args[0])
			if err != nil {
				return err
			}

			if output != "" {
				if err := moveFile(path, output); err != nil {
					return fmt.Errorf("failed to move download to %s: %w", output, err)
				}
				path = output
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (default: keep the temporary file)")

	return cmd
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// paths are on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}
