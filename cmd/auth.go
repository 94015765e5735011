package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okibo/drivefetch/internal/google"
)

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authenticate against Google Drive",
		Long: `Resolve a usable OAuth2 token for read-only Drive access.

A valid cached token in GOOGLE_TOKEN_JSON is used as-is. An expired token
with a refresh token is refreshed. Otherwise the browser consent flow runs
and blocks until authorization completes. The resulting token is written
back to GOOGLE_TOKEN_JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			logger := setupLogging()

			provider, err := newProvider(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = provider.Shutdown(ctx) }()

			auth, err := google.NewAuthenticator(logger, provider.Metrics())
			if err != nil {
				return err
			}

			ts, err := auth.Authenticate(ctx)
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			tok, err := ts.Token()
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			if tok.Expiry.IsZero() {
				fmt.Fprintln(cmd.OutOrStdout(), "Authenticated.")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Authenticated; token valid until %s\n",
					tok.Expiry.Format(time.RFC3339))
			}
			return nil
		},
	}
}
