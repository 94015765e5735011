package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/okibo/drivefetch/internal/drive"
	"github.com/okibo/drivefetch/internal/google"
	"github.com/okibo/drivefetch/internal/instrumentation"
)

// rootCmd represents the base command for the drivefetch application
var rootCmd = &cobra.Command{
	Use:   "drivefetch",
	Short: "Read-only access to Google Drive folders and files",
	Long: `drivefetch is a small tool for read-only access to Google Drive.

It authenticates with OAuth2 (client configuration from
GOOGLE_CREDENTIALS_JSON, tokens cached in GOOGLE_TOKEN_JSON), lists the
files of a folder, downloads file content to a local temporary file and
fetches file metadata.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

var debug bool

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "drivefetch version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging and stdout metrics export")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// setupLogging configures the process-wide logger according to the --debug
// flag and returns it.
func setupLogging() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// newProvider builds the instrumentation provider for one command run.
// --debug switches metrics export to stdout unless the environment already
// chose an exporter.
func newProvider(ctx context.Context) (*instrumentation.Provider, error) {
	config := instrumentation.DefaultConfig()
	config.ServiceVersion = version
	if debug && config.MetricsExporter == instrumentation.ExporterNone {
		config.MetricsExporter = instrumentation.ExporterStdout
	}
	return instrumentation.NewProvider(ctx, config)
}

// newDriveClient authenticates and builds the Drive client shared by the
// list, get and info commands.
func newDriveClient(ctx context.Context, logger *slog.Logger, metrics *instrumentation.Metrics) (*drive.Client, error) {
	auth, err := google.NewAuthenticator(logger, metrics)
	if err != nil {
		return nil, err
	}

	ts, err := auth.Authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	return drive.NewClient(ctx, ts, drive.WithLogger(logger), drive.WithMetrics(metrics))
}
