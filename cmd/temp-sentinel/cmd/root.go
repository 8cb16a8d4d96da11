package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/temp-sentinel/internal/config"
	"github.com/oshokin/temp-sentinel/internal/logger"
	"github.com/oshokin/temp-sentinel/internal/service/controller"
	"github.com/oshokin/temp-sentinel/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel sets the minimum level for console logs.
	logLevel string

	// rootCmd represents the base command for running the controller.
	rootCmd = &cobra.Command{
		Use:   "temp-sentinel [telemetry-address]",
		Short: "Run the temperature-monitor controller.",
		Long: `Starts the temperature-monitor controller: four cooperating tasks, the
alert interrupt bridge and the debounce timer, driving simulated sensor,
display and indicator hardware.

Settings come from the configuration file; a missing file means the built-in
defaults. The optional telemetry address argument (e.g. :9180) overrides the
configured one and enables the HTTP surface with health, state, metrics and
temperature-injection endpoints.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use telemetry address argument if provided, otherwise rely on config.
			var telemetryAddress string
			if len(args) > 0 {
				telemetryAddress = args[0]
			}

			options := &controller.Options{
				ConfigPath:       configPath,
				TelemetryAddress: telemetryAddress,
			}

			return controller.Run(ctx, options)
		},
	}
)

// Execute runs the temp-sentinel CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "minimum log level (debug, info, warn, error)")
}
