// Package cli provides the command-line interface for imagegrid.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/raphaelgruber/imagegrid/internal/catalog"
	"github.com/raphaelgruber/imagegrid/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose     bool
	catalogFlag string
	logFileFlag string

	// Global config and logger
	cfg           config.Config
	logger        *slog.Logger
	loggerCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "imagegrid",
	Short: "Tap-to-swap image grid",
	Long: `Imagegrid shows a grid of image pairs. Tapping an image swaps it to its
alternate and magnifies it by 1.2x, up to 2x. Tapping any other image puts
every other image back to its primary at 1x.

Without a subcommand, imagegrid opens the interactive grid (same as 'run').`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if catalogFlag != "" {
			cfg.CatalogFile = catalogFlag
		}
		if logFileFlag != "" {
			cfg.LogFile = logFileFlag
		}
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		// The interactive grid owns the terminal; keep console logs off it.
		var console io.Writer = os.Stderr
		if isInteractive(cmd) {
			console = io.Discard
		}
		logger, loggerCleanup = config.SetupLogger(cfg.LogFile, cfg.LogLevel, console)
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if loggerCleanup != nil {
			_ = loggerCleanup()
		}
	},
	RunE: runGrid,
}

// loadCatalog reads the configured catalog, or the built-in one.
func loadCatalog() (*catalog.File, error) {
	return catalog.Load(cfg.CatalogFile)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&catalogFlag, "catalog", "c", "", "catalog YAML file (default: built-in 3x3 catalog)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "JSON log file (default $IMAGEGRID_LOG_FILE or /tmp/imagegrid.log)")

	registerGridFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(catalogCmd)
}
