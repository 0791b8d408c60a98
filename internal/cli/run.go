package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/imagegrid/internal/config"
	"github.com/raphaelgruber/imagegrid/internal/metrics"
	"github.com/raphaelgruber/imagegrid/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var lockAtMax bool

// errNotTerminal is returned when the interactive grid has no terminal to draw on.
var errNotTerminal = errors.New("stdout is not a terminal; use 'imagegrid simulate' for scripted runs")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive grid",
	Long: `Open the interactive image grid in the terminal.

Move with the arrow keys (or hjkl), tap the focused image with enter or space,
or tap the nth image directly with 1-9. Press r to reset, ? for help, q to quit.

Examples:
  imagegrid run
  imagegrid run --catalog ./food.yaml
  imagegrid run --lock-at-max`,
	Args: cobra.NoArgs,
	RunE: runGrid,
}

func init() {
	registerGridFlags(runCmd)
}

// registerGridFlags adds the interactive grid flags to cmd.
func registerGridFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&lockAtMax, "lock-at-max", false, "ignore taps on images already at max scale (default $IMAGEGRID_LOCK_AT_MAX)")
}

// isInteractive reports whether cmd opens the full-screen grid.
func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "run"
}

func runGrid(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	lock := cfg.LockAtMax || lockAtMax
	sessionLogger, session := config.WithSession(logger)
	stats := metrics.NewCollector()

	sessionLogger.Info("grid mounted",
		"version", Version,
		"catalog", catalogName(cfg.CatalogFile),
		"cells", len(cat.Pairs),
		"columns", cat.Columns,
		"lock_at_max", lock,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	err = tui.Run(ctx, tui.Options{
		Catalog:   cat,
		LockAtMax: lock,
		Session:   session,
		Logger:    sessionLogger,
		Stats:     stats,
	})

	snap := stats.Snapshot()
	sessionLogger.Info("grid unmounted",
		"activations", snap.Activations,
		"capped", snap.Capped,
		"blocked", snap.Blocked,
		"unknown", snap.Unknown,
		"resets", snap.Resets,
		"uptime_seconds", snap.UptimeSeconds,
	)
	if err != nil {
		return err
	}

	if verbose {
		printStats(cmd.OutOrStdout(), snap)
	}
	return nil
}

func catalogName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

// printStats writes a short per-cell summary of a session.
func printStats(w io.Writer, snap metrics.Snapshot) {
	fmt.Fprintf(w, "Session: %d taps (%d capped, %d blocked), %d resets\n",
		snap.Activations, snap.Capped, snap.Blocked, snap.Resets)
	for _, c := range snap.Cells {
		fmt.Fprintf(w, "  Image %-4s %3d taps\n", c.ID, c.Activations+c.Blocked)
	}
}
