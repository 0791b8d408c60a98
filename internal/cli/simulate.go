package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/raphaelgruber/imagegrid/internal/grid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	simulateFormat string
	simulateTrace  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <id>...",
	Short: "Replay taps against a fresh grid and print the result",
	Long: `Replay a sequence of taps, by image id, against a freshly mounted grid and
print the resulting state. Unknown ids are reported and skipped.

Examples:
  imagegrid simulate 1 1 1 1 5
  imagegrid simulate 3 3 --format json
  imagegrid simulate 2 2 2 --trace
  imagegrid simulate a b --catalog ./food.yaml --format yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&simulateFormat, "format", "f", "text", "output format: text, json, yaml")
	simulateCmd.Flags().BoolVar(&simulateTrace, "trace", false, "print the grid after every tap")
}

// simulateStep is one tap of a simulation and the grid it produced.
type simulateStep struct {
	Tap   string        `json:"tap" yaml:"tap"`
	Error string        `json:"error,omitempty" yaml:"error,omitempty"`
	Grid  grid.Snapshot `json:"grid" yaml:"grid"`
}

func runSimulate(cmd *cobra.Command, args []string) error {
	switch simulateFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", simulateFormat)
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	model, err := grid.NewModel(cat.Pairs)
	if err != nil {
		return fmt.Errorf("mount grid: %w", err)
	}

	steps := make([]simulateStep, 0, len(args))
	for _, id := range args {
		state, err := model.Activate(id)
		step := simulateStep{Tap: id, Grid: state.Snapshot()}
		if err != nil {
			if !errors.Is(err, grid.ErrUnknownCell) {
				return err
			}
			logger.Warn("ignoring tap", "id", id, "error", err)
			step.Error = err.Error()
		}
		steps = append(steps, step)
	}

	out := cmd.OutOrStdout()
	if !simulateTrace {
		steps = steps[len(steps)-1:]
	}

	switch simulateFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if simulateTrace {
			return enc.Encode(steps)
		}
		return enc.Encode(steps[0].Grid)
	case "yaml":
		var v any = steps[0].Grid
		if simulateTrace {
			v = steps
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	for i, step := range steps {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if simulateTrace {
			fmt.Fprintf(out, "tap %s\n", step.Tap)
		}
		if step.Error != "" {
			fmt.Fprintf(out, "warning: %s\n", step.Error)
		}
		printGrid(out, model, step.Grid, cat.Columns)
	}
	return nil
}

// printGrid writes the snapshot as rows of cat.Columns cells.
func printGrid(w io.Writer, model *grid.Model, snap grid.Snapshot, columns int) {
	if columns <= 0 {
		columns = 1
	}
	for start := 0; start < len(snap.Cells); start += columns {
		end := min(start+columns, len(snap.Cells))
		cells := make([]string, 0, end-start)
		for _, c := range snap.Cells[start:end] {
			cells = append(cells, formatCell(c))
		}
		fmt.Fprintln(w, strings.Join(cells, "  "))
	}
	if snap.Selected == "" {
		fmt.Fprintln(w, "selected: none")
		return
	}
	pair, _ := model.Pair(snap.Selected)
	for _, c := range snap.Cells {
		if c.ID == snap.Selected {
			fmt.Fprintf(w, "selected: %s -> %s\n", c.ID, c.URI(pair))
		}
	}
}

func formatCell(c grid.CellEntry) string {
	mark := " "
	if c.ShowingAlternate {
		mark = "*"
	}
	if c.AtMax {
		mark = "!"
	}
	return fmt.Sprintf("[%s%-3s x%-5s]", mark, c.ID, grid.FormatScale(c.Scale))
}
