package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphaelgruber/imagegrid/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("IMAGEGRID_LOG_FILE", filepath.Join(t.TempDir(), "imagegrid.log"))
	t.Setenv("IMAGEGRID_CATALOG", "")

	// Flag values survive between Execute calls.
	catalogFlag, logFileFlag, verbose = "", "", false
	simulateFormat, simulateTrace = "text", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSimulate_Text(t *testing.T) {
	out, err := execute(t, "simulate", "1", "1", "1", "1", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "[ 1   x1    ]")
	assert.Contains(t, out, "[*5   x1.2  ]")
	assert.Contains(t, out, "selected: 5 -> https://awsimages.detik.net.id/")
}

func TestSimulate_JSON(t *testing.T) {
	out, err := execute(t, "simulate", "1", "1", "1", "1", "--format", "json")
	require.NoError(t, err)

	var snap grid.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "1", snap.Selected)
	require.Len(t, snap.Cells, 9)
	assert.Equal(t, 2.0, snap.Cells[0].Scale)
	assert.True(t, snap.Cells[0].AtMax)
	for _, c := range snap.Cells[1:] {
		assert.True(t, c.AtRest(), "cell %s", c.ID)
	}
}

func TestSimulate_YAMLTraceWithUnknownID(t *testing.T) {
	out, err := execute(t, "simulate", "2", "nope", "2", "--format", "yaml", "--trace")
	require.NoError(t, err)

	var steps []simulateStep
	require.NoError(t, yaml.Unmarshal([]byte(out), &steps))
	require.Len(t, steps, 3)

	assert.Empty(t, steps[0].Error)
	assert.Contains(t, steps[1].Error, "unknown cell")
	assert.Equal(t, steps[0].Grid, steps[1].Grid, "unknown id must leave the grid unchanged")
	assert.InDelta(t, 1.44, steps[2].Grid.Cells[1].Scale, 1e-9)
}

func TestSimulate_BadFormat(t *testing.T) {
	_, err := execute(t, "simulate", "1", "--format", "xml")
	assert.Error(t, err)
}

func TestCatalogValidate(t *testing.T) {
	out, err := execute(t, "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in: 9 image pairs, 3x3 grid")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("pairs:\n  - {id: a, primary: p, alternate: q}\n  - {id: a, primary: p, alternate: q}\n"), 0644))

	_, err = execute(t, "catalog", "validate", "--catalog", bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, grid.ErrInvalidCatalog), "got %v", err)
}

func TestCatalogList(t *testing.T) {
	out, err := execute(t, "catalog", "list")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Perfect 3×3 Grid"))
	assert.Equal(t, 9, strings.Count(out, "primary"))
	assert.Equal(t, 9, strings.Count(out, "alternate"))
}
