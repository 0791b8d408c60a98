// Package grid implements the exclusive-selection model behind the image grid.
//
// A grid is a fixed, ordered set of cells, one per ImagePair. Activating a cell
// shows its alternate image and grows its scale by GrowthFactor up to MaxScale;
// every other cell falls back to rest. Snapshots are immutable values, so a host
// can keep the previous one around while rendering the next.
package grid

import (
	"fmt"
	"math"
)

const (
	// RestScale is the scale of a cell showing its primary image.
	RestScale = 1.0
	// GrowthFactor multiplies the scale of the activated cell.
	GrowthFactor = 1.2
	// MaxScale caps the scale of the activated cell.
	MaxScale = 2.0
)

// ImagePair binds a cell id to its two image locators.
type ImagePair struct {
	ID           string `json:"id" yaml:"id"`
	PrimaryURI   string `json:"primary" yaml:"primary"`
	AlternateURI string `json:"alternate" yaml:"alternate"`
}

// CellState is the display state of one cell.
type CellState struct {
	ShowingAlternate bool    `json:"showing_alternate" yaml:"showing_alternate"`
	Scale            float64 `json:"scale" yaml:"scale"`
}

// restCell is the state every cell starts in.
var restCell = CellState{ShowingAlternate: false, Scale: RestScale}

// AtRest reports whether the cell shows its primary image at scale 1.
func (c CellState) AtRest() bool {
	return !c.ShowingAlternate && c.Scale == RestScale
}

// URI returns the locator the host should display for this cell.
func (c CellState) URI(pair ImagePair) string {
	if c.ShowingAlternate {
		return pair.AlternateURI
	}
	return pair.PrimaryURI
}

// String formats the cell for logs and text output.
func (c CellState) String() string {
	image := "primary"
	if c.ShowingAlternate {
		image = "alternate"
	}
	return fmt.Sprintf("%s x%s", image, FormatScale(c.Scale))
}

// IsAtMaxScale reports whether the cell has reached MaxScale.
// Hosts use it to flag the cell and, optionally, to stop accepting input for it.
func IsAtMaxScale(c CellState) bool {
	return c.Scale >= MaxScale
}

// FormatScale renders a scale with at most three decimals and no trailing zeros.
func FormatScale(scale float64) string {
	s := fmt.Sprintf("%.3f", math.Round(scale*1000)/1000)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// GridState is an immutable snapshot of every cell, keyed by image pair id.
// The zero value is an empty grid.
type GridState struct {
	ids   []string
	cells map[string]CellState
}

// Len returns the number of cells.
func (s GridState) Len() int {
	return len(s.ids)
}

// IDs returns the cell ids in catalog order.
func (s GridState) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Cell returns the state of the cell with the given id.
func (s GridState) Cell(id string) (CellState, bool) {
	c, ok := s.cells[id]
	return c, ok
}

// Has reports whether id names a cell of this grid.
func (s GridState) Has(id string) bool {
	_, ok := s.cells[id]
	return ok
}

// Each calls fn for every cell in catalog order.
func (s GridState) Each(fn func(id string, c CellState)) {
	for _, id := range s.ids {
		fn(id, s.cells[id])
	}
}

// Selected returns the id of the activated cell, if any.
func (s GridState) Selected() (string, bool) {
	for _, id := range s.ids {
		if !s.cells[id].AtRest() {
			return id, true
		}
	}
	return "", false
}

// Snapshot is a serialisable view of a GridState.
type Snapshot struct {
	Selected string      `json:"selected,omitempty" yaml:"selected,omitempty"`
	Cells    []CellEntry `json:"cells" yaml:"cells"`
}

// CellEntry is one row of a Snapshot.
type CellEntry struct {
	ID        string `json:"id" yaml:"id"`
	CellState `yaml:",inline"`
	AtMax     bool `json:"at_max" yaml:"at_max"`
}

// Snapshot converts the state into an ordered, serialisable form.
func (s GridState) Snapshot() Snapshot {
	snap := Snapshot{Cells: make([]CellEntry, 0, len(s.ids))}
	snap.Selected, _ = s.Selected()
	s.Each(func(id string, c CellState) {
		snap.Cells = append(snap.Cells, CellEntry{ID: id, CellState: c, AtMax: IsAtMaxScale(c)})
	})
	return snap
}
