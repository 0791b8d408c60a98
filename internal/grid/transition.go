package grid

import (
	"fmt"
	"math"
)

// Initialize builds a grid with every cell at rest.
// The pairs must be non-empty with unique, non-blank ids.
func Initialize(pairs []ImagePair) (GridState, error) {
	if len(pairs) == 0 {
		return GridState{}, fmt.Errorf("%w: no image pairs", ErrInvalidCatalog)
	}

	s := GridState{
		ids:   make([]string, 0, len(pairs)),
		cells: make(map[string]CellState, len(pairs)),
	}
	for i, p := range pairs {
		if p.ID == "" {
			return GridState{}, fmt.Errorf("%w: pair %d has an empty id", ErrInvalidCatalog, i)
		}
		if _, dup := s.cells[p.ID]; dup {
			return GridState{}, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, p.ID)
		}
		s.ids = append(s.ids, p.ID)
		s.cells[p.ID] = restCell
	}
	return s, nil
}

// Activate applies one activation of the cell with the given id and returns the
// next snapshot. The target shows its alternate image and its scale grows by
// GrowthFactor, saturating at MaxScale; a target already at MaxScale keeps its
// state. Every other cell is reset to rest.
//
// An unknown id returns the input state unchanged with an error wrapping
// ErrUnknownCell. The input state is never modified.
func Activate(state GridState, id string) (GridState, error) {
	prev, ok := state.cells[id]
	if !ok {
		return state, fmt.Errorf("%w: %q", ErrUnknownCell, id)
	}

	next := GridState{
		ids:   state.ids,
		cells: make(map[string]CellState, len(state.cells)),
	}
	for _, other := range state.ids {
		next.cells[other] = restCell
	}
	next.cells[id] = grow(prev)
	return next, nil
}

// grow returns the target cell's next state.
func grow(c CellState) CellState {
	if IsAtMaxScale(c) {
		return c
	}
	return CellState{
		ShowingAlternate: true,
		Scale:            math.Min(c.Scale*GrowthFactor, MaxScale),
	}
}

// Outcome classifies what an activation did to its target.
type Outcome string

const (
	// OutcomeGrew means the target's scale increased.
	OutcomeGrew Outcome = "grew"
	// OutcomeCapped means the target was already at MaxScale.
	OutcomeCapped Outcome = "capped"
	// OutcomeUnknown means the id did not name a cell.
	OutcomeUnknown Outcome = "unknown"
)

// Transition records one activation for observers.
type Transition struct {
	ID      string
	Before  CellState
	After   CellState
	Reset   []string // previously activated cells forced back to rest
	Outcome Outcome
}

// describe builds the Transition record for an activation of id.
func describe(before, after GridState, id string, err error) Transition {
	t := Transition{ID: id}
	if err != nil {
		t.Outcome = OutcomeUnknown
		return t
	}
	t.Before, _ = before.Cell(id)
	t.After, _ = after.Cell(id)
	if t.Before.Scale == t.After.Scale && IsAtMaxScale(t.After) {
		t.Outcome = OutcomeCapped
	} else {
		t.Outcome = OutcomeGrew
	}
	before.Each(func(other string, c CellState) {
		if other != id && !c.AtRest() {
			t.Reset = append(t.Reset, other)
		}
	})
	return t
}
