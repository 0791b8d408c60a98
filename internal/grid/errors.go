package grid

import "errors"

// Sentinel errors for grid operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrInvalidCatalog indicates the image pair catalog cannot back a grid:
	// it is empty, has a blank id, or repeats an id.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrUnknownCell indicates an activation for an id that is not in the grid.
	// The state returned alongside it is the unchanged input state.
	ErrUnknownCell = errors.New("unknown cell")
)
