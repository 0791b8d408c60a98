package grid

import "slices"

// Observer is notified after every activation handled by a Model.
type Observer interface {
	Observe(t Transition)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(t Transition)

// Observe calls f(t).
func (f ObserverFunc) Observe(t Transition) { f(t) }

// Model owns the catalog and the current GridState of one screen.
// It is not safe for concurrent use; hosts serialise activations.
type Model struct {
	pairs    []ImagePair
	index    map[string]int
	state    GridState
	observer Observer
}

// NewModel validates the catalog and returns a model with every cell at rest.
func NewModel(pairs []ImagePair) (*Model, error) {
	state, err := Initialize(pairs)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(pairs))
	for i, p := range pairs {
		index[p.ID] = i
	}

	return &Model{
		pairs: slices.Clone(pairs),
		index: index,
		state: state,
	}, nil
}

// SetObserver installs o as the activation observer. Nil disables it.
func (m *Model) SetObserver(o Observer) {
	m.observer = o
}

// Pairs returns the catalog in grid order.
func (m *Model) Pairs() []ImagePair {
	return slices.Clone(m.pairs)
}

// Pair returns the image pair with the given id.
func (m *Model) Pair(id string) (ImagePair, bool) {
	i, ok := m.index[id]
	if !ok {
		return ImagePair{}, false
	}
	return m.pairs[i], true
}

// At returns the image pair at position i in grid order.
func (m *Model) At(i int) (ImagePair, bool) {
	if i < 0 || i >= len(m.pairs) {
		return ImagePair{}, false
	}
	return m.pairs[i], true
}

// State returns the current snapshot.
func (m *Model) State() GridState {
	return m.state
}

// Activate applies an activation to the current state and returns the new
// snapshot. See Activate for the transition rule and the unknown id policy.
func (m *Model) Activate(id string) (GridState, error) {
	before := m.state
	next, err := Activate(before, id)
	m.state = next

	if m.observer != nil {
		m.observer.Observe(describe(before, next, id, err))
	}
	return next, err
}

// Reset puts every cell back to rest, as on a fresh mount of the screen.
func (m *Model) Reset() GridState {
	// The catalog was validated in NewModel.
	m.state, _ = Initialize(m.pairs)
	return m.state
}
