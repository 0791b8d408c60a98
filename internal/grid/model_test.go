package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel(t *testing.T) {
	m, err := NewModel(ninePairs())
	require.NoError(t, err)

	assert.Equal(t, 9, m.State().Len())
	assert.Len(t, m.Pairs(), 9)

	p, ok := m.Pair("4")
	require.True(t, ok)
	assert.Equal(t, "4", p.ID)

	p, ok = m.At(8)
	require.True(t, ok)
	assert.Equal(t, "9", p.ID)

	_, ok = m.At(9)
	assert.False(t, ok)
	_, ok = m.Pair("nope")
	assert.False(t, ok)
}

func TestNewModel_InvalidCatalog(t *testing.T) {
	_, err := NewModel(nil)
	assert.True(t, errors.Is(err, ErrInvalidCatalog))
}

func TestModel_PairsIsACopy(t *testing.T) {
	pairs := ninePairs()
	m, err := NewModel(pairs)
	require.NoError(t, err)

	pairs[0].ID = "changed"
	got := m.Pairs()
	got[1].ID = "changed"

	p, _ := m.At(0)
	assert.Equal(t, "1", p.ID)
	p, _ = m.At(1)
	assert.Equal(t, "2", p.ID)
}

func TestModel_ActivateAndReset(t *testing.T) {
	m, err := NewModel(ninePairs())
	require.NoError(t, err)

	_, err = m.Activate("2")
	require.NoError(t, err)
	s, err := m.Activate("2")
	require.NoError(t, err)

	c, _ := m.State().Cell("2")
	assert.InDelta(t, 1.44, c.Scale, 1e-9)
	assert.Equal(t, s.Snapshot(), m.State().Snapshot())

	m.Reset()
	_, ok := m.State().Selected()
	assert.False(t, ok)
}

func TestModel_UnknownCellKeepsState(t *testing.T) {
	m, err := NewModel(ninePairs())
	require.NoError(t, err)
	_, err = m.Activate("3")
	require.NoError(t, err)
	before := m.State().Snapshot()

	_, err = m.Activate("42")
	assert.True(t, errors.Is(err, ErrUnknownCell))
	assert.Equal(t, before, m.State().Snapshot())
}

func TestModel_Observer(t *testing.T) {
	m, err := NewModel(ninePairs())
	require.NoError(t, err)

	var seen []Transition
	m.SetObserver(ObserverFunc(func(tr Transition) {
		seen = append(seen, tr)
	}))

	for _, id := range []string{"1", "1", "1", "1", "1", "5", "x"} {
		_, _ = m.Activate(id)
	}

	require.Len(t, seen, 7)

	outcomes := make([]Outcome, 0, len(seen))
	for _, tr := range seen {
		outcomes = append(outcomes, tr.Outcome)
	}
	assert.Equal(t, []Outcome{
		OutcomeGrew, OutcomeGrew, OutcomeGrew, OutcomeGrew,
		OutcomeCapped,
		OutcomeGrew,
		OutcomeUnknown,
	}, outcomes)

	assert.InDelta(t, 1.728, seen[3].Before.Scale, 1e-9)
	assert.Equal(t, MaxScale, seen[3].After.Scale)
	assert.Empty(t, seen[0].Reset)
	assert.Equal(t, []string{"1"}, seen[5].Reset)
	assert.Equal(t, "x", seen[6].ID)
}
