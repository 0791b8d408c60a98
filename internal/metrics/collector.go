// Package metrics provides in-memory statistics for a grid session.
package metrics

import (
	"math"
	"slices"
	"sync"
	"time"

	"github.com/raphaelgruber/imagegrid/internal/grid"
)

// TimingMetrics holds aggregated transition timings.
type TimingMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// TimingSnapshot provides computed stats from raw timings.
type TimingSnapshot struct {
	Count       int64   `json:"count" yaml:"count"`
	TotalTimeUs int64   `json:"total_time_us" yaml:"total_time_us"`
	AvgTimeUs   float64 `json:"avg_time_us" yaml:"avg_time_us"`
	MinTimeUs   int64   `json:"min_time_us" yaml:"min_time_us"`
	MaxTimeUs   int64   `json:"max_time_us" yaml:"max_time_us"`
}

// CellSnapshot is the activation count of one cell.
type CellSnapshot struct {
	ID          string `json:"id" yaml:"id"`
	Activations int64  `json:"activations" yaml:"activations"`
	Capped      int64  `json:"capped" yaml:"capped"`
	Blocked     int64  `json:"blocked" yaml:"blocked"`
}

// Snapshot represents the session statistics at a point in time.
type Snapshot struct {
	UptimeSeconds float64         `json:"uptime_seconds" yaml:"uptime_seconds"`
	Activations   int64           `json:"activations" yaml:"activations"`
	Grew          int64           `json:"grew" yaml:"grew"`
	Capped        int64           `json:"capped" yaml:"capped"`
	Unknown       int64           `json:"unknown" yaml:"unknown"`
	Blocked       int64           `json:"blocked" yaml:"blocked"`
	Resets        int64           `json:"resets" yaml:"resets"`
	Transitions   *TimingSnapshot `json:"transitions,omitempty" yaml:"transitions,omitempty"`
	Cells         []CellSnapshot  `json:"cells" yaml:"cells"`
}

type cellCounts struct {
	activations int64
	capped      int64
	blocked     int64
}

// Collector aggregates session statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	outcomes  map[grid.Outcome]int64
	blocked   int64
	resets    int64
	timing    TimingMetrics
	cells     map[string]*cellCounts
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		outcomes:  make(map[grid.Outcome]int64),
		timing:    TimingMetrics{MinTime: time.Duration(math.MaxInt64)},
		cells:     make(map[string]*cellCounts),
	}
}

// getOrCreate returns existing counts or creates new ones for a cell.
// Caller must hold write lock.
func (c *Collector) getOrCreate(id string) *cellCounts {
	cc, ok := c.cells[id]
	if !ok {
		cc = &cellCounts{}
		c.cells[id] = cc
	}
	return cc
}

// RecordTransition records one activation handled by the model.
// Unknown ids are counted but not tracked per cell.
func (c *Collector) RecordTransition(t grid.Transition, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.outcomes[t.Outcome]++

	c.timing.Count++
	c.timing.TotalTime += duration
	if duration < c.timing.MinTime {
		c.timing.MinTime = duration
	}
	if duration > c.timing.MaxTime {
		c.timing.MaxTime = duration
	}

	if t.Outcome == grid.OutcomeUnknown {
		return
	}
	cc := c.getOrCreate(t.ID)
	cc.activations++
	if t.Outcome == grid.OutcomeCapped {
		cc.capped++
	}
}

// RecordBlocked records an activation the host discarded before the model.
func (c *Collector) RecordBlocked(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocked++
	c.getOrCreate(id).blocked++
}

// RecordReset records a whole-grid reset.
func (c *Collector) RecordReset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resets++
}

// Snapshot returns a point-in-time snapshot of all metrics.
// Cells are sorted by id.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
		Grew:          c.outcomes[grid.OutcomeGrew],
		Capped:        c.outcomes[grid.OutcomeCapped],
		Unknown:       c.outcomes[grid.OutcomeUnknown],
		Blocked:       c.blocked,
		Resets:        c.resets,
		Cells:         make([]CellSnapshot, 0, len(c.cells)),
	}
	snap.Activations = snap.Grew + snap.Capped + snap.Unknown

	if c.timing.Count > 0 {
		snap.Transitions = &TimingSnapshot{
			Count:       c.timing.Count,
			TotalTimeUs: c.timing.TotalTime.Microseconds(),
			AvgTimeUs:   float64(c.timing.TotalTime.Microseconds()) / float64(c.timing.Count),
			MinTimeUs:   c.timing.MinTime.Microseconds(),
			MaxTimeUs:   c.timing.MaxTime.Microseconds(),
		}
	}

	for id, cc := range c.cells {
		snap.Cells = append(snap.Cells, CellSnapshot{
			ID:          id,
			Activations: cc.activations,
			Capped:      cc.capped,
			Blocked:     cc.blocked,
		})
	}
	slices.SortFunc(snap.Cells, func(a, b CellSnapshot) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	return snap
}

// Observer returns a grid.Observer that records every transition with the time
// elapsed since the previous call to Start, typically set just before
// Model.Activate.
func (c *Collector) Observer() *TimedObserver {
	return &TimedObserver{collector: c}
}

// TimedObserver measures the duration of one activation.
type TimedObserver struct {
	collector *Collector
	started   time.Time
}

// Start marks the beginning of an activation.
func (o *TimedObserver) Start() {
	o.started = time.Now()
}

// Observe implements grid.Observer.
func (o *TimedObserver) Observe(t grid.Transition) {
	var d time.Duration
	if !o.started.IsZero() {
		d = time.Since(o.started)
	}
	o.collector.RecordTransition(t, d)
	o.started = time.Time{}
}
