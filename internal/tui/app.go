// Package tui provides the terminal host for the image grid.
//
// The App owns one grid.Model for the lifetime of the screen. Bubble Tea
// delivers key presses to Update one at a time, so activations reach the model
// strictly serialised.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/imagegrid/internal/catalog"
	"github.com/raphaelgruber/imagegrid/internal/grid"
	"github.com/raphaelgruber/imagegrid/internal/metrics"
)

// baseCellWidth is the inner width of a cell at scale 1.
const baseCellWidth = 16

// Options configures an App.
type Options struct {
	Catalog   *catalog.File
	LockAtMax bool // discard activations of cells already at max scale
	Session   string
	Logger    *slog.Logger
	Stats     *metrics.Collector
}

// App is the bubbletea model for the grid screen.
type App struct {
	grid      *grid.Model
	title     string
	columns   int
	lockAtMax bool
	session   string

	focus    int
	status   string
	warn     bool
	quitting bool

	keys  KeyMap
	help  help.Model
	theme Theme

	logger *slog.Logger
	stats  *metrics.Collector
	timer  *metrics.TimedObserver
}

// New mounts the grid screen: it builds the model with every cell at rest.
func New(opts Options) (App, error) {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	model, err := grid.NewModel(cat.Pairs)
	if err != nil {
		return App{}, fmt.Errorf("mount grid: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	stats := opts.Stats
	if stats == nil {
		stats = metrics.NewCollector()
	}
	timer := stats.Observer()
	model.SetObserver(timer)

	columns := cat.Columns
	if columns <= 0 {
		columns = catalog.DefaultColumns
	}

	return App{
		grid:      model,
		title:     cat.Title,
		columns:   columns,
		lockAtMax: opts.LockAtMax,
		session:   opts.Session,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     defaultTheme,
		logger:    logger,
		stats:     stats,
		timer:     timer,
	}, nil
}

// State returns the current grid snapshot.
func (m App) State() grid.GridState {
	return m.grid.State()
}

// Focus returns the id of the focused cell.
func (m App) Focus() string {
	p, _ := m.grid.At(m.focus)
	return p.ID
}

// Status returns the current status line text.
func (m App) Status() string {
	return m.status
}

// Init returns the initial command.
func (m App) Init() tea.Cmd {
	return nil
}

// Update handles messages and returns the updated model.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Reset):
			m.grid.Reset()
			m.stats.RecordReset()
			m.logger.Info("grid reset")
			m.setStatus("All images back to rest", false)

		case key.Matches(msg, m.keys.Up):
			m.moveFocus(-m.columns)
		case key.Matches(msg, m.keys.Down):
			m.moveFocus(m.columns)
		case key.Matches(msg, m.keys.Left):
			m.moveFocus(-1)
		case key.Matches(msg, m.keys.Right):
			m.moveFocus(1)

		case key.Matches(msg, m.keys.Activate):
			m.activate(m.Focus())

		case key.Matches(msg, m.keys.Jump):
			n, _ := strconv.Atoi(msg.String())
			p, ok := m.grid.At(n - 1)
			if !ok {
				m.setStatus(fmt.Sprintf("No image at position %d", n), true)
				return m, nil
			}
			m.focus = n - 1
			m.activate(p.ID)
		}
	}

	return m, nil
}

// moveFocus shifts focus by delta cells, staying inside the grid.
func (m *App) moveFocus(delta int) {
	next := m.focus + delta
	if next < 0 || next >= m.grid.State().Len() {
		return
	}
	// Horizontal moves do not wrap to the next row.
	if (delta == 1 || delta == -1) && next/m.columns != m.focus/m.columns {
		return
	}
	m.focus = next
}

// activate forwards one activation to the model, unless the host is locking
// cells at max scale.
func (m *App) activate(id string) {
	if c, ok := m.grid.State().Cell(id); ok && m.lockAtMax && grid.IsAtMaxScale(c) {
		m.stats.RecordBlocked(id)
		m.logger.Debug("activation blocked at max scale", "id", id)
		m.setStatus(fmt.Sprintf("Image %s is already at max scale", id), false)
		return
	}

	m.timer.Start()
	state, err := m.grid.Activate(id)
	if err != nil {
		if errors.Is(err, grid.ErrUnknownCell) {
			m.logger.Warn("ignoring activation", "id", id, "error", err)
			m.setStatus(err.Error(), true)
			return
		}
		m.logger.Error("activation failed", "id", id, "error", err)
		m.setStatus(err.Error(), true)
		return
	}

	c, _ := state.Cell(id)
	m.logger.Info("cell activated",
		"id", id,
		"scale", c.Scale,
		"at_max", grid.IsAtMaxScale(c),
	)
	if grid.IsAtMaxScale(c) {
		m.setStatus(fmt.Sprintf("Image %s at max scale (x%s)", id, grid.FormatScale(c.Scale)), false)
	} else {
		m.setStatus(fmt.Sprintf("Image %s scaled to x%s", id, grid.FormatScale(c.Scale)), false)
	}
}

func (m *App) setStatus(s string, warn bool) {
	m.status = s
	m.warn = warn
}

// View renders the grid screen.
func (m App) View() tea.View {
	return tea.NewView(m.renderContent())
}

// renderContent builds the display string.
func (m App) renderContent() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.titleStyle().Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")

	if m.status != "" {
		if m.warn {
			b.WriteString(m.theme.warnStyle().Render(m.status))
		} else {
			b.WriteString(m.status)
		}
		b.WriteString("\n")
	}
	if m.session != "" {
		b.WriteString(m.theme.hintStyle().Render("session " + m.session))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// renderGrid lays the cells out in rows of m.columns.
func (m App) renderGrid() string {
	state := m.grid.State()
	pairs := m.grid.Pairs()

	var rows []string
	for start := 0; start < len(pairs); start += m.columns {
		end := min(start+m.columns, len(pairs))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			c, _ := state.Cell(pairs[i].ID)
			cells = append(cells, m.renderCell(pairs[i], c, i == m.focus))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCell draws one cell. Width grows with the cell's scale.
func (m App) renderCell(pair grid.ImagePair, c grid.CellState, focused bool) string {
	width := int(float64(baseCellWidth) * c.Scale)
	inner := width - 2

	kind := "primary"
	if c.ShowingAlternate {
		kind = "alternate"
	}

	lines := []string{
		"Image " + pair.ID,
		m.theme.labelStyle(c.ShowingAlternate).Render(kind),
		shortURI(c.URI(pair), inner),
		"x" + grid.FormatScale(c.Scale),
	}
	return m.theme.cellStyle(width, focused, grid.IsAtMaxScale(c)).Render(strings.Join(lines, "\n"))
}

// shortURI trims a locator to its last path element and at most width runes.
func shortURI(uri string, width int) string {
	s := uri
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = path.Base(s)

	r := []rune(s)
	if width > 0 && len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s
}

// Run mounts the grid screen and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options, progOpts ...tea.ProgramOption) error {
	app, err := New(opts)
	if err != nil {
		return err
	}

	progOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)
	p := tea.NewProgram(app, progOpts...)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("grid UI error: %w", err)
	}
	return nil
}
