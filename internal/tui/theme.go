package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the color scheme for the grid screen.
type Theme struct {
	Title   lipgloss.Color
	Border  lipgloss.Color
	Focus   lipgloss.Color
	MaxEdge lipgloss.Color
	Label   lipgloss.Color
	Hint    lipgloss.Color
	Warn    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Title:   lipgloss.Color("#333333"), // header text
	Border:  lipgloss.Color("#6C6C6C"), // dim gray
	Focus:   lipgloss.Color("#5FAFD7"), // light blue
	MaxEdge: lipgloss.Color("#FF4500"), // orange red, max scale indicator
	Label:   lipgloss.Color("#00D787"), // green
	Hint:    lipgloss.Color("#6C6C6C"),
	Warn:    lipgloss.Color("#FF005F"), // red
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1)
}

// cellStyle returns the box style of one cell.
func (t Theme) cellStyle(width int, focused, atMax bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	switch {
	case atMax:
		s = s.Border(lipgloss.ThickBorder()).BorderForeground(t.MaxEdge)
	case focused:
		s = s.BorderForeground(t.Focus)
	}
	if focused {
		s = s.Bold(true)
	}
	return s
}

func (t Theme) labelStyle(alternate bool) lipgloss.Style {
	s := lipgloss.NewStyle()
	if alternate {
		s = s.Foreground(t.Label)
	}
	return s
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) warnStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warn).Bold(true)
}
