package tui

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Faint    lipgloss.Style
	Accent   lipgloss.Style
	Warning  lipgloss.Style
	Frame    lipgloss.Style
	Help     lipgloss.Style

	Calendar CalendarTheme
}

// CalendarTheme groups the styles for the month grid.
type CalendarTheme struct {
	Header     lipgloss.Style
	Today      lipgloss.Style
	Selected   lipgloss.Style
	Stamped    lipgloss.Style
	Waiting    lipgloss.Style
	OtherMonth lipgloss.Style
}

// DefaultTheme returns the built-in theme used across the UI.
func DefaultTheme() Theme {
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	faint := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Body:     lipgloss.NewStyle(),
		Faint:    faint,
		Accent:   accent,
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(1, 2),
		Help: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Calendar: CalendarTheme{
			Header:     faint,
			Today:      lipgloss.NewStyle().Bold(true).Underline(true),
			Selected:   lipgloss.NewStyle().Reverse(true),
			Stamped:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
			Waiting:    lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
			OtherMonth: faint,
		},
	}
}
