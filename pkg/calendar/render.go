package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/starlight-letter/starlight/pkg/letter"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

// Options controls the styling of the rendered calendar.
type Options struct {
	HeaderStyle     lipgloss.Style
	OtherMonthStyle lipgloss.Style
	EmptyStyle      lipgloss.Style
	PendingStyle    lipgloss.Style
	StampedStyle    lipgloss.Style
	TodayStyle      lipgloss.Style
	SelectedStyle   lipgloss.Style
	ShowHeader      bool

	// Selected highlights one date, used by the TUI cursor.
	Selected timeutil.Day
}

// Render produces a multi-line month grid for the archive view.
func Render(year int, month time.Month, letters map[timeutil.Day]*letter.Record, today timeutil.Day, opts Options) string {
	cells := Month(year, month, letters, today)

	var lines []string
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render("Su Mo Tu We Th Fr Sa"))
	}

	for _, week := range Weeks(cells) {
		var rendered []string
		for _, cell := range week {
			rendered = append(rendered, renderCell(cell, opts))
		}
		lines = append(lines, strings.TrimRight(strings.Join(rendered, " "), " "))
	}

	return strings.Join(lines, "\n")
}

func renderCell(cell Cell, opts Options) string {
	label := fmt.Sprintf("%2d", cell.Day)

	style := opts.EmptyStyle
	switch {
	case cell.OtherMonth:
		style = opts.OtherMonthStyle
	case cell.StampID != "":
		style = opts.StampedStyle
	case cell.State == letter.StatePending || cell.State == letter.StateRepliedHidden:
		style = opts.PendingStyle
	}
	if cell.Today {
		style = style.Inherit(opts.TodayStyle)
	}
	if !opts.Selected.IsZero() && cell.Date.Equal(opts.Selected) {
		style = style.Inherit(opts.SelectedStyle)
	}
	return style.Render(label)
}
