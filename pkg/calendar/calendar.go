// Package calendar projects the letter map onto month grids for the archive
// view. The projection is a pure function of its inputs; it owns no state.
package calendar

import (
	"time"

	"github.com/starlight-letter/starlight/pkg/letter"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

// Cell is one day slot in a 7-column month grid.
type Cell struct {
	Date       timeutil.Day
	Day        int
	OtherMonth bool
	Today      bool

	// State is the lifecycle state of the date's record as seen today.
	State letter.State
	// StampID is set only when the stamp decoration may be shown: the
	// record carries a reply and a stamp, and the date is not today.
	StampID string
}

// Month lays out the grid for the given month. Leading cells come from the
// previous month and trailing cells from the next, padding to complete
// weeks; the result length is always a multiple of 7 (Sunday first).
func Month(year int, month time.Month, letters map[timeutil.Day]*letter.Record, today timeutil.Day) []Cell {
	first := timeutil.Date(year, month, 1)
	lead := int(first.Weekday()) // Sunday == 0
	days := daysIn(year, month)

	total := lead + days
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	cells := make([]Cell, 0, total)
	for i := 0; i < total; i++ {
		date := first.AddDays(i - lead)
		rec := letters[date]

		cell := Cell{
			Date:       date,
			Day:        date.DayOfMonth(),
			OtherMonth: i < lead || i >= lead+days,
			Today:      date.Equal(today),
			State:      letter.StateOf(rec, date, today),
		}
		// The stamp stays under wraps along with the reply until the
		// date has passed.
		if rec.Replied() && rec.StampID != "" && !cell.Today {
			cell.StampID = rec.StampID
		}
		cells = append(cells, cell)
	}
	return cells
}

// Weeks slices a Month projection into rows of 7.
func Weeks(cells []Cell) [][]Cell {
	rows := make([][]Cell, 0, len(cells)/7)
	for i := 0; i+7 <= len(cells); i += 7 {
		rows = append(rows, cells[i:i+7])
	}
	return rows
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.Local).Day()
}
