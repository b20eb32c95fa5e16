package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/starlight-letter/starlight/pkg/calendar"
	"github.com/starlight-letter/starlight/pkg/letter"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the archive month grid. Days carrying a revealed
// stamped reply are bright, pending and still-hidden days dim, today
// underlined.
func (pp *PrettyPrint) Calendar(year int, month time.Month, letters map[timeutil.Day]*letter.Record, today timeutil.Day) {
	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", month.String(), year)
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	tf.Printf("%s%s\n", strings.Repeat(" ", mid), m)

	other := color.New(color.Faint)
	empty := color.New(color.FgWhite)
	waiting := color.New(color.Faint, color.FgHiYellow)
	stamped := color.New(color.Bold, color.FgHiWhite)
	todayC := color.New(color.Bold, color.Underline)

	for _, week := range calendar.Weeks(calendar.Month(year, month, letters, today)) {
		for _, cell := range week {
			printer := empty
			switch {
			case cell.OtherMonth:
				printer = other
			case cell.StampID != "":
				printer = stamped
			case cell.State == letter.StatePending || cell.State == letter.StateRepliedHidden:
				printer = waiting
			}
			if cell.Today {
				printer = todayC
			}
			printer.Printf("%2d", cell.Day)
			fmt.Print(" ")
		}
		fmt.Print("\n")
	}
	fmt.Print("\n")
}
