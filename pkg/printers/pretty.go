// Package printers renders mailbox output for the CLI.
package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/starlight-letter/starlight/pkg/letter"
	"github.com/starlight-letter/starlight/pkg/settings"
	"github.com/starlight-letter/starlight/pkg/timeutil"
)

type PrettyPrint struct{}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Letter prints a day's record honoring the reveal rule: the reply body is
// withheld while the record's own day is still the current day.
func (pp *PrettyPrint) Letter(day timeutil.Day, rec *letter.Record, today timeutil.Day) {
	pp.Title(day.Long())
	fmt.Println("")

	state := letter.StateOf(rec, day, today)
	if state == letter.StateEmpty {
		pp.none("no letter for this day")
		return
	}

	h := color.New(color.Faint, color.Italic)
	body := color.New()

	_, _ = h.Println("your letter")
	_, _ = body.Println(indent(rec.User))
	fmt.Println("")

	switch state {
	case letter.StatePending:
		pp.none("no reply yet; fetch one with `starlight receive`")
	case letter.StateRepliedHidden:
		pp.none("the reply arrives tomorrow")
	case letter.StateRepliedVisible:
		_, _ = h.Printf("the reply  ·  stamp %s\n", rec.StampID)
		_, _ = body.Println(indent(rec.Reply))
	}
}

// Fortune prints a day's fortune message.
func (pp *PrettyPrint) Fortune(day timeutil.Day, text string) {
	pp.Title("Fortune for " + day.Long())
	fmt.Println("")
	fmt.Println(indent(text))
}

// Settings prints the configuration table with the API key masked.
func (pp *PrettyPrint) Settings(s settings.Settings) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Field"), bold.Sprint("Value"))
	for _, f := range settings.Fields() {
		v := s.Get(f)
		if v == "" {
			v = color.New(color.Faint).Sprint("(empty)")
		}
		tbl.AddRow(f, v)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
}

func (pp *PrettyPrint) none(msg string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Printf(" %s\n", msg)
}

func indent(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
