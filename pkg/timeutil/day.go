// Package timeutil provides the calendar-day key used throughout starlight.
// Letters and fortunes are keyed by the local calendar day, never by a full
// timestamp.
package timeutil

import (
	"fmt"
	"time"
)

const LayoutISO = "2006-01-02"

// Day identifies a single calendar date in the machine's local time zone.
// The zero Day is not a valid key.
type Day struct {
	year  int
	month time.Month
	day   int
}

// Today returns the current local calendar day.
func Today() Day {
	return On(time.Now())
}

// On truncates a moment to its local calendar day.
func On(t time.Time) Day {
	y, m, d := t.Local().Date()
	return Day{year: y, month: m, day: d}
}

// Date constructs a Day directly. Out-of-range values are normalized the way
// time.Date normalizes them.
func Date(year int, month time.Month, day int) Day {
	return On(time.Date(year, month, day, 12, 0, 0, 0, time.Local))
}

// Parse reads a YYYY-MM-DD key.
func Parse(s string) (Day, error) {
	t, err := time.ParseInLocation(LayoutISO, s, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("timeutil: parse day %q: %w", s, err)
	}
	return On(t), nil
}

// Time returns local noon on the day, a safe anchor for calendar math.
func (d Day) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 12, 0, 0, 0, time.Local)
}

func (d Day) Year() int         { return d.year }
func (d Day) Month() time.Month { return d.month }
func (d Day) DayOfMonth() int   { return d.day }

func (d Day) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

func (d Day) Equal(other Day) bool {
	return d == other
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

func (d Day) After(other Day) bool {
	return other.Before(d)
}

// AddDays returns the day n calendar days later (earlier when negative).
func (d Day) AddDays(n int) Day {
	return On(d.Time().AddDate(0, 0, n))
}

// AddMonths shifts by whole months, clamping to the first of the month so
// navigating from January 31 lands in February, not March.
func (d Day) AddMonths(n int) Day {
	first := time.Date(d.year, d.month, 1, 12, 0, 0, 0, time.Local)
	return On(first.AddDate(0, n, 0))
}

// Weekday returns the weekday of the date (Sunday == 0).
func (d Day) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// String formats the key as YYYY-MM-DD.
func (d Day) String() string {
	return d.Time().Format(LayoutISO)
}

// Long formats the date for display, e.g. "January 2, 2006".
func (d Day) Long() string {
	return d.Time().Format("January 2, 2006")
}

// MarshalText lets Day serve directly as a JSON map key.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
