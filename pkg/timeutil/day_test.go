package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseRoundTrip(t *testing.T) {
	d, err := Parse("2026-02-28")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := d.String(); got != "2026-02-28" {
		t.Fatalf("expected 2026-02-28, got %s", got)
	}
	if d.Year() != 2026 || d.Month() != time.February || d.DayOfMonth() != 28 {
		t.Fatalf("unexpected components: %v", d)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "today", "2026/01/01", "2026-13-01"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestBeforeOrdering(t *testing.T) {
	a, _ := Parse("2025-12-31")
	b, _ := Parse("2026-01-01")
	if !a.Before(b) {
		t.Fatalf("expected %s before %s", a, b)
	}
	if b.Before(a) {
		t.Fatalf("did not expect %s before %s", b, a)
	}
	if a.Before(a) {
		t.Fatalf("a day is not before itself")
	}
	if !b.After(a) {
		t.Fatalf("expected %s after %s", b, a)
	}
}

func TestAddDaysCrossesMonths(t *testing.T) {
	d, _ := Parse("2026-01-31")
	if got := d.AddDays(1).String(); got != "2026-02-01" {
		t.Fatalf("expected 2026-02-01, got %s", got)
	}
	if got := d.AddDays(-31).String(); got != "2025-12-31" {
		t.Fatalf("expected 2025-12-31, got %s", got)
	}
}

func TestAddMonthsClampsToFirst(t *testing.T) {
	d, _ := Parse("2026-01-31")
	next := d.AddMonths(1)
	if next.Month() != time.February || next.Year() != 2026 {
		t.Fatalf("expected February 2026, got %v %d", next.Month(), next.Year())
	}
	prev := d.AddMonths(-1)
	if prev.Month() != time.December || prev.Year() != 2025 {
		t.Fatalf("expected December 2025, got %v %d", prev.Month(), prev.Year())
	}
}

func TestDayAsJSONMapKey(t *testing.T) {
	d, _ := Parse("2026-08-29")
	in := map[Day]string{d: "hello"}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"2026-08-29":"hello"}` {
		t.Fatalf("unexpected encoding: %s", data)
	}

	out := map[Day]string{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out[d] != "hello" {
		t.Fatalf("round trip lost value: %v", out)
	}
}
