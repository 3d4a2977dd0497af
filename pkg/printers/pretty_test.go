package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/jotty/pkg/entry"
	"tableflip.dev/jotty/pkg/timeutil"
)

func plain(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	return &bytes.Buffer{}
}

var day = timeutil.Date(2025, time.October, 19)

func TestDayEmpty(t *testing.T) {
	buf := plain(t)
	pp := &PrettyPrint{Out: buf}
	pp.Day(day, nil, nil)
	out := buf.String()
	if !strings.Contains(out, "Jotty entry on Sunday, October 19, 2025") {
		t.Fatalf("expected title, got %q", out)
	}
	if !strings.Contains(out, "no entry for this date") {
		t.Fatalf("expected empty message, got %q", out)
	}
}

func TestDayLists(t *testing.T) {
	buf := plain(t)
	pp := &PrettyPrint{Out: buf, ShowIndex: true}
	pp.Day(day,
		[]entry.Event{{Title: "standup"}, {Title: "launch", Importance: entry.High}},
		[]entry.Task{{Title: "ship", CompletionLevel: entry.Partial}},
	)
	out := buf.String()
	for _, want := range []string{"Events", "0 - standup", "1 * launch", "Tasks", "0 ◐ ship"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestDayOneEmptyList(t *testing.T) {
	buf := plain(t)
	pp := &PrettyPrint{Out: buf}
	pp.Day(day, nil, []entry.Task{{Title: "ship"}})
	out := buf.String()
	if !strings.Contains(out, "Events\n none") || !strings.Contains(out, "○ ship") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMonth(t *testing.T) {
	buf := plain(t)
	pp := &PrettyPrint{Out: buf}
	pp.Month(day, func(d timeutil.Day) int { return 0 }, day)
	out := buf.String()
	want := "Su Mo Tu We Th Fr Sa\n" +
		strings.Repeat(" ", 9) + " 1  2  3  4\n" +
		" 5  6  7  8  9 10 11\n"
	if !strings.Contains(out, want) {
		t.Fatalf("expected %q in %q", want, out)
	}
	if !strings.HasSuffix(out, "26 27 28 29 30 31\n\n") {
		t.Fatalf("unexpected month tail %q", out)
	}
	if !strings.Contains(out, "October 2025") {
		t.Fatalf("expected month title in %q", out)
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		on   timeutil.Day
		want int
	}{
		{timeutil.Date(2024, time.February, 10), 29},
		{timeutil.Date(2025, time.February, 10), 28},
		{timeutil.Date(2025, time.December, 31), 31},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.on.Time()); got != tt.want {
			t.Fatalf("%s: expected %d, got %d", tt.on, tt.want, got)
		}
	}
	if got := FirstOfMonth(day); got != timeutil.Date(2025, time.October, 1) {
		t.Fatalf("expected first of october, got %s", got)
	}
}
