package month

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/jotty/pkg/store"
	"tableflip.dev/jotty/pkg/timeutil"
)

func TestMonthPrintsCalendar(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	b := store.NewMemory()
	day := timeutil.Date(2025, time.October, 19)
	if err := b.InsertTask(day, 0); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	m := Month{Journal: b, On: day, Today: day, Out: &buf}
	if err := m.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "October 2025") || !strings.Contains(out, "19 20 21 22 23 24 25") {
		t.Fatalf("unexpected calendar %q", out)
	}
}
