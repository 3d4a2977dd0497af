// Package key provides CLI helpers to display the glyph legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/jotty/pkg/glyph"
)

// Key prints what each event and task glyph means.
type Key struct {
	// Out defaults to color.Output.
	Out io.Writer
}

// Do renders the event and task keys.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, "")

	var events, tasks []glyph.Glyph
	for _, g := range glyph.Legend() {
		if g.Event {
			events = append(events, g)
		} else {
			tasks = append(tasks, g)
		}
	}
	k.Key(ctx, out, "Events", events)
	_, _ = fmt.Fprintln(out, "")
	k.Key(ctx, out, "Tasks", tasks)
	_, _ = fmt.Fprintln(out, "")
	return nil
}

// Key renders one glyph table under heading.
func (k *Key) Key(_ context.Context, out io.Writer, heading string, glyfs []glyph.Glyph) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(heading), bold.Sprint("Meaning"))
	for _, v := range glyfs {
		tbl.AddRow(v.Symbol, v.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
}
