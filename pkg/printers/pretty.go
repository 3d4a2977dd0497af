package printers

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/jotty/pkg/entry"
	"tableflip.dev/jotty/pkg/glyph"
	"tableflip.dev/jotty/pkg/timeutil"
)

type PrettyPrint struct {
	ShowIndex bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Day prints both lists for day.
func (pp *PrettyPrint) Day(day timeutil.Day, events []entry.Event, tasks []entry.Task) {
	pp.Title("Jotty entry on " + day.Long())
	if len(events) == 0 && len(tasks) == 0 {
		pp.none("no entry for this date")
		return
	}
	pp.NewLine()
	pp.Events(events...)
	pp.Tasks(tasks...)
}

func (pp *PrettyPrint) Events(events ...entry.Event) {
	head := color.New(color.FgRed, color.Bold)
	_, _ = head.Fprintln(pp.out(), "Events")
	if len(events) == 0 {
		pp.none("none")
		return
	}
	bold := color.New(color.Bold)
	plain := color.New()
	tbl := pp.table()
	for i, e := range events {
		p := plain
		if e.Importance == entry.High {
			p = bold
		}
		pp.row(tbl, i, glyph.Event(e.Importance).Symbol, p.Sprint(e.Title))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) Tasks(tasks ...entry.Task) {
	head := color.New(color.FgYellow, color.Bold)
	_, _ = head.Fprintln(pp.out(), "Tasks")
	if len(tasks) == 0 {
		pp.none("none")
		return
	}
	done := color.New(color.Faint)
	plain := color.New()
	tbl := pp.table()
	for i, t := range tasks {
		p := plain
		if t.CompletionLevel == entry.Full {
			p = done
		}
		pp.row(tbl, i, glyph.Task(t.CompletionLevel).Symbol, p.Sprint(t.Title))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = " "
	tbl.Wrap = true
	tbl.MaxColWidth = 72
	return tbl
}

func (pp *PrettyPrint) row(tbl *uitable.Table, i int, symbol, title string) {
	if pp.ShowIndex {
		y := color.New(color.FgHiYellow, color.Faint)
		tbl.AddRow(y.Sprint(strconv.Itoa(i)), symbol, title)
		return
	}
	tbl.AddRow(symbol, title)
}

func (pp *PrettyPrint) none(msg string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), " %s\n\n", msg)
}
