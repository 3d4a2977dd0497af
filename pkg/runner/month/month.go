// Package month prints a calendar marking the days that have entries.
package month

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/jotty/pkg/printers"
	"tableflip.dev/jotty/pkg/store"
	"tableflip.dev/jotty/pkg/timeutil"
)

type Month struct {
	Journal store.Backend
	On      timeutil.Day
	Today   timeutil.Day
	Out     io.Writer
}

func (m *Month) Do(ctx context.Context) error {
	if m.Journal == nil {
		return errors.New("can not print month, no journal")
	}
	count := func(d timeutil.Day) int {
		return m.Journal.EventsLen(d) + m.Journal.TasksLen(d)
	}
	pp := printers.PrettyPrint{Out: m.Out}
	pp.NewLine()
	pp.Month(m.On, count, m.Today)
	return m.Journal.Err()
}
