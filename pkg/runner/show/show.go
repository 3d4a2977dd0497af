// Package show prints one day of the journal.
package show

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"

	"tableflip.dev/jotty/pkg/entry"
	"tableflip.dev/jotty/pkg/printers"
	"tableflip.dev/jotty/pkg/store"
	"tableflip.dev/jotty/pkg/timeutil"
)

type Show struct {
	Journal   store.Backend
	On        timeutil.Day
	JSON      bool
	ShowIndex bool
	Out       io.Writer
}

// Day is the JSON form of a printed day.
type Day struct {
	Date   string        `json:"date"`
	Events []entry.Event `json:"events"`
	Tasks  []entry.Task  `json:"tasks"`
}

func (s *Show) Do(ctx context.Context) error {
	if s.Journal == nil {
		return errors.New("can not show, no journal")
	}
	out := s.Out
	if out == nil {
		out = color.Output
	}

	events := slices.Collect(s.Journal.Events(s.On))
	tasks := slices.Collect(s.Journal.Tasks(s.On))
	if err := s.Journal.Err(); err != nil {
		return err
	}

	if s.JSON {
		d := Day{Date: s.On.Key(), Events: events, Tasks: tasks}
		if d.Events == nil {
			d.Events = []entry.Event{}
		}
		if d.Tasks == nil {
			d.Tasks = []entry.Task{}
		}
		b, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	pp := printers.PrettyPrint{ShowIndex: s.ShowIndex, Out: out}
	pp.NewLine()
	pp.Day(s.On, events, tasks)
	return nil
}
