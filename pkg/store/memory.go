package store

import (
	"iter"

	"tableflip.dev/jotty/pkg/entry"
	"tableflip.dev/jotty/pkg/timeutil"
)

// Memory is a volatile Backend backed by a map from day to its entry. It
// cannot fault; only ErrIndex is ever returned.
type Memory struct {
	days map[timeutil.Day]*dayEntry
}

var _ Backend = (*Memory)(nil)

// NewMemory returns an empty in-memory journal.
func NewMemory() *Memory {
	return &Memory{days: make(map[timeutil.Day]*dayEntry)}
}

func (m *Memory) entry(day timeutil.Day) *dayEntry {
	d, ok := m.days[day]
	if !ok {
		d = &dayEntry{}
		m.days[day] = d
	}
	return d
}

func (m *Memory) lookup(day timeutil.Day) *dayEntry {
	if d, ok := m.days[day]; ok {
		return d
	}
	return &dayEntry{}
}

func (m *Memory) InsertEvent(day timeutil.Day, i int) error {
	d := m.entry(day)
	events, err := insertAt(d.Events, i, "event")
	if err != nil {
		return err
	}
	d.Events = events
	return nil
}

func (m *Memory) InsertTask(day timeutil.Day, i int) error {
	d := m.entry(day)
	tasks, err := insertAt(d.Tasks, i, "task")
	if err != nil {
		return err
	}
	d.Tasks = tasks
	return nil
}

func (m *Memory) DeleteEvent(day timeutil.Day, i int) error {
	d := m.lookup(day)
	events, err := deleteAt(d.Events, i, "event")
	if err != nil {
		return err
	}
	d.Events = events
	return nil
}

func (m *Memory) DeleteTask(day timeutil.Day, i int) error {
	d := m.lookup(day)
	tasks, err := deleteAt(d.Tasks, i, "task")
	if err != nil {
		return err
	}
	d.Tasks = tasks
	return nil
}

func (m *Memory) Event(day timeutil.Day, i int) (entry.Event, error) {
	return readAt(m.lookup(day).Events, i, "event")
}

func (m *Memory) Task(day timeutil.Day, i int) (entry.Task, error) {
	return readAt(m.lookup(day).Tasks, i, "task")
}

func (m *Memory) ReplaceEvent(day timeutil.Day, i int, e entry.Event) error {
	if err := checkEvent(e); err != nil {
		return err
	}
	return replaceAt(m.lookup(day).Events, i, e, "event")
}

func (m *Memory) ReplaceTask(day timeutil.Day, i int, t entry.Task) error {
	if err := checkTask(t); err != nil {
		return err
	}
	return replaceAt(m.lookup(day).Tasks, i, t, "task")
}

func (m *Memory) EventsLen(day timeutil.Day) int {
	return len(m.lookup(day).Events)
}

func (m *Memory) TasksLen(day timeutil.Day) int {
	return len(m.lookup(day).Tasks)
}

func (m *Memory) Events(day timeutil.Day) iter.Seq[entry.Event] {
	return func(yield func(entry.Event) bool) {
		for e := range seqOf(m.lookup(day).Events) {
			if !yield(e) {
				return
			}
		}
	}
}

func (m *Memory) Tasks(day timeutil.Day) iter.Seq[entry.Task] {
	return func(yield func(entry.Task) bool) {
		for t := range seqOf(m.lookup(day).Tasks) {
			if !yield(t) {
				return
			}
		}
	}
}

// Err always returns nil; the in-memory journal has no fault surface.
func (m *Memory) Err() error { return nil }

func (m *Memory) Close() error { return nil }
