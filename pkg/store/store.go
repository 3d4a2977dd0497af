package store

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"

	"tableflip.dev/jotty/pkg/entry"
	"tableflip.dev/jotty/pkg/timeutil"
)

var (
	// ErrIndex is returned when an index is outside the valid range for the
	// requested operation. Reaching it from the UI means a selection bug.
	ErrIndex = errors.New("store: index out of range")
	// ErrFault wraps the first I/O failure of a durable backend. Once
	// latched it is reported by Err and never cleared.
	ErrFault = errors.New("store: backend fault")
	// ErrCorrupt is the panic value used when stored data holds a tag
	// outside its enum.
	ErrCorrupt = errors.New("store: corrupt journal data")
	// ErrInvalid is returned when a replacement item carries a tag outside
	// its enum. Nothing is written.
	ErrInvalid = errors.New("store: invalid item")
)

// Backend persists the events and tasks of each day as two independent,
// densely indexed sequences. Implementations hand out copies and take whole
// replacements; callers never hold references into stored data.
type Backend interface {
	InsertEvent(day timeutil.Day, i int) error
	InsertTask(day timeutil.Day, i int) error
	DeleteEvent(day timeutil.Day, i int) error
	DeleteTask(day timeutil.Day, i int) error
	Event(day timeutil.Day, i int) (entry.Event, error)
	Task(day timeutil.Day, i int) (entry.Task, error)
	ReplaceEvent(day timeutil.Day, i int, e entry.Event) error
	ReplaceTask(day timeutil.Day, i int, t entry.Task) error
	EventsLen(day timeutil.Day) int
	TasksLen(day timeutil.Day) int
	// Events yields the day's events in index order. Each range re-reads
	// the store.
	Events(day timeutil.Day) iter.Seq[entry.Event]
	Tasks(day timeutil.Day) iter.Seq[entry.Task]
	// Err reports a latched backend fault, or nil.
	Err() error
	Close() error
}

// Option configures a backend.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for open/close and fault reporting.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

func indexError(op, list string, i, n int) error {
	return fmt.Errorf("%s %s at %d (len %d): %w", op, list, i, n, ErrIndex)
}

// dayEntry is the pair of sequences stored for one day.
type dayEntry struct {
	Events []entry.Event `json:"events"`
	Tasks  []entry.Task  `json:"tasks"`
}

func (d *dayEntry) validate() error {
	for i, e := range d.Events {
		if !e.Importance.Valid() {
			return fmt.Errorf("%w: event %d has importance %d", ErrCorrupt, i, int(e.Importance))
		}
	}
	for i, t := range d.Tasks {
		if !t.CompletionLevel.Valid() {
			return fmt.Errorf("%w: task %d has completion level %d", ErrCorrupt, i, int(t.CompletionLevel))
		}
	}
	return nil
}

func checkEvent(e entry.Event) error {
	if !e.Importance.Valid() {
		return fmt.Errorf("%w: importance %d", ErrInvalid, int(e.Importance))
	}
	return nil
}

func checkTask(t entry.Task) error {
	if !t.CompletionLevel.Valid() {
		return fmt.Errorf("%w: completion level %d", ErrInvalid, int(t.CompletionLevel))
	}
	return nil
}

func insertAt[T any](s []T, i int, list string) ([]T, error) {
	if i < 0 || i > len(s) {
		return s, indexError("insert", list, i, len(s))
	}
	var zero T
	return slices.Insert(s, i, zero), nil
}

func deleteAt[T any](s []T, i int, list string) ([]T, error) {
	if i < 0 || i >= len(s) {
		return s, indexError("delete", list, i, len(s))
	}
	return slices.Delete(s, i, i+1), nil
}

func readAt[T any](s []T, i int, list string) (T, error) {
	if i < 0 || i >= len(s) {
		var zero T
		return zero, indexError("read", list, i, len(s))
	}
	return s[i], nil
}

func replaceAt[T any](s []T, i int, v T, list string) error {
	if i < 0 || i >= len(s) {
		return indexError("replace", list, i, len(s))
	}
	s[i] = v
	return nil
}

func seqOf[T any](s []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

// latch records the first backend fault.
type latch struct {
	err    error
	logger *slog.Logger
}

func (l *latch) faulted() bool {
	return l.err != nil
}

func (l *latch) fail(op string, err error) {
	if l.err != nil {
		return
	}
	l.err = fmt.Errorf("%w: %s: %v", ErrFault, op, err)
	l.logger.Error("storage fault latched", slog.String("op", op), slog.String("error", err.Error()))
}

// Err returns the latched fault, if any.
func (l *latch) Err() error {
	return l.err
}
