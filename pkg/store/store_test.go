package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"tableflip.dev/jotty/pkg/entry"
	"tableflip.dev/jotty/pkg/timeutil"
)

var (
	day1 = timeutil.Date(2025, time.October, 19)
	day2 = timeutil.Date(2025, time.October, 20)
)

type backendFactory struct {
	name string
	open func(t *testing.T) Backend
}

func backends() []backendFactory {
	return []backendFactory{
		{"memory", func(t *testing.T) Backend { return NewMemory() }},
		{"sqlite", func(t *testing.T) Backend { return testSQLite(t) }},
		{"diskv", func(t *testing.T) Backend { return testDiskv(t) }},
	}
}

func testSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "jotty-test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testDiskv(t *testing.T) *Diskv {
	t.Helper()
	d, err := OpenDiskv(filepath.Join(t.TempDir(), "journal"))
	if err != nil {
		t.Fatalf("OpenDiskv: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func eventTitles(b Backend, day timeutil.Day) []string {
	var out []string
	for e := range b.Events(day) {
		out = append(out, e.Title)
	}
	return out
}

func taskTitles(b Backend, day timeutil.Day) []string {
	var out []string
	for tk := range b.Tasks(day) {
		out = append(out, tk.Title)
	}
	return out
}

// seedEvents appends events titled by the given strings.
func seedEvents(t *testing.T, b Backend, day timeutil.Day, titles ...string) {
	t.Helper()
	for _, title := range titles {
		i := b.EventsLen(day)
		if err := b.InsertEvent(day, i); err != nil {
			t.Fatalf("insert event %d: %v", i, err)
		}
		if err := b.ReplaceEvent(day, i, entry.Event{Title: title}); err != nil {
			t.Fatalf("replace event %d: %v", i, err)
		}
	}
}

func seedTasks(t *testing.T, b Backend, day timeutil.Day, titles ...string) {
	t.Helper()
	for _, title := range titles {
		i := b.TasksLen(day)
		if err := b.InsertTask(day, i); err != nil {
			t.Fatalf("insert task %d: %v", i, err)
		}
		if err := b.ReplaceTask(day, i, entry.Task{Title: title}); err != nil {
			t.Fatalf("replace task %d: %v", i, err)
		}
	}
}

func TestUnknownDayIsEmpty(t *testing.T) {
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			if n := b.EventsLen(day1); n != 0 {
				t.Fatalf("expected 0 events, got %d", n)
			}
			if n := b.TasksLen(day1); n != 0 {
				t.Fatalf("expected 0 tasks, got %d", n)
			}
			if got := eventTitles(b, day1); len(got) != 0 {
				t.Fatalf("expected no events, got %v", got)
			}
			if err := b.Err(); err != nil {
				t.Fatalf("unexpected fault: %v", err)
			}
		})
	}
}

func TestInsertDefaults(t *testing.T) {
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			if err := b.InsertEvent(day1, 0); err != nil {
				t.Fatalf("insert event: %v", err)
			}
			if err := b.InsertTask(day1, 0); err != nil {
				t.Fatalf("insert task: %v", err)
			}
			e, err := b.Event(day1, 0)
			if err != nil {
				t.Fatalf("read event: %v", err)
			}
			if e != (entry.Event{}) {
				t.Fatalf("expected blank normal event, got %+v", e)
			}
			tk, err := b.Task(day1, 0)
			if err != nil {
				t.Fatalf("read task: %v", err)
			}
			if tk != (entry.Task{}) {
				t.Fatalf("expected blank open task, got %+v", tk)
			}
		})
	}
}

func TestInsertShiftsLaterItems(t *testing.T) {
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			seedEvents(t, b, day1, "a", "b", "c")
			if err := b.InsertEvent(day1, 1); err != nil {
				t.Fatalf("insert: %v", err)
			}
			want := []string{"a", "", "b", "c"}
			if got := eventTitles(b, day1); !slices.Equal(got, want) {
				t.Fatalf("expected %q, got %q", want, got)
			}
			if err := b.InsertEvent(day1, 0); err != nil {
				t.Fatalf("insert at head: %v", err)
			}
			want = []string{"", "a", "", "b", "c"}
			if got := eventTitles(b, day1); !slices.Equal(got, want) {
				t.Fatalf("expected %q, got %q", want, got)
			}
		})
	}
}

func TestDeleteShiftsLaterItems(t *testing.T) {
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			seedTasks(t, b, day1, "a", "b", "c", "d")
			if err := b.DeleteTask(day1, 1); err != nil {
				t.Fatalf("delete: %v", err)
			}
			want := []string{"a", "c", "d"}
			if got := taskTitles(b, day1); !slices.Equal(got, want) {
				t.Fatalf("expected %q, got %q", want, got)
			}
			for i, w := range want {
				tk, err := b.Task(day1, i)
				if err != nil {
					t.Fatalf("read %d: %v", i, err)
				}
				if tk.Title != w {
					t.Fatalf("index %d: expected %q, got %q", i, w, tk.Title)
				}
			}
			if err := b.DeleteTask(day1, 2); err != nil {
				t.Fatalf("delete tail: %v", err)
			}
			if n := b.TasksLen(day1); n != 2 {
				t.Fatalf("expected 2 tasks, got %d", n)
			}
		})
	}
}

func TestAddressingErrors(t *testing.T) {
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			seedEvents(t, b, day1, "a", "b")
			checks := []struct {
				name string
				err  error
			}{
				{"insert past end", b.InsertEvent(day1, 3)},
				{"insert negative", b.InsertTask(day1, -1)},
				{"delete at len", b.DeleteEvent(day1, 2)},
				{"delete empty", b.DeleteTask(day1, 0)},
				{"replace at len", b.ReplaceEvent(day1, 2, entry.Event{Title: "x"})},
				{"replace unknown day", b.ReplaceTask(day2, 0, entry.Task{})},
			}
			for _, c := range checks {
				if !errors.Is(c.err, ErrIndex) {
					t.Fatalf("%s: expected ErrIndex, got %v", c.name, c.err)
				}
			}
			if _, err := b.Event(day1, 2); !errors.Is(err, ErrIndex) {
				t.Fatalf("read at len: expected ErrIndex, got %v", err)
			}
			if _, err := b.Task(day2, 0); !errors.Is(err, ErrIndex) {
				t.Fatalf("read unknown day: expected ErrIndex, got %v", err)
			}
			want := []string{"a", "b"}
			if got := eventTitles(b, day1); !slices.Equal(got, want) {
				t.Fatalf("failed calls must not mutate: expected %q, got %q", want, got)
			}
			if err := b.Err(); err != nil {
				t.Fatalf("addressing errors must not latch a fault: %v", err)
			}
		})
	}
}

func TestReplaceRejectsInvalidTags(t *testing.T) {
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			seedEvents(t, b, day1, "a")
			seedTasks(t, b, day1, "b")
			if err := b.ReplaceEvent(day1, 0, entry.Event{Title: "x", Importance: entry.Importance(5)}); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid for event, got %v", err)
			}
			if err := b.ReplaceTask(day1, 0, entry.Task{Title: "y", CompletionLevel: entry.CompletionLevel(-1)}); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid for task, got %v", err)
			}
			// Nothing was written, so reads still work.
			if e, err := b.Event(day1, 0); err != nil || e != (entry.Event{Title: "a"}) {
				t.Fatalf("expected event a untouched, got %+v %v", e, err)
			}
			if tk, err := b.Task(day1, 0); err != nil || tk != (entry.Task{Title: "b"}) {
				t.Fatalf("expected task b untouched, got %+v %v", tk, err)
			}
			if err := b.Err(); err != nil {
				t.Fatalf("invalid items must not latch a fault: %v", err)
			}
		})
	}
}

func TestListsAndDaysAreIndependent(t *testing.T) {
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			seedEvents(t, b, day1, "e0", "e1")
			seedTasks(t, b, day1, "t0", "t1", "t2")
			seedEvents(t, b, day2, "other")

			if err := b.DeleteEvent(day1, 0); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := b.InsertTask(day1, 0); err != nil {
				t.Fatalf("insert: %v", err)
			}
			if got, want := eventTitles(b, day1), []string{"e1"}; !slices.Equal(got, want) {
				t.Fatalf("events: expected %q, got %q", want, got)
			}
			if got, want := taskTitles(b, day1), []string{"", "t0", "t1", "t2"}; !slices.Equal(got, want) {
				t.Fatalf("tasks: expected %q, got %q", want, got)
			}
			if got, want := eventTitles(b, day2), []string{"other"}; !slices.Equal(got, want) {
				t.Fatalf("other day: expected %q, got %q", want, got)
			}
		})
	}
}

func TestInsertDeleteInverse(t *testing.T) {
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			seedEvents(t, b, day1, "a", "b", "c")
			before := slices.Collect(b.Events(day1))
			for i := 0; i <= len(before); i++ {
				if err := b.InsertEvent(day1, i); err != nil {
					t.Fatalf("insert %d: %v", i, err)
				}
				if err := b.DeleteEvent(day1, i); err != nil {
					t.Fatalf("delete %d: %v", i, err)
				}
				if after := slices.Collect(b.Events(day1)); !slices.Equal(before, after) {
					t.Fatalf("index %d: expected %v, got %v", i, before, after)
				}
			}
		})
	}
}

func TestDensityUnderMixedMutations(t *testing.T) {
	ops := []struct {
		insert bool
		i      int
	}{
		{true, 0}, {true, 0}, {true, 2}, {true, 1}, {false, 0},
		{true, 3}, {false, 3}, {true, 1}, {false, 2}, {false, 0},
	}
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			var model []string
			for step, op := range ops {
				if op.insert {
					if err := b.InsertTask(day1, op.i); err != nil {
						t.Fatalf("step %d insert: %v", step, err)
					}
					title := fmt.Sprintf("s%d", step)
					if err := b.ReplaceTask(day1, op.i, entry.Task{Title: title}); err != nil {
						t.Fatalf("step %d replace: %v", step, err)
					}
					model = slices.Insert(model, op.i, title)
				} else {
					if err := b.DeleteTask(day1, op.i); err != nil {
						t.Fatalf("step %d delete: %v", step, err)
					}
					model = slices.Delete(model, op.i, op.i+1)
				}
				if n := b.TasksLen(day1); n != len(model) {
					t.Fatalf("step %d: expected len %d, got %d", step, len(model), n)
				}
				for i, want := range model {
					tk, err := b.Task(day1, i)
					if err != nil {
						t.Fatalf("step %d read %d: %v", step, i, err)
					}
					if tk.Title != want {
						t.Fatalf("step %d index %d: expected %q, got %q", step, i, want, tk.Title)
					}
				}
				if _, err := b.Task(day1, len(model)); !errors.Is(err, ErrIndex) {
					t.Fatalf("step %d: expected gap-free end at %d", step, len(model))
				}
			}
		})
	}
}

func TestIterationIsRestartable(t *testing.T) {
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			seq := b.Events(day1)
			seedEvents(t, b, day1, "a", "b", "c")
			first := slices.Collect(seq)
			second := slices.Collect(seq)
			if len(first) != 3 || !slices.Equal(first, second) {
				t.Fatalf("expected repeatable 3 items, got %v and %v", first, second)
			}
			var head []entry.Event
			for e := range seq {
				head = append(head, e)
				break
			}
			if len(head) != 1 || head[0].Title != "a" {
				t.Fatalf("expected early stop after a, got %v", head)
			}
		})
	}
}

func TestReadReturnsCopy(t *testing.T) {
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)
			seedEvents(t, b, day1, "keep")
			e, err := b.Event(day1, 0)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			e.Title = "changed"
			got, _ := b.Event(day1, 0)
			if got.Title != "keep" {
				t.Fatalf("expected stored title unchanged, got %q", got.Title)
			}
		})
	}
}

// The scripted sequence must give identical results on every backend.
func TestBackendEquivalence(t *testing.T) {
	var results [][]entry.Event
	for _, bf := range backends() {
		b := bf.open(t)
		for i := 0; i < 3; i++ {
			if err := b.InsertEvent(day1, i); err != nil {
				t.Fatalf("%s: insert %d: %v", bf.name, i, err)
			}
			if err := b.ReplaceEvent(day1, i, entry.Event{Title: fmt.Sprintf("event %d", i)}); err != nil {
				t.Fatalf("%s: title %d: %v", bf.name, i, err)
			}
		}
		if err := b.DeleteEvent(day1, 1); err != nil {
			t.Fatalf("%s: delete: %v", bf.name, err)
		}
		e, err := b.Event(day1, 0)
		if err != nil {
			t.Fatalf("%s: read: %v", bf.name, err)
		}
		if err := b.ReplaceEvent(day1, 0, e.Cycled()); err != nil {
			t.Fatalf("%s: cycle: %v", bf.name, err)
		}
		e, err = b.Event(day1, 1)
		if err != nil {
			t.Fatalf("%s: read: %v", bf.name, err)
		}
		e.Title = "renamed"
		if err := b.ReplaceEvent(day1, 1, e); err != nil {
			t.Fatalf("%s: rename: %v", bf.name, err)
		}
		results = append(results, slices.Collect(b.Events(day1)))
	}
	want := []entry.Event{
		{Title: "event 0", Importance: entry.High},
		{Title: "renamed", Importance: entry.Normal},
	}
	for i, got := range results {
		if !slices.Equal(got, want) {
			t.Fatalf("%s: expected %+v, got %+v", backends()[i].name, want, got)
		}
	}
}
