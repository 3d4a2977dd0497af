package app

import (
	"fmt"
	"iter"
	"slices"
	"unicode/utf8"

	"tableflip.dev/jotty/pkg/entry"
	"tableflip.dev/jotty/pkg/store"
	"tableflip.dev/jotty/pkg/timeutil"
)

// List names one of the two lists shown for a day.
type List int

const (
	ListNone List = iota
	ListEvents
	ListTasks
)

func (l List) other() List {
	switch l {
	case ListEvents:
		return ListTasks
	case ListTasks:
		return ListEvents
	default:
		return ListNone
	}
}

func (l List) String() string {
	switch l {
	case ListEvents:
		return "events"
	case ListTasks:
		return "tasks"
	default:
		return "none"
	}
}

// Selection is the highlighted (list, index) pair. The zero value selects
// nothing.
type Selection struct {
	List  List
	Index int
}

// Active reports whether something is selected.
func (s Selection) Active() bool {
	return s.List != ListNone
}

func (s Selection) String() string {
	if !s.Active() {
		return "none"
	}
	return fmt.Sprintf("%s[%d]", s.List, s.Index)
}

// Model is the navigation and editing state for one journal. It owns no
// item data: every read goes to the backend and every edit is written back
// as a whole replacement.
type Model struct {
	journal store.Backend
	day     timeutil.Day
	sel     Selection
	cursor  int
	editing bool
	exit    bool

	today func() timeutil.Day
}

// New returns a Model showing day. If the day has items the first event,
// or else the first task, is selected.
func New(day timeutil.Day, journal store.Backend) *Model {
	m := &Model{
		journal: journal,
		today:   timeutil.Today,
	}
	m.ChangeDate(day)
	return m
}

// Day is the day being shown.
func (m *Model) Day() timeutil.Day { return m.day }

// Selection is the current selection.
func (m *Model) Selection() Selection { return m.sel }

// Cursor returns the edit offset in runes and whether edit mode is active.
func (m *Model) Cursor() (int, bool) {
	if !m.editing {
		return 0, false
	}
	return m.cursor, true
}

// Editing reports whether edit mode is active.
func (m *Model) Editing() bool { return m.editing }

func (m *Model) EventsLen() int { return m.journal.EventsLen(m.day) }

func (m *Model) TasksLen() int { return m.journal.TasksLen(m.day) }

func (m *Model) Events() iter.Seq[entry.Event] { return m.journal.Events(m.day) }

func (m *Model) Tasks() iter.Seq[entry.Task] { return m.journal.Tasks(m.day) }

// Err reports a latched storage fault. The UI polls it once per frame.
func (m *Model) Err() error { return m.journal.Err() }

// ShouldExit reports whether Exit was requested.
func (m *Model) ShouldExit() bool { return m.exit }

// Exit requests the program to stop.
func (m *Model) Exit() { m.exit = true }

func (m *Model) len(l List) int {
	switch l {
	case ListEvents:
		return m.journal.EventsLen(m.day)
	case ListTasks:
		return m.journal.TasksLen(m.day)
	default:
		return 0
	}
}

// settle returns sel moved onto a valid index: clamped within its own list,
// otherwise carried to the other list, otherwise nothing.
func (m *Model) settle(sel Selection) Selection {
	if !sel.Active() {
		return sel
	}
	if n := m.len(sel.List); n > 0 {
		sel.Index = clampIndex(sel.Index, n)
		return sel
	}
	o := sel.List.other()
	if n := m.len(o); n > 0 {
		return Selection{List: o, Index: clampIndex(sel.Index, n)}
	}
	return Selection{}
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}

// MoveUp selects the previous item in the current list.
func (m *Model) MoveUp() {
	m.editing = false
	if !m.sel.Active() {
		return
	}
	m.sel.Index--
	m.sel = m.settle(m.sel)
}

// MoveDown selects the next item in the current list.
func (m *Model) MoveDown() {
	m.editing = false
	if !m.sel.Active() {
		return
	}
	m.sel.Index++
	m.sel = m.settle(m.sel)
}

// MoveLeft moves the selection from tasks to events, keeping the row when
// the events list is long enough and clamping to its last item otherwise.
func (m *Model) MoveLeft() {
	m.editing = false
	m.cross(ListTasks, ListEvents)
}

// MoveRight moves the selection from events to tasks.
func (m *Model) MoveRight() {
	m.editing = false
	m.cross(ListEvents, ListTasks)
}

func (m *Model) cross(from, to List) {
	if m.sel.List != from {
		return
	}
	if n := m.len(to); n > 0 {
		m.sel = Selection{List: to, Index: clampIndex(m.sel.Index, n)}
	}
}

// Cycle advances the tag of the selected item.
func (m *Model) Cycle() error {
	m.editing = false
	switch m.sel.List {
	case ListEvents:
		e, err := m.journal.Event(m.day, m.sel.Index)
		if err != nil {
			return err
		}
		return m.journal.ReplaceEvent(m.day, m.sel.Index, e.Cycled())
	case ListTasks:
		t, err := m.journal.Task(m.day, m.sel.Index)
		if err != nil {
			return err
		}
		return m.journal.ReplaceTask(m.day, m.sel.Index, t.Cycled())
	}
	return nil
}

// ChangeDate shows day. A selection whose list is empty on the new day moves
// to the other list, or is dropped; with nothing selected the first event,
// or else the first task, is picked.
func (m *Model) ChangeDate(day timeutil.Day) {
	m.editing = false
	m.day = day
	m.reconcile()
}

func (m *Model) reconcile() {
	if m.sel.Active() {
		m.sel = m.settle(m.sel)
		return
	}
	switch {
	case m.journal.EventsLen(m.day) > 0:
		m.sel = Selection{List: ListEvents}
	case m.journal.TasksLen(m.day) > 0:
		m.sel = Selection{List: ListTasks}
	}
}

// Refresh reconciles the selection after the day was changed behind the
// model's back, by another process writing the same journal. An edit in
// progress survives if its item still exists; the cursor is clamped to the
// current title.
func (m *Model) Refresh() {
	before := m.sel
	m.reconcile()
	if !m.editing {
		return
	}
	if m.sel != before {
		m.editing = false
		return
	}
	title, err := m.title()
	if err != nil {
		m.editing = false
		return
	}
	m.cursor = min(m.cursor, utf8.RuneCountInString(title))
}

// NextDay shows the following day.
func (m *Model) NextDay() { m.ChangeDate(m.day.Next()) }

// PrevDay shows the preceding day.
func (m *Model) PrevDay() { m.ChangeDate(m.day.Prev()) }

// Today shows the current day.
func (m *Model) Today() { m.ChangeDate(m.today()) }

func (m *Model) title() (string, error) {
	switch m.sel.List {
	case ListEvents:
		e, err := m.journal.Event(m.day, m.sel.Index)
		return e.Title, err
	case ListTasks:
		t, err := m.journal.Task(m.day, m.sel.Index)
		return t.Title, err
	}
	return "", nil
}

// setTitle rewrites the selected item's title, keeping its tag.
func (m *Model) setTitle(title string) error {
	switch m.sel.List {
	case ListEvents:
		e, err := m.journal.Event(m.day, m.sel.Index)
		if err != nil {
			return err
		}
		e.Title = title
		return m.journal.ReplaceEvent(m.day, m.sel.Index, e)
	case ListTasks:
		t, err := m.journal.Task(m.day, m.sel.Index)
		if err != nil {
			return err
		}
		t.Title = title
		return m.journal.ReplaceTask(m.day, m.sel.Index, t)
	}
	return nil
}

// EnterEdit starts editing the selected title with the cursor at its end.
func (m *Model) EnterEdit() error {
	if !m.sel.Active() {
		return nil
	}
	title, err := m.title()
	if err != nil {
		return err
	}
	m.editing = true
	m.cursor = utf8.RuneCountInString(title)
	return nil
}

// ExitEdit leaves edit mode.
func (m *Model) ExitEdit() {
	m.editing = false
}

// CursorLeft moves the edit cursor one rune left.
func (m *Model) CursorLeft() {
	if m.editing && m.cursor > 0 {
		m.cursor--
	}
}

// CursorRight moves the edit cursor one rune right, stopping at the end of
// the title.
func (m *Model) CursorRight() error {
	if !m.editing {
		return nil
	}
	title, err := m.title()
	if err != nil {
		return err
	}
	if m.cursor < utf8.RuneCountInString(title) {
		m.cursor++
	}
	return nil
}

// InsertChar inserts c at the edit cursor and advances it.
func (m *Model) InsertChar(c rune) error {
	if !m.editing {
		return nil
	}
	title, err := m.title()
	if err != nil {
		return err
	}
	runes := []rune(title)
	at := min(m.cursor, len(runes))
	if err := m.setTitle(string(slices.Insert(runes, at, c))); err != nil {
		return err
	}
	m.cursor = at + 1
	return nil
}

// DeleteChar removes the rune before the edit cursor.
func (m *Model) DeleteChar() error {
	if !m.editing || m.cursor == 0 {
		return nil
	}
	title, err := m.title()
	if err != nil {
		return err
	}
	runes := []rune(title)
	at := min(m.cursor, len(runes))
	if at == 0 {
		m.cursor = 0
		return nil
	}
	if err := m.setTitle(string(slices.Delete(runes, at-1, at))); err != nil {
		return err
	}
	m.cursor = at - 1
	return nil
}

// AppendNewEvent adds a blank event at the end of the day, selects it and
// starts editing it.
func (m *Model) AppendNewEvent() error {
	return m.appendNew(ListEvents)
}

// AppendNewTask adds a blank task at the end of the day, selects it and
// starts editing it.
func (m *Model) AppendNewTask() error {
	return m.appendNew(ListTasks)
}

func (m *Model) appendNew(l List) error {
	i := m.len(l)
	if err := m.insert(l, i); err != nil {
		return err
	}
	// A faulted backend skips the write.
	if m.len(l) <= i {
		m.sel = m.settle(m.sel)
		return nil
	}
	m.sel = Selection{List: l, Index: i}
	m.editing = true
	m.cursor = 0
	return nil
}

// InsertAbove adds a blank item at the selected index, pushing the selected
// item down, and starts editing the new item.
func (m *Model) InsertAbove() error {
	if !m.sel.Active() {
		return nil
	}
	n := m.len(m.sel.List)
	if err := m.insert(m.sel.List, m.sel.Index); err != nil {
		return err
	}
	if m.len(m.sel.List) <= n {
		m.sel = m.settle(m.sel)
		return nil
	}
	m.editing = true
	m.cursor = 0
	return nil
}

func (m *Model) insert(l List, i int) error {
	switch l {
	case ListEvents:
		return m.journal.InsertEvent(m.day, i)
	case ListTasks:
		return m.journal.InsertTask(m.day, i)
	}
	return nil
}

// DeleteSelected removes the selected item and settles the selection on a
// neighbour, the other list, or nothing.
func (m *Model) DeleteSelected() error {
	m.editing = false
	var err error
	switch m.sel.List {
	case ListEvents:
		err = m.journal.DeleteEvent(m.day, m.sel.Index)
	case ListTasks:
		err = m.journal.DeleteTask(m.day, m.sel.Index)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	m.sel = m.settle(m.sel)
	return nil
}
