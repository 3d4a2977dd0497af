package app

import (
	"fmt"

	"tableflip.dev/jotty/pkg/timeutil"
)

// Action is a resolved user intent, independent of the key that produced it.
type Action int

const (
	Noop Action = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	Cycle
	NextDay
	PrevDay
	Today
	GoTo
	EnterEdit
	ExitEdit
	CursorLeft
	CursorRight
	InsertChar
	DeleteChar
	AppendNewEvent
	AppendNewTask
	InsertAbove
	DeleteSelected
	Exit
)

var actionNames = map[Action]string{
	Noop:           "noop",
	MoveUp:         "move-up",
	MoveDown:       "move-down",
	MoveLeft:       "move-left",
	MoveRight:      "move-right",
	Cycle:          "cycle",
	NextDay:        "next-day",
	PrevDay:        "prev-day",
	Today:          "today",
	GoTo:           "go-to",
	EnterEdit:      "enter-edit",
	ExitEdit:       "exit-edit",
	CursorLeft:     "cursor-left",
	CursorRight:    "cursor-right",
	InsertChar:     "insert-char",
	DeleteChar:     "delete-char",
	AppendNewEvent: "append-event",
	AppendNewTask:  "append-task",
	InsertAbove:    "insert-above",
	DeleteSelected: "delete",
	Exit:           "exit",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Intent is an Action plus its argument: the rune for InsertChar and the
// target day for GoTo.
type Intent struct {
	Action Action
	Char   rune
	Day    timeutil.Day
}

// Do is shorthand for an Intent without arguments.
func Do(a Action) Intent {
	return Intent{Action: a}
}

// Insert returns the intent to type c.
func Insert(c rune) Intent {
	return Intent{Action: InsertChar, Char: c}
}

// Go returns the intent to show day.
func Go(day timeutil.Day) Intent {
	return Intent{Action: GoTo, Day: day}
}

func (in Intent) String() string {
	switch in.Action {
	case InsertChar:
		return fmt.Sprintf("%s(%q)", in.Action, in.Char)
	case GoTo:
		return fmt.Sprintf("%s(%s)", in.Action, in.Day)
	default:
		return in.Action.String()
	}
}

// Apply runs one intent to completion. The only error it can return is
// store.ErrIndex, which means the selection and the store disagree.
func (m *Model) Apply(in Intent) error {
	switch in.Action {
	case MoveUp:
		m.MoveUp()
	case MoveDown:
		m.MoveDown()
	case MoveLeft:
		m.MoveLeft()
	case MoveRight:
		m.MoveRight()
	case Cycle:
		return m.Cycle()
	case NextDay:
		m.NextDay()
	case PrevDay:
		m.PrevDay()
	case Today:
		m.Today()
	case GoTo:
		m.ChangeDate(in.Day)
	case EnterEdit:
		return m.EnterEdit()
	case ExitEdit:
		m.ExitEdit()
	case CursorLeft:
		m.CursorLeft()
	case CursorRight:
		return m.CursorRight()
	case InsertChar:
		return m.InsertChar(in.Char)
	case DeleteChar:
		return m.DeleteChar()
	case AppendNewEvent:
		return m.AppendNewEvent()
	case AppendNewTask:
		return m.AppendNewTask()
	case InsertAbove:
		return m.InsertAbove()
	case DeleteSelected:
		return m.DeleteSelected()
	case Exit:
		m.Exit()
	}
	return nil
}
