package entry

import (
	"fmt"
)

// Importance is the tag carried by an Event.
type Importance int

const (
	Normal Importance = iota
	High
)

// Valid reports whether i is a known importance.
func (i Importance) Valid() bool {
	return i == Normal || i == High
}

// Next toggles between Normal and High.
func (i Importance) Next() Importance {
	if i == High {
		return Normal
	}
	return High
}

func (i Importance) String() string {
	switch i {
	case Normal:
		return "normal"
	case High:
		return "high"
	default:
		return fmt.Sprintf("importance(%d)", int(i))
	}
}

// CompletionLevel is the tag carried by a Task.
type CompletionLevel int

const (
	None CompletionLevel = iota
	Partial
	Full
)

// Valid reports whether c is a known completion level.
func (c CompletionLevel) Valid() bool {
	return c >= None && c <= Full
}

// Next cycles None -> Partial -> Full -> None.
func (c CompletionLevel) Next() CompletionLevel {
	switch c {
	case None:
		return Partial
	case Partial:
		return Full
	default:
		return None
	}
}

func (c CompletionLevel) String() string {
	switch c {
	case None:
		return "none"
	case Partial:
		return "partial"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("completion(%d)", int(c))
	}
}

// Event is a note for a day with an importance level. Events are values: a
// store hands out copies and takes whole replacements.
type Event struct {
	Title      string     `json:"title"`
	Importance Importance `json:"importance"`
}

// Cycled returns a copy with the importance advanced.
func (e Event) Cycled() Event {
	e.Importance = e.Importance.Next()
	return e
}

func (e Event) String() string {
	return e.Title
}

// Task is a to-do item for a day with a completion level.
type Task struct {
	Title           string          `json:"title"`
	CompletionLevel CompletionLevel `json:"completion_level"`
}

// Cycled returns a copy with the completion level advanced.
func (t Task) Cycled() Task {
	t.CompletionLevel = t.CompletionLevel.Next()
	return t
}

func (t Task) String() string {
	return t.Title
}
