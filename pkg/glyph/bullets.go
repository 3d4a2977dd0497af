package glyph

import (
	"tableflip.dev/jotty/pkg/entry"
)

type Glyph struct {
	Symbol  string
	Meaning string
	// Event is set for glyphs that mark events rather than tasks.
	Event bool
}

func (g Glyph) String() string {
	return g.Symbol
}

var (
	taskGlyphs = map[entry.CompletionLevel]Glyph{
		entry.None:    {Symbol: "○", Meaning: "task not started"},
		entry.Partial: {Symbol: "◐", Meaning: "task in progress"},
		entry.Full:    {Symbol: "●", Meaning: "task done"},
	}
	eventGlyphs = map[entry.Importance]Glyph{
		entry.Normal: {Symbol: "-", Meaning: "event", Event: true},
		entry.High:   {Symbol: "*", Meaning: "important event (bold)", Event: true},
	}
)

// Task returns the bullet for a completion level.
func Task(c entry.CompletionLevel) Glyph {
	if g, ok := taskGlyphs[c]; ok {
		return g
	}
	return Glyph{Symbol: "?", Meaning: c.String()}
}

// Event returns the bullet for an importance level.
func Event(i entry.Importance) Glyph {
	if g, ok := eventGlyphs[i]; ok {
		return g
	}
	return Glyph{Symbol: "?", Meaning: i.String(), Event: true}
}

// Legend lists every glyph, events first, in cycle order.
func Legend() []Glyph {
	return []Glyph{
		Event(entry.Normal),
		Event(entry.High),
		Task(entry.None),
		Task(entry.Partial),
		Task(entry.Full),
	}
}
