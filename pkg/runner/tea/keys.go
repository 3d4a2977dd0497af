package teaui

import (
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/jotty/pkg/app"
)

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	PrevDay     key.Binding
	NextDay     key.Binding
	Today       key.Binding
	Cycle       key.Binding
	Edit        key.Binding
	AppendEvent key.Binding
	AppendTask  key.Binding
	InsertAbove key.Binding
	Delete      key.Binding
	Help        key.Binding
	Quit        key.Binding

	// edit mode
	Done        key.Binding
	CursorLeft  key.Binding
	CursorRight key.Binding
	Backspace   key.Binding
	ForceQuit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "events")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "tasks")),
		PrevDay:     key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("⇧←", "prev day")),
		NextDay:     key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("⇧→", "next day")),
		Today:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "today")),
		Cycle:       key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "cycle")),
		Edit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		AppendEvent: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "new event")),
		AppendTask:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "new task")),
		InsertAbove: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "insert above")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Done:        key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "done")),
		CursorLeft:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "cursor left")),
		CursorRight: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "cursor right")),
		Backspace:   key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete char")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// intents resolves a key press to the intents it stands for. Order matters
// while editing: bindings first, then printable text.
func (k keyMap) intents(msg tea.KeyPressMsg, editing bool) []app.Intent {
	if editing {
		switch {
		case key.Matches(msg, k.ForceQuit):
			return []app.Intent{app.Do(app.Exit)}
		case key.Matches(msg, k.Done):
			return []app.Intent{app.Do(app.ExitEdit)}
		case key.Matches(msg, k.PrevDay):
			return []app.Intent{app.Do(app.PrevDay)}
		case key.Matches(msg, k.NextDay):
			return []app.Intent{app.Do(app.NextDay)}
		case key.Matches(msg, k.CursorLeft):
			return []app.Intent{app.Do(app.CursorLeft)}
		case key.Matches(msg, k.CursorRight):
			return []app.Intent{app.Do(app.CursorRight)}
		case key.Matches(msg, k.Backspace):
			return []app.Intent{app.Do(app.DeleteChar)}
		case msg.String() == "up":
			return []app.Intent{app.Do(app.MoveUp)}
		case msg.String() == "down":
			return []app.Intent{app.Do(app.MoveDown)}
		}
		if msg.Text == "" || msg.Mod&(tea.ModCtrl|tea.ModAlt) != 0 {
			return nil
		}
		var out []app.Intent
		for _, r := range msg.Text {
			out = append(out, app.Insert(r))
		}
		return out
	}

	var a app.Action
	switch {
	case key.Matches(msg, k.Quit):
		a = app.Exit
	case key.Matches(msg, k.PrevDay):
		a = app.PrevDay
	case key.Matches(msg, k.NextDay):
		a = app.NextDay
	case key.Matches(msg, k.Up):
		a = app.MoveUp
	case key.Matches(msg, k.Down):
		a = app.MoveDown
	case key.Matches(msg, k.Left):
		a = app.MoveLeft
	case key.Matches(msg, k.Right):
		a = app.MoveRight
	case key.Matches(msg, k.Today):
		a = app.Today
	case key.Matches(msg, k.Cycle):
		a = app.Cycle
	case key.Matches(msg, k.Edit):
		a = app.EnterEdit
	case key.Matches(msg, k.AppendEvent):
		a = app.AppendNewEvent
	case key.Matches(msg, k.AppendTask):
		a = app.AppendNewTask
	case key.Matches(msg, k.InsertAbove):
		a = app.InsertAbove
	case key.Matches(msg, k.Delete):
		a = app.DeleteSelected
	default:
		return nil
	}
	return []app.Intent{app.Do(a)}
}

// helpKeys adapts a set of bindings to help.KeyMap.
type helpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding  { return h.short }
func (h helpKeys) FullHelp() [][]key.Binding { return h.full }

func (k keyMap) bindings(editing bool) helpKeys {
	if editing {
		short := []key.Binding{k.Done, k.CursorLeft, k.CursorRight, k.Backspace}
		return helpKeys{short: short, full: [][]key.Binding{short}}
	}
	return helpKeys{
		short: []key.Binding{k.AppendEvent, k.AppendTask, k.Cycle, k.Edit, k.Delete, k.PrevDay, k.NextDay, k.Help, k.Quit},
		full: [][]key.Binding{
			{k.Up, k.Down, k.Left, k.Right},
			{k.PrevDay, k.NextDay, k.Today},
			{k.AppendEvent, k.AppendTask, k.InsertAbove, k.Cycle, k.Edit, k.Delete},
			{k.Help, k.Quit},
		},
	}
}
