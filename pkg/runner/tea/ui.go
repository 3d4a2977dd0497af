package teaui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/v2/help"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"

	"tableflip.dev/jotty/pkg/app"
	"tableflip.dev/jotty/pkg/entry"
	"tableflip.dev/jotty/pkg/glyph"
	"tableflip.dev/jotty/pkg/runner/tea/internal/manual"
	"tableflip.dev/jotty/pkg/runner/tea/internal/panel"
	"tableflip.dev/jotty/pkg/runner/tea/internal/theme"
	"tableflip.dev/jotty/pkg/store"
	"tableflip.dev/jotty/pkg/timeutil"
)

// Model adapts an app.Model to Bubble Tea. All journal state lives in the
// app.Model; this type only holds layout and overlay state.
type Model struct {
	journal *app.Model
	keys    keyMap
	help    help.Model
	theme   theme.Theme
	dark    *bool
	logger  *slog.Logger

	events panel.Model
	tasks  panel.Model
	manual *manual.Model

	showManual bool
	termWidth  int
	termHeight int

	ctx     context.Context
	watcher store.Watcher
	watchCh <-chan store.Change

	err error
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets where intent failures are logged.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithDarkBackground overrides terminal background detection.
func WithDarkBackground(dark bool) Option {
	return func(m *Model) {
		m.dark = &dark
	}
}

// New creates a UI over journal.
func New(journal *app.Model, opts ...Option) Model {
	m := Model{
		journal: journal,
		keys:    defaultKeyMap(),
		help:    help.New(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.dark == nil {
		dark := termenv.HasDarkBackground()
		m.dark = &dark
	}
	m.theme = theme.New(*m.dark)
	m.events = panel.New(m.theme.Events)
	m.tasks = panel.New(m.theme.Tasks)
	return m
}

// Err is the intent failure that ended the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return startWatchCmd(m.ctx, m.watcher)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		if m.manual != nil {
			m.manual.SetSize(msg.Width, msg.Height-1)
		}
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case watchStartedMsg, watchEventMsg, watchStoppedMsg:
		return m.handleWatch(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.journal.Err() != nil {
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.showManual {
		switch msg.String() {
		case "?", "q", "esc":
			m.showManual = false
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, m.manual.Update(msg)
	}

	editing := m.journal.Editing()
	if !editing && msg.String() == "?" {
		m.showManual = true
		if m.manual == nil {
			m.manual = manual.New(max(m.termWidth, 60), max(m.termHeight-1, 20), *m.dark)
		}
		if err := m.manual.Err(); err != nil {
			m.logger.Warn("render help", "err", err)
		}
		return m, nil
	}

	for _, in := range m.keys.intents(msg, editing) {
		if err := m.journal.Apply(in); err != nil {
			m.err = fmt.Errorf("teaui: %s on %s: %w", in, m.journal.Day(), err)
			m.logger.Error("intent failed", "intent", in.String(), "day", m.journal.Day().Key(),
				"selection", m.journal.Selection().String(), "err", err)
			return m, tea.Quit
		}
		m.logger.Debug("intent", "intent", in.String(), "selection", m.journal.Selection().String())
	}
	if m.journal.ShouldExit() {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the day, the fault screen, or the help overlay.
func (m Model) View() string {
	if err := m.journal.Err(); err != nil {
		return m.faultView(err)
	}
	if m.showManual && m.manual != nil {
		return m.manual.View() + "\n" + m.theme.Footer.Help.Render("? / esc close")
	}

	day := m.journal.Day()
	title := m.theme.Title.Render("Jotty entry on " + day.Long())
	if offset := int(day - timeutil.Today()); offset != 0 {
		title += " " + m.theme.Empty.Render(timeutil.FormatOffset(offset))
	}

	var body string
	if m.journal.EventsLen() == 0 && m.journal.TasksLen() == 0 {
		body = m.theme.Empty.Render("no entry for this date")
	} else {
		body = m.panes()
	}

	footer := m.help.View(m.keys.bindings(m.journal.Editing()))
	return strings.Join([]string{title, "", body, "", footer}, "\n")
}

func (m Model) panes() string {
	width := 0
	if m.termWidth > 0 {
		width = max((m.termWidth-1)/2, 16)
	}
	sel := m.journal.Selection()
	cursor, editing := m.journal.Cursor()

	rowCursor := func(l app.List, i int) int {
		if editing && sel.List == l && sel.Index == i {
			return cursor
		}
		return -1
	}

	var events []panel.Row
	i := 0
	for e := range m.journal.Events() {
		events = append(events, panel.Row{
			Glyph:     glyph.Event(e.Importance).Symbol,
			Title:     e.Title,
			Important: e.Importance == entry.High,
			Selected:  sel.List == app.ListEvents && sel.Index == i,
			Cursor:    rowCursor(app.ListEvents, i),
		})
		i++
	}
	var tasks []panel.Row
	i = 0
	for t := range m.journal.Tasks() {
		tasks = append(tasks, panel.Row{
			Glyph:    glyph.Task(t.CompletionLevel).Symbol,
			Title:    t.Title,
			Selected: sel.List == app.ListTasks && sel.Index == i,
			Cursor:   rowCursor(app.ListTasks, i),
		})
		i++
	}

	m.events.SetWidth(width)
	m.tasks.SetWidth(width)
	m.events.SetContent("Events", events)
	m.tasks.SetContent("Tasks", tasks)
	left := m.events.View()
	right := m.tasks.View()
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m Model) faultView(err error) string {
	f := m.theme.Fault
	body := []string{
		f.Heading.Render("Storage failure"),
		"",
		f.Body.Render(err.Error()),
		"",
		f.Body.Render("Nothing further will be saved. Press q to quit."),
	}
	return f.Frame.Render(strings.Join(body, "\n"))
}
