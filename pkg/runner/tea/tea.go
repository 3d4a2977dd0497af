package teaui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/jotty/pkg/app"
)

// Run shows journal full screen until the user quits. It returns the intent
// failure or latched storage fault that ended the session, if any.
func Run(journal *app.Model, opts ...Option) error {
	p := tea.NewProgram(New(journal, opts...), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return journal.Err()
}
