package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/jotty/pkg/store"
)

type watchStartedMsg struct {
	ch  <-chan store.Change
	err error
}

type watchEventMsg struct {
	change store.Change
}

type watchStoppedMsg struct{}

// WithWatcher redraws the day when w reports that the journal changed on
// disk. Watching stops when ctx is done.
func WithWatcher(ctx context.Context, w store.Watcher) Option {
	return func(m *Model) {
		if w == nil {
			return
		}
		m.watcher = w
		m.ctx = ctx
	}
}

func startWatchCmd(ctx context.Context, w store.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		ch, err := w.Watch(ctx)
		if err != nil {
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch}
	}
}

func (m Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if c, ok := <-ch; ok {
			return watchEventMsg{change: c}
		}
		return watchStoppedMsg{}
	}
}

func (m Model) handleWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchStartedMsg:
		if msg.err != nil {
			m.logger.Warn("watch journal", "err", msg.err)
			return m, nil
		}
		m.watchCh = msg.ch
		return m, m.waitForWatch()
	case watchEventMsg:
		if !msg.change.Known || msg.change.Day == m.journal.Day() {
			m.journal.Refresh()
		}
		return m, m.waitForWatch()
	case watchStoppedMsg:
		m.watchCh = nil
		m.logger.Debug("watch stopped")
	}
	return m, nil
}
