package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/jotty/pkg/runner/tea/internal/theme"
)

// Row is one item line. Cursor is the edit offset in runes, or -1.
type Row struct {
	Glyph     string
	Title     string
	Important bool
	Selected  bool
	Cursor    int
}

// Model renders a titled, bordered list of rows.
type Model struct {
	title  string
	rows   []Row
	width  int
	styles theme.PaneTheme
}

// New returns a pane drawn with styles.
func New(styles theme.PaneTheme) Model {
	return Model{styles: styles}
}

// SetContent updates the pane heading and rows.
func (m *Model) SetContent(title string, rows []Row) {
	m.title = title
	m.rows = rows
}

// SetWidth sets the outer width including the border. Zero means natural
// width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// View returns the rendered pane.
func (m Model) View() string {
	inner := 0
	if m.width > 0 {
		inner = max(m.width-m.styles.Frame.GetHorizontalFrameSize(), 1)
	}
	content := []string{m.styles.Heading.Render(m.title)}
	if len(m.rows) == 0 {
		content = append(content, m.styles.Muted.Render("none"))
	}
	for _, r := range m.rows {
		line := m.row(r)
		if inner > 0 {
			line = truncate.StringWithTail(line, uint(inner), "…")
		}
		content = append(content, line)
	}
	frame := m.styles.Frame
	if inner > 0 {
		frame = frame.Width(m.width)
	}
	return frame.Render(strings.Join(content, "\n"))
}

func (m Model) row(r Row) string {
	marker := "  "
	if r.Selected {
		marker = m.styles.Selected.Render("›") + " "
	}
	text := m.styles.Item
	if r.Important {
		text = m.styles.Important
	}
	title := text.Render(r.Title)
	if r.Cursor >= 0 {
		title = m.withCursor(text, r.Title, r.Cursor)
	}
	return marker + r.Glyph + " " + title
}

func (m Model) withCursor(text lipgloss.Style, title string, at int) string {
	runes := []rune(title)
	at = max(0, min(at, len(runes)))
	under := " "
	rest := ""
	if at < len(runes) {
		under = string(runes[at])
		rest = string(runes[at+1:])
	}
	return text.Render(string(runes[:at])) + m.styles.Cursor.Render(under) + text.Render(rest)
}
