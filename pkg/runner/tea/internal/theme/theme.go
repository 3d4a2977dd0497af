package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the journal view.
type Theme struct {
	Title  lipgloss.Style
	Empty  lipgloss.Style
	Events PaneTheme
	Tasks  PaneTheme
	Footer FooterTheme
	Fault  FaultTheme
}

// PaneTheme styles one bordered list.
type PaneTheme struct {
	Frame     lipgloss.Style
	Heading   lipgloss.Style
	Item      lipgloss.Style
	Important lipgloss.Style
	Selected  lipgloss.Style
	Cursor    lipgloss.Style
	Muted     lipgloss.Style
}

// FooterTheme groups styles used by the bottom help line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// FaultTheme styles the screen shown once storage has failed.
type FaultTheme struct {
	Frame   lipgloss.Style
	Heading lipgloss.Style
	Body    lipgloss.Style
}

var (
	red    = lipgloss.Color("#d75f5f")
	yellow = lipgloss.Color("#d7af00")
)

// New returns the theme for a dark or light background.
func New(dark bool) Theme {
	bg := lipgloss.Color("#ffffff")
	if dark {
		bg = lipgloss.Color("#000000")
	}
	return Theme{
		Title:  lipgloss.NewStyle().Bold(true).Underline(true),
		Empty:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		Events: pane(red, bg),
		Tasks:  pane(yellow, bg),
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Fault: FaultTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(red).
				Padding(1, 2),
			Heading: lipgloss.NewStyle().Bold(true).Foreground(red),
			Body:    lipgloss.NewStyle(),
		},
	}
}

func pane(accent, bg color.Color) PaneTheme {
	muted := Blend(accent, bg, 0.55)
	return PaneTheme{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Item:      lipgloss.NewStyle(),
		Important: lipgloss.NewStyle().Bold(true),
		Selected:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Cursor:    lipgloss.NewStyle().Reverse(true),
		Muted:     lipgloss.NewStyle().Foreground(muted),
	}
}

// Blend mixes a toward b by t in Lab space and returns the result as a
// lipgloss colour.
func Blend(a, b color.Color, t float64) color.Color {
	ca, ok := colorful.MakeColor(a)
	if !ok {
		return a
	}
	cb, ok := colorful.MakeColor(b)
	if !ok {
		return a
	}
	return lipgloss.Color(ca.BlendLab(cb, t).Clamped().Hex())
}
