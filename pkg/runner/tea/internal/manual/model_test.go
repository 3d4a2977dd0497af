package manual

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func plain(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		switch {
		case r == ansi.Marker:
			inSeq = true
		case inSeq:
			inSeq = !ansi.IsTerminator(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestRendersMarkdown(t *testing.T) {
	m := New(80, 30, true)
	if err := m.Err(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if view := plain(m.View()); !strings.Contains(view, "Moving around") {
		t.Fatalf("expected the manual heading in %q", view)
	}
}
