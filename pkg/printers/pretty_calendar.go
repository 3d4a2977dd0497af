package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/jotty/pkg/timeutil"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a calendar for the month holding on. Days with a non-zero
// count are bold, today is underlined.
func (pp *PrettyPrint) Month(on timeutil.Day, count func(timeutil.Day) int, today timeutil.Day) {
	first := FirstOfMonth(on)
	t := first.Time()

	tf := color.New(color.Italic)
	title := fmt.Sprintf("%s %d", t.Month(), t.Year())
	mid := (width - len(title)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", max(mid, 0)), title)

	h := color.New(color.Faint)
	_, _ = h.Fprintln(pp.out(), "Su Mo Tu We Th Fr Sa")

	d := t.Weekday()
	_, _ = fmt.Fprint(pp.out(), strings.Repeat("   ", int(d)))

	empty := color.New(color.Faint)
	busy := color.New(color.Bold)

	days := DaysIn(t)
	for i := 0; i < days; i++ {
		day := first.AddDays(i)
		p := empty
		if count(day) > 0 {
			p = busy
		}
		if day == today {
			p = color.New(color.Underline)
			if count(day) > 0 {
				p.Add(color.Bold)
			}
		}
		_, _ = p.Fprintf(pp.out(), "%2d", i+1)

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		} else if i < days-1 {
			_, _ = fmt.Fprint(pp.out(), " ")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// FirstOfMonth returns the first day of on's month.
func FirstOfMonth(on timeutil.Day) timeutil.Day {
	t := on.Time()
	return timeutil.Date(t.Year(), t.Month(), 1)
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
