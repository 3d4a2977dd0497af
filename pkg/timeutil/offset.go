package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	offsetPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitDays      = map[string]int{
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
	}
)

// ParseOffset parses a signed day offset such as "+1d", "-2w" or "+1w3d" and
// returns the number of days. A missing sign means forward.
func ParseOffset(input string) (int, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	sign := 1
	switch {
	case strings.HasPrefix(trimmed, "-"):
		sign = -1
		trimmed = trimmed[1:]
	case strings.HasPrefix(trimmed, "+"):
		trimmed = trimmed[1:]
	}
	if trimmed == "" {
		return 0, fmt.Errorf("empty offset %q", input)
	}

	total := 0
	remaining := trimmed
	for len(remaining) > 0 {
		matches := offsetPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid offset segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, fmt.Errorf("invalid offset value %q: %w", matches[1], err)
		}
		days, ok := unitDays[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported offset unit %q", matches[2])
		}
		total += value * days
		remaining = remaining[len(matches[0]):]
	}
	return sign * total, nil
}

// FormatOffset renders a day offset using week/day tokens, for example "-1w2d".
func FormatOffset(days int) string {
	if days == 0 {
		return "0d"
	}
	sign := "+"
	if days < 0 {
		sign = "-"
		days = -days
	}
	var b strings.Builder
	b.WriteString(sign)
	if w := days / 7; w > 0 {
		fmt.Fprintf(&b, "%dw", w)
	}
	if d := days % 7; d > 0 {
		fmt.Fprintf(&b, "%dd", d)
	}
	return b.String()
}
