package timeutil

import (
	"fmt"
	"time"
)

// unixEpochJulianDay is the Julian day number of 1970-01-01.
const unixEpochJulianDay = 2440588

const (
	layoutISO      = "2006-01-02"
	layoutISOLoose = "2006-1-2"
	layoutUSShort  = "1/2"
	layoutUSDay    = "Monday, January 2, 2006"
)

// Day is a proleptic Gregorian calendar date with no time of day, stored as
// its Julian day number so consecutive days differ by one.
type Day int

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Date returns the Day for the given year, month and day of month. Out of
// range values are normalized the way time.Date does.
func Date(year int, month time.Month, day int) Day {
	secs := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix()
	days := secs / 86400
	if secs%86400 < 0 {
		days--
	}
	return Day(unixEpochJulianDay + days)
}

// Today returns the current local day.
func Today() Day {
	return DayOf(time.Now())
}

// Julian returns the Julian day number.
func (d Day) Julian() int64 {
	return int64(d)
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	return time.Unix((int64(d)-unixEpochJulianDay)*86400, 0).UTC()
}

// AddDays returns the day n days after d; n may be negative.
func (d Day) AddDays(n int) Day {
	return d + Day(n)
}

// Next returns the following day.
func (d Day) Next() Day { return d + 1 }

// Prev returns the preceding day.
func (d Day) Prev() Day { return d - 1 }

// Key is the sortable ISO form, for example 2025-10-19.
func (d Day) Key() string {
	return d.Time().Format(layoutISO)
}

func (d Day) String() string {
	return d.Key()
}

// Long renders the day for humans, for example "Sunday, October 19, 2025".
func (d Day) Long() string {
	return d.Time().Format(layoutUSDay)
}

// ParseDay accepts "2025-10-19", "2025-10-9", "10/19" or a relative offset
// such as "+1d", "-2w" or "today". Month/day without a year resolves to the
// next occurrence on or after today.
func ParseDay(v string, today Day) (Day, error) {
	switch v {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.Prev(), nil
	case "tomorrow":
		return today.Next(), nil
	}
	if v[0] == '+' || v[0] == '-' {
		n, err := ParseOffset(v)
		if err != nil {
			return 0, err
		}
		return today.AddDays(n), nil
	}
	if t, err := time.Parse(layoutISOLoose, v); err == nil {
		return DayOf(t), nil
	}
	t, err := time.Parse(layoutUSShort, v)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q", v)
	}
	year := today.Time().Year()
	d := Date(year, t.Month(), t.Day())
	if d < today {
		d = Date(year+1, t.Month(), t.Day())
	}
	return d, nil
}
