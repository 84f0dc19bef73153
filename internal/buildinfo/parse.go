// Package buildinfo parses build timestamps in the layout C compilers use for
// the __DATE__ and __TIME__ macros, e.g. "Dec 26 2018" and "12:34:56".
package buildinfo

import (
	"errors"
	"fmt"
	"time"

	"github.com/jroosing/apphelpers/internal/timefmt"
)

var (
	// ErrInvalidDate is returned for dates not in "Mmm DD YYYY" layout.
	ErrInvalidDate = errors.New("invalid build date")
	// ErrInvalidTime is returned for times not in "HH:MM:SS" layout.
	ErrInvalidTime = errors.New("invalid build time")
)

var monthIndex = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// Datetime is a parsed build timestamp.
type Datetime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// ParseDate parses "Mmm DD YYYY". The compiler pads single-digit days with a
// space ("Jan  5 2021"), which is accepted.
func ParseDate(s string) (Datetime, error) {
	if len(s) != 11 || s[3] != ' ' || s[6] != ' ' {
		return Datetime{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	month, ok := monthIndex[s[0:3]]
	if !ok {
		return Datetime{}, fmt.Errorf("%w: unknown month %q", ErrInvalidDate, s[0:3])
	}
	dayText := s[4:6]
	if dayText[0] == ' ' {
		dayText = dayText[1:]
	}
	day, err := parseDigits(dayText)
	if err != nil {
		return Datetime{}, fmt.Errorf("%w: day in %q", ErrInvalidDate, s)
	}
	year, err := parseDigits(s[7:11])
	if err != nil {
		return Datetime{}, fmt.Errorf("%w: year in %q", ErrInvalidDate, s)
	}
	if day < 1 || day > timefmt.DaysInMonth(year, month) {
		return Datetime{}, fmt.Errorf("%w: day %d out of range in %q", ErrInvalidDate, day, s)
	}
	return Datetime{Year: year, Month: month, Day: day}, nil
}

// ParseTime parses "HH:MM:SS" into the time-of-day fields of a Datetime.
func ParseTime(s string) (Datetime, error) {
	if len(s) != 8 || s[2] != ':' || s[5] != ':' {
		return Datetime{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	fields := [3]struct {
		text string
		max  int
	}{
		{s[0:2], 23},
		{s[3:5], 59},
		{s[6:8], 59},
	}
	var vals [3]int
	for i, f := range fields {
		v, err := parseDigits(f.text)
		if err != nil || v > f.max {
			return Datetime{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
		vals[i] = v
	}
	return Datetime{Hour: vals[0], Minute: vals[1], Second: vals[2]}, nil
}

// ParseDateTime combines ParseDate and ParseTime.
func ParseDateTime(date, clock string) (Datetime, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Datetime{}, err
	}
	t, err := ParseTime(clock)
	if err != nil {
		return Datetime{}, err
	}
	d.Hour, d.Minute, d.Second = t.Hour, t.Minute, t.Second
	return d, nil
}

// Time returns the timestamp as a UTC time.Time.
func (d Datetime) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, d.Second, 0, time.UTC)
}

// Weekday returns the day of the week of the date.
func (d Datetime) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// parseDigits accepts ASCII digits only, no sign or padding.
func parseDigits(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty number")
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a digit in %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
