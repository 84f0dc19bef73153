// Package timefmt renders second counts as clock, period and calendar strings.
//
// All functions are pure and never fail: inputs are unsigned by contract.
package timefmt

import (
	"strconv"
	"strings"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// Parts is a duration split into whole days and the time of day.
type Parts struct {
	Days    uint64
	Hours   uint8
	Minutes uint8
	Seconds uint8
}

// Breakdown splits totalSeconds into days, hours of day, minutes and seconds.
func Breakdown(totalSeconds uint64) Parts {
	return Parts{
		Days:    totalSeconds / secondsPerDay,
		Hours:   uint8(totalSeconds / secondsPerHour % 24),   //nolint:gosec // < 24
		Minutes: uint8(totalSeconds / secondsPerMinute % 60), //nolint:gosec // < 60
		Seconds: uint8(totalSeconds % 60),                    //nolint:gosec // < 60
	}
}

// FormatClock renders the time of day as HH:MM:SS. Whole days are dropped,
// so 90000 seconds renders as "01:00:00".
func FormatClock(totalSeconds uint64) string {
	p := Breakdown(totalSeconds)
	b := make([]byte, 0, 8)
	b = appendPadded(b, uint64(p.Hours), 2)
	b = append(b, ':')
	b = appendPadded(b, uint64(p.Minutes), 2)
	b = append(b, ':')
	b = appendPadded(b, uint64(p.Seconds), 2)
	return string(b)
}

// FormatPeriod renders an elapsed duration such as "3d 8h 17m 5s".
// Leading zero units are omitted; seconds are always present.
func FormatPeriod(totalSeconds uint64) string {
	return formatPeriod(totalSeconds, " ")
}

// FormatPeriodDense is FormatPeriod without separators, e.g. "3d8h17m5s".
func FormatPeriodDense(totalSeconds uint64) string {
	return formatPeriod(totalSeconds, "")
}

func formatPeriod(totalSeconds uint64, sep string) string {
	p := Breakdown(totalSeconds)
	units := [...]struct {
		value  uint64
		letter byte
	}{
		{p.Days, 'd'},
		{uint64(p.Hours), 'h'},
		{uint64(p.Minutes), 'm'},
		{uint64(p.Seconds), 's'},
	}

	var sb strings.Builder
	started := false
	for i, u := range units {
		last := i == len(units)-1
		if !started && u.value == 0 && !last {
			continue
		}
		if started {
			sb.WriteString(sep)
		}
		started = true
		sb.WriteString(strconv.FormatUint(u.value, 10))
		sb.WriteByte(u.letter)
	}
	return sb.String()
}

// appendPadded appends v in decimal, left padded with zeros to width digits.
// Wider values are written in full.
func appendPadded(b []byte, v uint64, width int) []byte {
	s := strconv.FormatUint(v, 10)
	for i := len(s); i < width; i++ {
		b = append(b, '0')
	}
	return append(b, s...)
}
