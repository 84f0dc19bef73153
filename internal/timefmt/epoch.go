package timefmt

// Civil is a calendar date and time of day in UTC.
type Civil struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

var daysPerMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month (1-12) of year.
// It returns 0 for months outside that range.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysPerMonth[month-1]
}

func daysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DecomposeEpoch converts Unix seconds to calendar fields.
func DecomposeEpoch(epochSeconds uint32) Civil {
	secs := int(epochSeconds % secondsPerDay)
	days := int(epochSeconds / secondsPerDay)

	c := Civil{
		Hour:   secs / secondsPerHour,
		Minute: secs / secondsPerMinute % 60,
		Second: secs % 60,
	}

	year := 1970
	for days >= daysInYear(year) {
		days -= daysInYear(year)
		year++
	}

	month := 1
	for days >= DaysInMonth(year, month) {
		days -= DaysInMonth(year, month)
		month++
	}

	c.Year = year
	c.Month = month
	c.Day = days + 1
	return c
}

// FormatEpochDate renders Unix seconds as "DD.MM.YYYY HH:MM:SS" in UTC.
func FormatEpochDate(epochSeconds uint32) string {
	return DecomposeEpoch(epochSeconds).String()
}

// String renders c as "DD.MM.YYYY HH:MM:SS".
func (c Civil) String() string {
	b := make([]byte, 0, 19)
	b = appendPadded(b, uint64(c.Day), 2) //nolint:gosec // fields are non-negative
	b = append(b, '.')
	b = appendPadded(b, uint64(c.Month), 2) //nolint:gosec // fields are non-negative
	b = append(b, '.')
	b = appendPadded(b, uint64(c.Year), 4) //nolint:gosec // fields are non-negative
	b = append(b, ' ')
	b = appendPadded(b, uint64(c.Hour), 2) //nolint:gosec // fields are non-negative
	b = append(b, ':')
	b = appendPadded(b, uint64(c.Minute), 2) //nolint:gosec // fields are non-negative
	b = append(b, ':')
	b = appendPadded(b, uint64(c.Second), 2) //nolint:gosec // fields are non-negative
	return string(b)
}
