package calendar

import "time"

// DateLayout is the canonical wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a canonical YYYY-MM-DD string into a midnight-UTC time.
// Dates are always constructed in UTC so that weekday and day-of-month
// arithmetic can never be shifted by a local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a time as a canonical YYYY-MM-DD string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// OrdinalOfWeekday returns the 1-based rank of date among all dates in its
// month sharing its weekday, in chronological order. The 14th of any month
// is always the 2nd occurrence of its weekday.
func OrdinalOfWeekday(date time.Time) int {
	return (date.Day()-1)/7 + 1
}

// AlignToMonth returns the ordinal-th date matching weekday in the target
// month. The second return value is false when the month has fewer than
// ordinal occurrences of that weekday (a 5th Monday does not exist in every
// month).
func AlignToMonth(weekday time.Weekday, ordinal int, year int, month time.Month) (time.Time, bool) {
	if ordinal < 1 {
		return time.Time{}, false
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	day := 1 + offset + (ordinal-1)*7
	if day > DaysInMonth(year, month) {
		return time.Time{}, false
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
