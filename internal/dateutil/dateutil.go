// Package dateutil provides day-granular calendar helpers used by the
// inflation calculations. All functions normalize their inputs to midnight
// in the input's location, so callers may pass timestamps freely.
package dateutil

import "time"

// Truncate strips the time-of-day component, keeping year/month/day.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FirstOfMonth returns the first day of t's calendar month.
func FirstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of days in t's calendar month.
func DaysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	// Day 0 of the next month is the last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// IsLastDayOfMonth reports whether t falls on the last day of its month.
func IsLastDayOfMonth(t time.Time) bool {
	return t.Day() == DaysInMonth(t)
}

// MonthKey formats t's month as "YYYY-MM", the key format of the monthly
// inflation rate table.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DaysBetween returns the number of whole days from a to b, ignoring
// time-of-day. Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}

// MonthsBetween returns the number of complete calendar months from a to b.
// A partial trailing month does not count: 2024-01-15 to 2024-02-14 is zero
// months, to 2024-02-15 is one.
func MonthsBetween(a, b time.Time) int {
	a, b = Truncate(a), Truncate(b)
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return months
}
