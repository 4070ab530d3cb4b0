// utils/dates.go
package utils

import "time"

// BeginningOfDay truncates a date to midnight in its location. Birthday
// matching works on whole calendar days, so callers normalize "now" with it.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameMonthDay reports whether two dates share month and day, ignoring the year.
func SameMonthDay(a, b time.Time) bool {
	return a.Month() == b.Month() && a.Day() == b.Day()
}

// IsBirthdayToday reports whether the birthday's month/day equals today's.
func IsBirthdayToday(birthday, now time.Time) bool {
	return SameMonthDay(birthday, now)
}

// IsBirthdayInNextDays reports whether the birthday's month/day falls on any of
// the next `days` calendar dates after now. Today itself is excluded. Walking
// forward one day at a time keeps month and year wraparound correct.
func IsBirthdayInNextDays(birthday, now time.Time, days int) bool {
	for i := 1; i <= days; i++ {
		if SameMonthDay(birthday, now.AddDate(0, 0, i)) {
			return true
		}
	}
	return false
}

// MonthStart truncates a date to the first day of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// TrailingMonths returns the first day of each of the last n months in
// ascending order, ending with the month containing now.
func TrailingMonths(now time.Time, n int) []time.Time {
	months := make([]time.Time, 0, n)
	current := MonthStart(now)
	for i := n - 1; i >= 0; i-- {
		months = append(months, current.AddDate(0, -i, 0))
	}
	return months
}
