package util

import "time"

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// StartOfDay truncates t to midnight UTC of its calendar date
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of t's calendar month
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// TrailingWindowStart returns the first date of a window of the given number
// of days ending today, matching CURRENT_DATE - INTERVAL 'n days'
func TrailingWindowStart(now time.Time, days int) time.Time {
	return StartOfDay(now).AddDate(0, 0, -days)
}

// TrailingMonthsStart returns the first day of the earliest month in a window
// of n calendar months that ends with the current month
func TrailingMonthsStart(now time.Time, months int) time.Time {
	return MonthStart(now).AddDate(0, -(months - 1), 0)
}

// SameMonth reports whether a and b fall in the same calendar month
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
