package util

import (
	"strconv"
	"time"
)

const isoDate = "2006-01-02"

// ParseISODate parses a YYYY-MM-DD calendar day as midnight UTC.
// Returns (t, true) if it parsed.
func ParseISODate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(isoDate, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatISODate renders a time as its UTC calendar day.
func FormatISODate(t time.Time) string {
	return t.UTC().Format(isoDate)
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Midnight truncates a time to its UTC calendar day.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthBounds returns the first and last calendar day of a month, UTC.
func MonthBounds(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}

// WeekStart returns the Monday of the ISO week containing day.
func WeekStart(day time.Time) time.Time {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return d.AddDate(0, 0, -offset)
}

// DaysInclusive counts calendar days in [from, to].
func DaysInclusive(from, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}
