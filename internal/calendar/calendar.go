// Package calendar is pure date arithmetic over canonical YYYY-MM-DD day
// keys. Dates are naive calendar days, not instants; the caller supplies
// the wall clock wherever "today" matters.
package calendar

import (
	"fmt"
	"time"
)

// Key returns the canonical zero-padded key for a calendar day.
func Key(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// KeyOf returns the key for the calendar day of t in t's location.
func KeyOf(t time.Time) string {
	return Key(t.Year(), t.Month(), t.Day())
}

// TodayKey returns the key for the current local day.
func TodayKey(now time.Time) string {
	return KeyOf(now)
}

// Parse splits a day key back into its components. The key must be in
// canonical form and name a real Gregorian date.
func Parse(key string) (year int, month time.Month, day int, err error) {
	t, err := time.ParseInLocation("2006-01-02", key, time.Local)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t.Year(), t.Month(), t.Day(), nil
}

// FriendlyLabel formats a day key for display, e.g. "January 2". Today's
// key gets a "Today, " prefix. An empty key yields an empty label.
func FriendlyLabel(key string, now time.Time) string {
	if key == "" {
		return ""
	}
	y, m, d, err := Parse(key)
	if err != nil {
		return key
	}
	label := time.Date(y, m, d, 0, 0, 0, 0, time.Local).Format("January 2")
	if key == TodayKey(now) {
		return "Today, " + label
	}
	return label
}

// DaysInMonth returns the number of days in the given month, correct for
// Gregorian leap years. Day 0 of the next month is the last day of this one.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the day of week of the 1st of the month,
// Sunday = 0, used to left-pad the grid with blank cells.
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// ShiftDay moves a day key by delta whole days, rolling months and years
// as needed.
func ShiftDay(key string, delta int) (string, error) {
	y, m, d, err := Parse(key)
	if err != nil {
		return "", err
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, delta)
	return KeyOf(t), nil
}

// Cursor names a displayed month, normalized to its first day.
type Cursor struct {
	Year  int
	Month time.Month
}

// CursorOf returns the cursor for the month containing t.
func CursorOf(t time.Time) Cursor {
	return Cursor{Year: t.Year(), Month: t.Month()}
}

// CursorForKey returns the cursor for the month containing the day key.
func CursorForKey(key string) (Cursor, error) {
	y, m, _, err := Parse(key)
	if err != nil {
		return Cursor{}, err
	}
	return Cursor{Year: y, Month: m}, nil
}

// Shift moves the cursor by delta whole months, rolling the year at the
// boundaries. Delta may be any integer.
func (c Cursor) Shift(delta int) Cursor {
	t := time.Date(c.Year, c.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return Cursor{Year: t.Year(), Month: t.Month()}
}

// Contains reports whether the day key falls inside the cursor's month.
func (c Cursor) Contains(key string) bool {
	y, m, _, err := Parse(key)
	if err != nil {
		return false
	}
	return y == c.Year && m == c.Month
}

// Title formats the cursor for the calendar header, e.g. "January 2025".
func (c Cursor) Title() string {
	return fmt.Sprintf("%s %d", c.Month, c.Year)
}
