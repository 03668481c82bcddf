// Package util holds the canonical date-key helpers used to index the
// per-user journal store. A day is keyed by an upper-case DD_MON_YYYY
// string, e.g. "01_JAN_2021".
package util

import (
	"fmt"
	"strings"
	"time"

	"audiobio/internal/common"
)

const (
	// KeyLayout is the canonical day-key layout before upper-casing.
	KeyLayout = "02_Jan_2006"
	// TitleLayout is the cosmetic bundle title layout.
	TitleLayout = "02-Jan-2006"
)

// IsValidKey reports whether s is a canonical day key: it must parse as
// DD_MON_YYYY and already be fully upper-case.
func IsValidKey(s string) bool {
	if _, err := time.Parse(KeyLayout, s); err != nil {
		return false
	}
	return s == strings.ToUpper(s)
}

// CanonicalKey builds the canonical day key for numeric day/month/year
// input. Calendrically impossible dates (month 13, day 32, Feb 30) are
// rejected with ErrInvalidDate.
func CanonicalKey(day, month, year int) (string, error) {
	if year < 1 || month < 1 || month > 12 {
		return "", fmt.Errorf("%w: %02d_%02d_%04d", common.ErrInvalidDate, day, month, year)
	}
	if day < 1 || day > DaysInMonth(month, year) {
		return "", fmt.Errorf("%w: %02d_%02d_%04d", common.ErrInvalidDate, day, month, year)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return KeyFromTime(t), nil
}

// KeyFromTime returns the canonical day key for the calendar day of t.
func KeyFromTime(t time.Time) string {
	return strings.ToUpper(t.Format(KeyLayout))
}

// TodayKey returns the canonical key for the current UTC date.
func TodayKey() string {
	return KeyFromTime(time.Now().UTC())
}

// TodayKeyIn returns the canonical key for the current date in the
// supplied timezone.
func TodayKeyIn(loc *time.Location) string {
	return KeyFromTime(time.Now().In(loc))
}

// TitleFromTime returns the display title for the calendar day of t.
func TitleFromTime(t time.Time) string {
	return t.Format(TitleLayout)
}

// DaysInMonth returns the number of days in the given month, handling
// leap years.
func DaysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseKey converts a canonical day key back to a time value. Used for
// sorting journal listings by date.
func ParseKey(s string) (time.Time, error) {
	t, err := time.Parse(KeyLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", common.ErrInvalidDate, s)
	}
	return t, nil
}
