package utils

import (
	"time"

	"github.com/carbonquest/carbonquest/internal/constants"
)

// Day formats a time as the standard day string (YYYY-MM-DD).
func Day(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Today returns the current day string.
func Today() string {
	return Day(time.Now())
}

// Yesterday returns the day string for the calendar day before t.
func Yesterday(t time.Time) string {
	return Day(t.AddDate(0, 0, -1))
}

// SameDay reports whether the day string matches t's calendar day.
func SameDay(day string, t time.Time) bool {
	return day == Day(t)
}

// ValidDay reports whether the string parses as a YYYY-MM-DD day.
func ValidDay(day string) bool {
	_, err := time.Parse(constants.DateFormat, day)
	return err == nil
}
