// Package valueobject contains domain value objects for the Expense Tracker system.
package valueobject

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing a user supplied date.
// The bool marks layouts that carry a time of day.
var dateLayouts = []struct {
	layout  string
	hasTime bool
}{
	{time.RFC3339, true},
	{"2006-01-02", false},
	{"2006-01-02 15:04:05", true},
	{"01/02/2006", false},
	{"1/2/2006", false},
	{"2006/01/02", false},
	{"Jan 2, 2006", false},
	{"January 2, 2006", false},
	{"2 Jan 2006", false},
	{"02-Jan-2006", false},
	{"Jan 2 2006", false},
}

// ParseDate parses s with the first matching layout and returns midnight UTC of its calendar date.
func ParseDate(s string) (time.Time, bool) {
	t, _, ok := ParseInstant(s)
	if !ok {
		return time.Time{}, false
	}
	return StartOfDay(t), true
}

// ParseInstant parses s with the first matching layout.
// dateOnly is true when s has no time of day, in which case t is midnight UTC.
// The calendar date of an RFC 3339 value is the one in its own offset.
func ParseInstant(s string) (t time.Time, dateOnly bool, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	for _, l := range dateLayouts {
		parsed, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		if !l.hasTime {
			return StartOfDay(parsed), true, true
		}
		return parsed, false, true
	}
	return time.Time{}, false, false
}

// StartOfDay returns midnight UTC of t's calendar date in t's own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last nanosecond of t's calendar date in UTC.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
