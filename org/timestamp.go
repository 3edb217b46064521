package org

import (
	"strings"
	"time"
)

// timestampLayout documents the accepted shape, "yyyy-MM-dd ddd hh:mm".
// Fields are read at fixed offsets instead of going through time.Parse so
// that any weekday abbreviation of the right width is accepted.
const timestampLayout = "2006-01-02 Mon 15:04"

// ParseTimestamp reads an org clock timestamp such as "2024-01-01 Mon 09:00"
// in loc. ok is false for any malformed input.
func ParseTimestamp(text string, loc *time.Location) (t time.Time, ok bool) {
	s := strings.TrimSpace(text)
	if len(s) != len(timestampLayout) {
		return time.Time{}, false
	}

	year, ok1 := atoiFixed(s[0:4])
	month, ok2 := atoiFixed(s[5:7])
	day, ok3 := atoiFixed(s[8:10])
	hour, ok4 := atoiFixed(s[15:17])
	minute, ok5 := atoiFixed(s[18:20])
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || hour > 23 || minute > 59 {
		return time.Time{}, false
	}

	if loc == nil {
		loc = time.Local
	}
	t = time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	// time.Date normalizes overflowing days, e.g. Feb 30 becomes Mar 2.
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// atoiFixed converts an all-digit field.
func atoiFixed(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
