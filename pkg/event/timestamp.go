package event

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutMinute = "2006-01-02 15:04"
	layoutISO    = "2006-01-02"
)

// ParseTime accepts RFC 3339, "2006-01-02 15:04" and "2006-01-02" values.
// The latter two are interpreted in loc; a nil loc means time.Local.
func ParseTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("event: empty time value")
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutMinute, v, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(layoutISO, v, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("event: unrecognised time %q", v)
	}
	return t, nil
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// FormatTime renders t for logs and error messages.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
