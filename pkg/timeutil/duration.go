// Package timeutil parses the compact durations used by --for and --last.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindow is the report window used when none is provided.
	DefaultWindow = "1w"
	// DefaultLength is the event length used when none is provided.
	DefaultLength = "1h"

	day  = 24 * time.Hour
	week = 7 * day
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units          = map[string]time.Duration{
		"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
		"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
		"d": day, "day": day, "days": day,
		"w": week, "wk": week, "wks": week, "week": week, "weeks": week,
	}
	labels = []struct {
		suffix string
		size   time.Duration
	}{
		{"w", week},
		{"d", day},
		{"h", time.Hour},
		{"m", time.Minute},
	}
)

// ParseWindow parses a report window such as "1w", "3d" or "1w2d6h". Empty
// input means DefaultWindow. It returns the duration and its canonical label.
func ParseWindow(input string) (time.Duration, string, error) {
	return parse(input, DefaultWindow)
}

// ParseLength parses an event length such as "30m" or "1h30m". Empty input
// means DefaultLength.
func ParseLength(input string) (time.Duration, error) {
	d, _, err := parse(input, DefaultLength)
	return d, err
}

func parse(input, fallback string) (time.Duration, string, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		rest = fallback
	}

	var total time.Duration
	for rest != "" {
		m := segmentPattern.FindStringSubmatch(rest)
		if m == nil {
			return 0, "", fmt.Errorf("invalid duration segment %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid duration value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported duration unit %q", m[2])
		}
		total += time.Duration(n) * unit
		rest = strings.TrimSpace(rest[len(m[0]):])
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("duration must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders d with week, day, hour and minute tokens. Seconds are
// dropped.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, l := range labels {
		if d < l.size {
			continue
		}
		n := d / l.size
		d -= n * l.size
		fmt.Fprintf(&b, "%d%s", n, l.suffix)
	}
	if b.Len() == 0 {
		return "0m"
	}
	return b.String()
}
