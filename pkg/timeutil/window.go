// Package timeutil parses the short look-back windows used by "list --since".
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const day = 24 * time.Hour

var units = map[string]time.Duration{
	"m": time.Minute, "min": time.Minute,
	"h": time.Hour, "hr": time.Hour,
	"d": day, "day": day, "days": day,
	"w": 7 * day, "wk": 7 * day, "week": 7 * day, "weeks": 7 * day,
}

// ParseWindow reads windows such as "3d", "1w" or "1w2d12h". An empty
// string is a zero window, meaning no limit.
func ParseWindow(s string) (time.Duration, error) {
	rest := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	var total time.Duration
	for rest != "" {
		i := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) })
		if i <= 0 {
			return 0, fmt.Errorf("invalid window %q", s)
		}
		n, err := strconv.Atoi(rest[:i])
		if err != nil {
			return 0, fmt.Errorf("invalid window %q: %w", s, err)
		}
		rest = rest[i:]

		j := strings.IndexFunc(rest, unicode.IsDigit)
		if j < 0 {
			j = len(rest)
		}
		unit, ok := units[rest[:j]]
		if !ok {
			return 0, fmt.Errorf("unknown unit %q in window %q", rest[:j], s)
		}
		total += time.Duration(n) * unit
		rest = rest[j:]
	}
	return total, nil
}

// Cutoff is the earliest time inside window. A zero window has no cutoff.
func Cutoff(now time.Time, window time.Duration) time.Time {
	if window <= 0 {
		return time.Time{}
	}
	return now.Add(-window)
}
