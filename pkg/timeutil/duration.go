package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the report window used when none is given.
const DefaultWindow = "1w"

const day = 24 * time.Hour

type unit struct {
	label   string
	value   time.Duration
	aliases []string
}

// units are ordered largest first; FormatWindow depends on it.
var units = []unit{
	{"w", 7 * day, []string{"w", "wk", "wks", "week", "weeks"}},
	{"d", day, []string{"d", "day", "days"}},
	{"h", time.Hour, []string{"h", "hr", "hrs", "hour", "hours"}},
	{"m", time.Minute, []string{"m", "min", "mins", "minute", "minutes"}},
	{"s", time.Second, []string{"s", "sec", "secs", "second", "seconds"}},
}

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitByAlias    = func() map[string]time.Duration {
		m := make(map[string]time.Duration)
		for _, u := range units {
			for _, a := range u.aliases {
				m[a] = u.value
			}
		}
		return m
	}()
)

// ParseWindow parses a window such as "1w", "3d" or "1w2d6h" and returns it
// with its compact label. An empty input is DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		rest = DefaultWindow
	}

	var total time.Duration
	for strings.TrimSpace(rest) != "" {
		m := segmentPattern.FindStringSubmatch(rest)
		if m == nil {
			return 0, "", fmt.Errorf("invalid duration segment %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid duration value %q: %w", m[1], err)
		}
		base, ok := unitByAlias[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported duration unit %q", m[2])
		}
		total += time.Duration(n) * base
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("duration must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// ParseDays parses a window counted in whole days, e.g. "3d" or "2w".
func ParseDays(input string) (int, error) {
	d, _, err := ParseWindow(input)
	if err != nil {
		return 0, err
	}
	if d%day != 0 {
		return 0, fmt.Errorf("window %s is not a whole number of days", FormatWindow(d))
	}
	return int(d / day), nil
}

// FormatWindow renders d with w, d, h, m and s tokens, largest first.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range units {
		if d < u.value {
			continue
		}
		n := d / u.value
		d -= n * u.value
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}
