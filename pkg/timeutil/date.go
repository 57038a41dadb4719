package timeutil

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/spreads/pkg/period"
)

const layoutISO = "2006-01-02"

// ParseDate resolves a command line date relative to today: "today",
// "tomorrow", "yesterday", an ISO date, a weekday name (the next one on or
// after today) or a signed window such as "+3d" or "-1w". Windows are counted
// in whole days. The result is midnight in the calendar's location.
func ParseDate(input string, today time.Time, cal period.Calendar) (time.Time, error) {
	v := strings.ToLower(strings.TrimSpace(input))
	base := cal.StartOfDay(today)
	switch v {
	case "", "today":
		return base, nil
	case "tomorrow":
		return base.AddDate(0, 0, 1), nil
	case "yesterday":
		return base.AddDate(0, 0, -1), nil
	}

	if strings.HasPrefix(v, "+") || strings.HasPrefix(v, "-") {
		if strings.TrimSpace(v[1:]) == "" {
			return time.Time{}, fmt.Errorf("invalid date %q", input)
		}
		days, err := ParseDays(v[1:])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", input, err)
		}
		if v[0] == '-' {
			days = -days
		}
		return base.AddDate(0, 0, days), nil
	}

	if t, err := time.ParseInLocation(layoutISO, v, cal.In(base).Location()); err == nil {
		return t, nil
	}

	if wd, err := period.ParseWeekday(v); err == nil {
		ahead := (int(wd) - int(cal.In(base).Weekday()) + 7) % 7
		return base.AddDate(0, 0, ahead), nil
	}

	return time.Time{}, fmt.Errorf("invalid date %q: use today, tomorrow, yesterday, YYYY-MM-DD, a weekday or +Nd", input)
}
