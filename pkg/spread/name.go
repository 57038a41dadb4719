package spread

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tableflip.dev/spreads/pkg/period"
)

var (
	yearFormat       = "2006"
	monthFormat      = "January 2006"
	dayFormat        = "January 2, 2006"
	monthNamePattern = regexp.MustCompile(`^[A-Za-z]+ \d{4}$`)
	yearPattern      = regexp.MustCompile(`^\d{4}$`)
	isoMonthPattern  = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	isoDayPattern    = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
)

// IsMonthName reports whether value looks like "October 2025".
func IsMonthName(name string) bool {
	if !monthNamePattern.MatchString(name) {
		return false
	}
	_, err := time.Parse(monthFormat, name)
	return err == nil
}

// IsDayName reports whether value looks like "October 11, 2025".
func IsDayName(name string) bool {
	if strings.Count(name, ",") != 1 {
		return false
	}
	_, err := time.Parse(dayFormat, name)
	return err == nil
}

// Title renders the spread the way it is shown in listings.
func (s *Spread) Title(cal period.Calendar) string {
	switch s.Period {
	case period.Year:
		return cal.In(s.Date).Format(yearFormat)
	case period.Month:
		return cal.In(s.Date).Format(monthFormat)
	case period.Day:
		return cal.In(s.Date).Format(dayFormat)
	default:
		start := cal.In(s.Start())
		end := cal.In(s.End(cal))
		if start.Year() == end.Year() {
			return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
		}
		return fmt.Sprintf("%s – %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	}
}

// ParseName infers the period and date of a spread name such as "2026",
// "January 2026", "January 5, 2026", "2026-01" or "2026-01-05".
func ParseName(name string, cal period.Calendar) (period.Period, time.Time, error) {
	name = strings.TrimSpace(name)
	loc := cal.Location
	if loc == nil {
		loc = time.Local
	}
	switch {
	case yearPattern.MatchString(name):
		t, err := time.ParseInLocation(yearFormat, name, loc)
		return period.Year, t, err
	case IsMonthName(name):
		t, err := time.ParseInLocation(monthFormat, name, loc)
		return period.Month, t, err
	case IsDayName(name):
		t, err := time.ParseInLocation(dayFormat, name, loc)
		return period.Day, t, err
	case isoMonthPattern.MatchString(name):
		t, err := time.ParseInLocation("2006-1", name, loc)
		return period.Month, t, err
	case isoDayPattern.MatchString(name):
		t, err := time.ParseInLocation("2006-1-2", name, loc)
		return period.Day, t, err
	default:
		return "", time.Time{}, fmt.Errorf("spread: cannot infer period from %q", name)
	}
}
