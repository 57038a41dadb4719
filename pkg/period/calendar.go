package period

import (
	"fmt"
	"strings"
	"time"
)

// Calendar carries the location and first weekday used for every date
// normalization. Callers supply it explicitly; nothing reads ambient state.
type Calendar struct {
	Location     *time.Location
	FirstWeekday time.Weekday
}

// DefaultCalendar uses the local time zone and weeks starting on Sunday.
func DefaultCalendar() Calendar {
	return Calendar{Location: time.Local, FirstWeekday: time.Sunday}
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// In converts t into the calendar's location.
func (c Calendar) In(t time.Time) time.Time {
	return t.In(c.loc())
}

// Date builds midnight of the given civil date in the calendar's location.
func (c Calendar) Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, c.loc())
}

// Normalize returns the canonical start of the period containing t.
// Multiday is the identity: its start is supplied by the caller.
func (c Calendar) Normalize(p Period, t time.Time) time.Time {
	if p == Multiday {
		return t
	}
	local := c.In(t)
	y, m, d := local.Date()
	switch p {
	case Year:
		return c.Date(y, time.January, 1)
	case Month:
		return c.Date(y, m, 1)
	default:
		return c.Date(y, m, d)
	}
}

// StartOfDay is Normalize(Day, t).
func (c Calendar) StartOfDay(t time.Time) time.Time {
	return c.Normalize(Day, t)
}

// Same reports whether a and b normalize to the same instant under p.
func (c Calendar) Same(p Period, a, b time.Time) bool {
	return c.Normalize(p, a).Equal(c.Normalize(p, b))
}

// End returns the exclusive end of the period containing t. For Multiday it
// returns the day after t.
func (c Calendar) End(p Period, t time.Time) time.Time {
	start := c.Normalize(p, t)
	switch p {
	case Year:
		return start.AddDate(1, 0, 0)
	case Month:
		return start.AddDate(0, 1, 0)
	default:
		return c.StartOfDay(t).AddDate(0, 0, 1)
	}
}

// Contains reports whether t falls inside the period p that contains start.
func (c Calendar) Contains(p Period, start, t time.Time) bool {
	if p == Multiday {
		return c.Same(Day, start, t)
	}
	return c.Same(p, start, t)
}

// WeekStart returns midnight of the first day of the week containing t.
func (c Calendar) WeekStart(t time.Time) time.Time {
	day := c.StartOfDay(t)
	offset := (int(day.Weekday()) - int(c.FirstWeekday) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns midnight of the last day of the week containing t.
func (c Calendar) WeekEnd(t time.Time) time.Time {
	return c.WeekStart(t).AddDate(0, 0, 6)
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(raw string) (time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return time.Sunday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if v == name || v == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("period: unknown weekday %q", raw)
}
