// Package spread defines journal pages bound to a calendar period and the
// policy deciding when a new one may be created.
package spread

import (
	"errors"
	"fmt"
	"time"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
)

// Spread is a journal page bound to one period and normalized date. StartDate
// and EndDate are set only for multiday spreads, where Date equals StartDate.
type Spread struct {
	ID        string          `json:"id"`
	Period    period.Period   `json:"period"`
	Date      time.Time       `json:"date"`
	StartDate *time.Time      `json:"startDate,omitempty"`
	EndDate   *time.Time      `json:"endDate,omitempty"`
	Created   entry.Timestamp `json:"created"`
}

// Key identifies duplicate spreads.
type Key struct {
	Period period.Period
	Start  int64
	End    int64
}

// New builds a Year, Month or Day spread with its date normalized.
func New(p period.Period, date time.Time, cal period.Calendar, now time.Time) (*Spread, error) {
	if !p.IsAssignable() {
		return nil, fmt.Errorf("spread: use NewMultiday for %s spreads", p)
	}
	id, err := entry.NewID()
	if err != nil {
		return nil, err
	}
	return &Spread{
		ID:      id,
		Period:  p,
		Date:    cal.Normalize(p, date),
		Created: entry.Stamp(now),
	}, nil
}

// NewMultiday builds a multiday spread covering the days [start, end].
func NewMultiday(start, end time.Time, cal period.Calendar, now time.Time) (*Spread, error) {
	start = cal.StartOfDay(start)
	end = cal.StartOfDay(end)
	if end.Before(start) {
		return nil, errors.New("spread: multiday range ends before it starts")
	}
	id, err := entry.NewID()
	if err != nil {
		return nil, err
	}
	return &Spread{
		ID:        id,
		Period:    period.Multiday,
		Date:      start,
		StartDate: &start,
		EndDate:   &end,
		Created:   entry.Stamp(now),
	}, nil
}

// IsMultiday reports whether s is a custom range spread.
func (s *Spread) IsMultiday() bool {
	return s.Period == period.Multiday
}

// Start returns the first day the spread covers.
func (s *Spread) Start() time.Time {
	if s.StartDate != nil {
		return *s.StartDate
	}
	return s.Date
}

// End returns the last day the spread covers (inclusive).
func (s *Spread) End(cal period.Calendar) time.Time {
	if s.EndDate != nil {
		return *s.EndDate
	}
	return cal.End(s.Period, s.Date).AddDate(0, 0, -1)
}

// Key returns the duplicate identity of s under cal.
func (s *Spread) Key(cal period.Calendar) Key {
	return KeyFor(s.Period, s.Start(), s.End(cal), cal)
}

// KeyFor computes the duplicate identity of a prospective spread. end is only
// consulted for multiday spreads.
func KeyFor(p period.Period, date, end time.Time, cal period.Calendar) Key {
	if p == period.Multiday {
		return Key{Period: p, Start: cal.StartOfDay(date).Unix(), End: cal.StartOfDay(end).Unix()}
	}
	return Key{Period: p, Start: cal.Normalize(p, date).Unix()}
}

// Matches reports whether s is the spread (p, date).
func (s *Spread) Matches(p period.Period, date time.Time, cal period.Calendar) bool {
	if s.Period != p {
		return false
	}
	if p == period.Multiday {
		return cal.Same(period.Day, s.Start(), date)
	}
	return cal.Same(p, s.Date, date)
}

// Contains reports whether the day of t falls inside the spread.
func (s *Spread) Contains(t time.Time, cal period.Calendar) bool {
	d := cal.StartOfDay(t)
	return !d.Before(cal.StartOfDay(s.Start())) && !d.After(cal.StartOfDay(s.End(cal)))
}

// Clone returns a deep copy.
func (s *Spread) Clone() *Spread {
	cp := *s
	if s.StartDate != nil {
		v := *s.StartDate
		cp.StartDate = &v
	}
	if s.EndDate != nil {
		v := *s.EndDate
		cp.EndDate = &v
	}
	return &cp
}

// Find returns the spread in list that is (p, date).
func Find(list []*Spread, p period.Period, date time.Time, cal period.Calendar) *Spread {
	for _, s := range list {
		if s != nil && s.Matches(p, date, cal) {
			return s
		}
	}
	return nil
}

// ByID returns the spread with the given id.
func ByID(list []*Spread, id string) *Spread {
	for _, s := range list {
		if s != nil && s.ID == id {
			return s
		}
	}
	return nil
}
