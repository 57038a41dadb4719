// Package period defines the calendar periods a spread can be bound to and the
// normalization rules every date comparison in the journal goes through.
package period

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Period identifies the calendar granularity of a spread or entry.
type Period string

const (
	// Year spreads cover a calendar year.
	Year Period = "year"
	// Month spreads cover a calendar month.
	Month Period = "month"
	// Day spreads cover a single day.
	Day Period = "day"
	// Multiday spreads cover a custom range and never own assignments.
	Multiday Period = "multiday"
)

// All returns every supported period, coarsest first.
func All() []Period {
	return []Period{Year, Month, Day, Multiday}
}

// Assignable lists the periods an entry can be assigned to, finest first.
func Assignable() []Period {
	return []Period{Day, Month, Year}
}

// Parse converts a string to a Period or returns an error for unknown values.
func Parse(raw string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range All() {
		if candidate == p {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("period: unknown period %q", raw)
}

// Valid reports whether p is one of the known periods.
func (p Period) Valid() bool {
	_, err := Parse(string(p))
	return err == nil
}

// IsAssignable reports whether entries may hold assignments for p.
func (p Period) IsAssignable() bool {
	return p == Year || p == Month || p == Day
}

// Parent returns the next coarser period. Year and Multiday have none.
func (p Period) Parent() (Period, bool) {
	switch p {
	case Day:
		return Month, true
	case Month:
		return Year, true
	default:
		return "", false
	}
}

// Child returns the next finer period. Day and Multiday have none.
func (p Period) Child() (Period, bool) {
	switch p {
	case Year:
		return Month, true
	case Month:
		return Day, true
	default:
		return "", false
	}
}

// rank orders the assignable periods, larger is coarser.
func (p Period) rank() int {
	switch p {
	case Year:
		return 3
	case Month:
		return 2
	case Day:
		return 1
	default:
		return 0
	}
}

// Coarser reports whether p is a strict ancestor granularity of other.
// Multiday is never coarser or finer than anything.
func (p Period) Coarser(other Period) bool {
	if !p.IsAssignable() || !other.IsAssignable() {
		return false
	}
	return p.rank() > other.rank()
}

func (p Period) String() string {
	return string(p)
}

// UnmarshalJSON validates the period while decoding.
func (p *Period) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
