package spread

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/spreads/pkg/period"
)

// Validation is the outcome of the creation policy.
type Validation string

const (
	Valid        Validation = "valid"
	Duplicate    Validation = "duplicate"
	PastDate     Validation = "past_date"
	InvalidRange Validation = "invalid_range"
)

// Err returns nil for Valid and a *ValidationError otherwise.
func (v Validation) Err(req Request) error {
	if v == Valid {
		return nil
	}
	return &ValidationError{Reason: v, Request: req}
}

// ValidationError reports why a spread could not be created.
type ValidationError struct {
	Reason  Validation
	Request Request
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case Duplicate:
		return fmt.Sprintf("spread: a %s spread for %s already exists", e.Request.Period, e.Request.Date.Format("2006-01-02"))
	case PastDate:
		return fmt.Sprintf("spread: %s spread for %s is in the past", e.Request.Period, e.Request.Date.Format("2006-01-02"))
	case InvalidRange:
		return fmt.Sprintf("spread: range %s to %s ends before it starts",
			e.Request.Date.Format("2006-01-02"), e.Request.End.Format("2006-01-02"))
	default:
		return fmt.Sprintf("spread: invalid request (%s)", e.Reason)
	}
}

// Request describes a spread the user wants to create. End is only used for
// multiday spreads.
type Request struct {
	Period period.Period
	Date   time.Time
	End    time.Time
}

// CanCreate applies the creation policy: duplicates first, then the multiday
// range check, then the date check against today.
func CanCreate(req Request, existing []*Spread, today time.Time, cal period.Calendar) Validation {
	key := KeyFor(req.Period, req.Date, req.End, cal)
	for _, s := range existing {
		if s != nil && s.Key(cal) == key {
			return Duplicate
		}
	}

	if req.Period == period.Multiday {
		start := cal.StartOfDay(req.Date)
		end := cal.StartOfDay(req.End)
		day := cal.StartOfDay(today)
		if end.Before(start) {
			return InvalidRange
		}
		if end.Before(day) {
			return PastDate
		}
		// A start earlier than today is fine inside the current week so
		// "this week" works on any day of it.
		if start.Before(day) && start.Before(cal.WeekStart(today)) {
			return PastDate
		}
		return Valid
	}

	if cal.Normalize(req.Period, req.Date).Before(cal.Normalize(req.Period, today)) {
		return PastDate
	}
	return Valid
}

// Build validates req and constructs the spread. There is no other path to a
// new spread.
func Build(req Request, existing []*Spread, today time.Time, cal period.Calendar, now time.Time) (*Spread, error) {
	if !req.Period.Valid() {
		return nil, fmt.Errorf("spread: unknown period %q", req.Period)
	}
	if err := CanCreate(req, existing, today, cal).Err(req); err != nil {
		return nil, err
	}
	if req.Period == period.Multiday {
		return NewMultiday(req.Date, req.End, cal, now)
	}
	return New(req.Period, req.Date, cal, now)
}

// Preset is a named multiday range computed from today.
type Preset string

const (
	PresetThisWeek Preset = "this-week"
	PresetNextWeek Preset = "next-week"
)

// Presets lists the supported presets.
func Presets() []Preset {
	return []Preset{PresetThisWeek, PresetNextWeek}
}

// ParsePreset converts a string into a Preset.
func ParsePreset(raw string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range Presets() {
		if candidate == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("spread: unknown preset %q", raw)
}

// Request computes the multiday request for the preset using the calendar's
// first weekday.
func (p Preset) Request(today time.Time, cal period.Calendar) Request {
	start := cal.WeekStart(today)
	if p == PresetNextWeek {
		start = start.AddDate(0, 0, 7)
	}
	return Request{Period: period.Multiday, Date: start, End: start.AddDate(0, 0, 6)}
}
