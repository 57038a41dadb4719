package engine

import (
	"fmt"
	"time"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
)

// Target addresses a spread context by period and date.
type Target struct {
	Period period.Period
	Date   time.Time
}

// TargetOf returns the target of an existing spread.
func TargetOf(s *spread.Spread) Target {
	return Target{Period: s.Period, Date: s.Date}
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%s", t.Period, t.Date.Format("2006-01-02"))
}

// FindBestSpread returns the spread an entry should attach to, or nil when the
// entry belongs in the Inbox. Periods are searched finest first, and a spread
// only matches when its period equals the entry's preferred period: a Day
// entry does not attach to the Month spread containing it.
func FindBestSpread(e entry.Assignable, spreads []*spread.Spread, cal period.Calendar) *spread.Spread {
	p, date := e.Preferred()
	for _, candidate := range period.Assignable() {
		if candidate != p {
			continue
		}
		for _, s := range spreads {
			if s == nil || s.Period != candidate {
				continue
			}
			if s.Matches(candidate, date, cal) {
				return s
			}
		}
	}
	return nil
}

// InitialAssignment builds the record binding e to s. Complete tasks start
// complete; everything else starts live (open or active).
func InitialAssignment(e entry.Assignable, s *spread.Spread, cal period.Calendar) entry.Assignment {
	status := e.OpenStatus()
	if e.CurrentStatus() == entry.StatusComplete {
		status = entry.StatusComplete
	}
	return entry.Assignment{
		Period: s.Period,
		Date:   cal.Normalize(s.Period, s.Date),
		Status: status,
	}
}

// Assign returns a copy of e bound to its best spread, and that spread. When
// there is no match, or e already holds a record for the spread, the copy is
// unchanged.
func Assign(e entry.Assignable, spreads []*spread.Spread, cal period.Calendar) (entry.Assignable, *spread.Spread) {
	out := e.CloneAssignable()
	best := FindBestSpread(out, spreads, cal)
	if best == nil {
		return out, nil
	}
	list := out.AssignmentList()
	if _, _, ok := list.Find(best.Period, best.Date, cal); !ok {
		list.Upsert(InitialAssignment(out, best, cal), cal)
	}
	return out, best
}

// CurrentAssignment returns the live record of e, the latest assignment that
// is not migrated and binds to an existing spread.
func CurrentAssignment(e entry.Assignable, spreads []*spread.Spread, cal period.Calendar) (entry.Assignment, *spread.Spread, bool) {
	records := e.AssignmentList().All()
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r.Status == entry.StatusMigrated {
			continue
		}
		if s := spread.Find(spreads, r.Period, r.Date, cal); s != nil {
			return r, s, true
		}
	}
	return entry.Assignment{}, nil, false
}

// SpreadsOf returns the existing spreads e holds any assignment for.
func SpreadsOf(e entry.Assignable, spreads []*spread.Spread, cal period.Calendar) []*spread.Spread {
	var out []*spread.Spread
	for _, r := range e.AssignmentList().All() {
		if s := spread.Find(spreads, r.Period, r.Date, cal); s != nil {
			out = append(out, s)
		}
	}
	return out
}
