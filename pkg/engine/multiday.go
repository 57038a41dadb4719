package engine

import (
	"time"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
)

// RangeOptions controls aggregation over a date range.
type RangeOptions struct {
	IncludeEvents bool
}

// EntriesForRange returns the tasks and notes whose preferred date, taken to
// the day, lies in [start, end], plus events overlapping the range when
// enabled. Cancelled tasks are left out. Nothing is assigned.
func EntriesForRange(start, end time.Time, snap Snapshot, cal period.Calendar, opts RangeOptions) []entry.Entry {
	from := cal.StartOfDay(start)
	to := cal.StartOfDay(end)
	out := make([]entry.Entry, 0)
	for _, e := range snap.Assignables() {
		if e.Cancelled() {
			continue
		}
		_, date := e.Preferred()
		d := cal.StartOfDay(date)
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, e)
	}
	if opts.IncludeEvents {
		for _, ev := range snap.Events {
			if ev != nil && ev.Overlaps(from, to, cal) {
				out = append(out, ev)
			}
		}
	}
	sortEntries(out)
	return out
}

// EntriesForSpread aggregates the entries covered by a multiday spread.
func EntriesForSpread(s *spread.Spread, snap Snapshot, cal period.Calendar, opts RangeOptions) []entry.Entry {
	return EntriesForRange(s.Start(), s.End(cal), snap, cal, opts)
}
