package engine

import (
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
)

// Inbox returns the tasks and notes that are not cancelled and hold no
// assignment matching an existing spread. Events never appear. The result is
// computed from the snapshot on every call.
func Inbox(snap Snapshot, cal period.Calendar) []entry.Assignable {
	out := make([]entry.Assignable, 0)
	for _, e := range snap.Assignables() {
		if InInbox(e, snap.Spreads, cal) {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out
}

// InInbox reports whether e belongs to the Inbox given the spreads.
func InInbox(e entry.Assignable, spreads []*spread.Spread, cal period.Calendar) bool {
	if e.Cancelled() {
		return false
	}
	for _, r := range e.AssignmentList().All() {
		if spread.Find(spreads, r.Period, r.Date, cal) != nil {
			return false
		}
	}
	return true
}
