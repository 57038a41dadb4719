package engine

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
)

// Mode selects how entries are gathered for a spread.
type Mode string

const (
	// Conventional shows entries holding an assignment for the spread,
	// migrated history included.
	Conventional Mode = "conventional"
	// Traditional shows entries whose preferred period and date equal the
	// spread's, assignments ignored. Any period can be viewed virtually.
	Traditional Mode = "traditional"
)

// ParseMode converts a string into a Mode. Empty means Conventional.
func ParseMode(raw string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(raw))); m {
	case "":
		return Conventional, nil
	case Conventional, Traditional:
		return m, nil
	default:
		return "", fmt.Errorf("engine: unknown mode %q", raw)
	}
}

// EntryView is an entry as shown on one spread. Status is the per-spread
// status in conventional mode and the entry's own status otherwise. Events
// have no status.
type EntryView struct {
	Entry  entry.Entry  `json:"entry"`
	Status entry.Status `json:"status,omitempty"`
}

// EntriesOn lists the entries shown on the Year, Month or Day context t.
// Cancelled tasks never appear; events are included when they intersect t.
func EntriesOn(t Target, snap Snapshot, cal period.Calendar, mode Mode) []EntryView {
	assignables := make([]entry.Assignable, 0)
	status := make(map[string]entry.Status)
	for _, e := range snap.Assignables() {
		if e.Cancelled() {
			continue
		}
		switch mode {
		case Traditional:
			p, date := e.Preferred()
			if p == t.Period && cal.Same(p, date, t.Date) {
				assignables = append(assignables, e)
				status[e.EntryID()] = e.CurrentStatus()
			}
		default:
			if r, _, ok := e.AssignmentList().Find(t.Period, t.Date, cal); ok {
				assignables = append(assignables, e)
				status[e.EntryID()] = r.Status
			}
		}
	}
	sortEntries(assignables)

	out := make([]EntryView, 0, len(assignables))
	for _, e := range assignables {
		out = append(out, EntryView{Entry: e, Status: status[e.EntryID()]})
	}
	events := make([]*entry.Event, 0)
	for _, ev := range snap.Events {
		if ev != nil && ev.AppearsOn(t.Period, t.Date, cal) {
			events = append(events, ev)
		}
	}
	sortEntries(events)
	for _, ev := range events {
		out = append(out, EntryView{Entry: ev})
	}
	return out
}

// SpreadView lists the entries shown on s. Multiday spreads aggregate by
// date range in either mode.
func SpreadView(s *spread.Spread, snap Snapshot, cal period.Calendar, mode Mode) []EntryView {
	if !s.IsMultiday() {
		return EntriesOn(TargetOf(s), snap, cal, mode)
	}
	entries := EntriesForSpread(s, snap, cal, RangeOptions{IncludeEvents: true})
	out := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		v := EntryView{Entry: e}
		if a, ok := e.(entry.Assignable); ok {
			v.Status = a.CurrentStatus()
		}
		out = append(out, v)
	}
	return out
}

// ErrTaskCancelled is returned when completing a cancelled task.
var ErrTaskCancelled = errors.New("task is cancelled")

// Complete marks a copy of t complete, together with its current assignment.
// Callers stamp CompletedAt.
func Complete(t *entry.Task, spreads []*spread.Spread, cal period.Calendar) (*entry.Task, error) {
	if t.Cancelled() {
		return nil, fmt.Errorf("complete %s: %w", t.ID, ErrTaskCancelled)
	}
	return setTaskStatus(t, entry.StatusComplete, spreads, cal), nil
}

// Reopen marks a copy of t open again. A cancelled task is restored; its
// current assignment, if any, is reopened.
func Reopen(t *entry.Task, spreads []*spread.Spread, cal period.Calendar) *entry.Task {
	return setTaskStatus(t, entry.StatusOpen, spreads, cal)
}

// Cancel marks a copy of t cancelled. Assignments are untouched: a cancelled
// task disappears from every view and from the Inbox but stays reachable by id.
func Cancel(t *entry.Task) *entry.Task {
	out := t.Clone()
	out.Status = entry.StatusCancelled
	return out
}

func setTaskStatus(t *entry.Task, s entry.Status, spreads []*spread.Spread, cal period.Calendar) *entry.Task {
	out := t.Clone()
	out.Status = s
	if s != entry.StatusComplete {
		out.CompletedAt = entry.Timestamp{}
	}
	if r, _, ok := CurrentAssignment(out, spreads, cal); ok {
		list := out.AssignmentList()
		_, i, _ := list.Find(r.Period, r.Date, cal)
		list.SetStatus(i, s)
	}
	return out
}
