// Package engine holds the journal's assignment, migration and hierarchy
// rules. Every function is a synchronous, pure function of the snapshot and
// calendar it is given; callers own persistence and serialise mutations.
package engine

import (
	"sort"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/spread"
)

// Snapshot is an in-memory copy of every spread and entry.
type Snapshot struct {
	Spreads []*spread.Spread
	Tasks   []*entry.Task
	Notes   []*entry.Note
	Events  []*entry.Event
}

// Assignables returns tasks then notes.
func (s Snapshot) Assignables() []entry.Assignable {
	out := make([]entry.Assignable, 0, len(s.Tasks)+len(s.Notes))
	for _, t := range s.Tasks {
		if t != nil {
			out = append(out, t)
		}
	}
	for _, n := range s.Notes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Entries returns every entry in the snapshot.
func (s Snapshot) Entries() []entry.Entry {
	out := make([]entry.Entry, 0, len(s.Tasks)+len(s.Notes)+len(s.Events))
	for _, a := range s.Assignables() {
		out = append(out, a)
	}
	for _, e := range s.Events {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Lookup finds an entry by id. This is the only surface that returns
// cancelled tasks.
func (s Snapshot) Lookup(id string) (entry.Entry, bool) {
	for _, e := range s.Entries() {
		if e.EntryID() == id {
			return e, true
		}
	}
	return nil, false
}

// Spread finds a spread by id.
func (s Snapshot) Spread(id string) (*spread.Spread, bool) {
	sp := spread.ByID(s.Spreads, id)
	return sp, sp != nil
}

// sortEntries orders entries by creation time, then id.
func sortEntries[T entry.Entry](entries []T) {
	sort.SliceStable(entries, func(i, j int) bool {
		lt := entries[i].CreatedAt()
		rt := entries[j].CreatedAt()
		switch {
		case lt.IsZero() && rt.IsZero():
			return entries[i].EntryID() < entries[j].EntryID()
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		case lt.Equal(rt):
			return entries[i].EntryID() < entries[j].EntryID()
		default:
			return lt.Before(rt)
		}
	})
}
