package engine

import (
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
)

// PlanCreate returns the Inbox entries adopted by a newly created spread s:
// copies of every Inbox entry whose best spread, once s exists, is s. Entries
// already on a spread are never touched.
func PlanCreate(s *spread.Spread, snap Snapshot, cal period.Calendar) []entry.Assignable {
	adopted := make([]entry.Assignable, 0)
	if s == nil || !s.Period.IsAssignable() {
		return adopted
	}
	spreads := append(append([]*spread.Spread(nil), snap.Spreads...), s)
	for _, e := range Inbox(snap, cal) {
		if FindBestSpread(e, spreads, cal) != s {
			continue
		}
		out := e.CloneAssignable()
		list := out.AssignmentList()
		if _, _, ok := list.Find(s.Period, s.Date, cal); ok {
			continue
		}
		list.Upsert(InitialAssignment(out, s, cal), cal)
		adopted = append(adopted, out)
	}
	return adopted
}

// Reassignment is one entry affected by a spread deletion. To is nil when the
// entry falls back to the Inbox.
type Reassignment struct {
	Entry entry.Assignable `json:"entry"`
	To    *spread.Spread   `json:"to"`
}

// DeletionPlan lists the entry updates that must be persisted together with
// the removal of Spread.
type DeletionPlan struct {
	Spread   *spread.Spread `json:"spread"`
	Affected []Reassignment `json:"affected"`
}

// Updated returns the entries that must be saved.
func (p DeletionPlan) Updated() []entry.Assignable {
	out := make([]entry.Assignable, 0, len(p.Affected))
	for _, r := range p.Affected {
		out = append(out, r.Entry)
	}
	return out
}

// PlanDelete computes the cascade for deleting s. Each entry holding a record
// for s is moved to the nearest existing ancestor spread (Day, Month, Year
// chain) with the same per-spread status, and its record for s is retired as
// migrated. Without an ancestor the record is kept as is and the entry lands
// in the Inbox. Entries are never deleted; multiday spreads own no entries.
func PlanDelete(s *spread.Spread, snap Snapshot, cal period.Calendar) (DeletionPlan, error) {
	target := spread.ByID(snap.Spreads, s.ID)
	if target == nil {
		return DeletionPlan{}, &NotFoundError{What: "spread", ID: s.ID}
	}
	plan := DeletionPlan{Spread: target}
	if target.IsMultiday() {
		return plan, nil
	}

	remaining := make([]*spread.Spread, 0, len(snap.Spreads))
	for _, sp := range snap.Spreads {
		if sp != nil && sp.ID != target.ID {
			remaining = append(remaining, sp)
		}
	}
	parent := nearestAncestor(target, remaining, cal)

	for _, e := range snap.Assignables() {
		record, _, ok := e.AssignmentList().Find(target.Period, target.Date, cal)
		if !ok {
			continue
		}
		out := e.CloneAssignable()
		if parent != nil {
			list := out.AssignmentList()
			_, i, _ := list.Find(target.Period, target.Date, cal)
			live := record.Status != entry.StatusMigrated
			if live {
				list.SetStatus(i, entry.StatusMigrated)
			}
			// A retired history record must not overwrite a record the
			// entry already holds on the ancestor.
			if _, _, exists := list.Find(parent.Period, parent.Date, cal); live || !exists {
				list.Upsert(entry.Assignment{Period: parent.Period, Date: parent.Date, Status: record.Status}, cal)
			}
		}
		plan.Affected = append(plan.Affected, Reassignment{Entry: out, To: parent})
	}
	return plan, nil
}

func nearestAncestor(s *spread.Spread, spreads []*spread.Spread, cal period.Calendar) *spread.Spread {
	p, ok := s.Period.Parent()
	for ok {
		if found := spread.Find(spreads, p, s.Date, cal); found != nil {
			return found
		}
		p, ok = p.Parent()
	}
	return nil
}
