package engine

import (
	"encoding/json"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
)

// Migrate moves e from one spread context to another and returns the updated
// copy. The source must be a record that is not already migrated. It is kept
// as migrated; the destination record is
// created, or reopened in place if it already exists. Migration never happens
// implicitly.
func Migrate(e entry.Entry, from, to Target, spreads []*spread.Spread, cal period.Calendar) (entry.Assignable, error) {
	var a entry.Assignable
	switch v := e.(type) {
	case *entry.Task:
		a = v
	case *entry.Note:
		a = v
	case *entry.Event:
		return nil, &MigrationError{Reason: UnsupportedKind, EntryID: v.ID, Kind: entry.KindEvent}
	default:
		return nil, &MigrationError{Reason: UnsupportedKind, EntryID: e.EntryID(), Kind: e.EntryKind()}
	}
	if a.Cancelled() {
		return nil, &MigrationError{Reason: CancelledEntry, EntryID: a.EntryID(), Kind: a.EntryKind()}
	}
	if !to.Period.IsAssignable() {
		return nil, &MigrationError{Reason: InvalidDestination, EntryID: a.EntryID(), Kind: a.EntryKind()}
	}
	dest := spread.Find(spreads, to.Period, to.Date, cal)
	if dest == nil {
		return nil, &NotFoundError{What: "spread", ID: to.String()}
	}

	out := a.CloneAssignable()
	list := out.AssignmentList()
	record, src, ok := list.Find(from.Period, from.Date, cal)
	// A migrated record is history; only the live assignment can move.
	if !ok || record.Status == entry.StatusMigrated {
		return nil, &MigrationError{Reason: NoSourceAssignment, EntryID: a.EntryID(), Kind: a.EntryKind()}
	}
	list.SetStatus(src, entry.StatusMigrated)
	list.Upsert(entry.Assignment{Period: dest.Period, Date: dest.Date, Status: out.OpenStatus()}, cal)
	out.SetStatus(out.OpenStatus())
	out.SetPreferred(dest.Period, cal.Normalize(dest.Period, dest.Date))
	return out, nil
}

// IsAncestor reports whether a is a strict ancestor of b in the period
// hierarchy: a coarser period whose range contains b's date.
func IsAncestor(a, b *spread.Spread, cal period.Calendar) bool {
	if !a.Period.Coarser(b.Period) {
		return false
	}
	return cal.Contains(a.Period, a.Date, b.Date)
}

// MigrationCandidates returns the open tasks that can be batch migrated to
// dest: those whose current assignment sits on a strict ancestor of dest.
func MigrationCandidates(dest *spread.Spread, snap Snapshot, cal period.Calendar) []*entry.Task {
	out := make([]*entry.Task, 0)
	if dest == nil || !dest.Period.IsAssignable() {
		return out
	}
	for _, t := range snap.Tasks {
		if eligible(t, dest, snap.Spreads, cal) {
			out = append(out, t)
		}
	}
	sortEntries(out)
	return out
}

func eligible(t *entry.Task, dest *spread.Spread, spreads []*spread.Spread, cal period.Calendar) bool {
	if t == nil || t.Status != entry.StatusOpen {
		return false
	}
	r, current, ok := CurrentAssignment(t, spreads, cal)
	if !ok || r.Status != entry.StatusOpen {
		return false
	}
	return IsAncestor(current, dest, cal)
}

// BatchFailure records a task the batch could not migrate.
type BatchFailure struct {
	TaskID string
	Err    error
}

func (f BatchFailure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TaskID string `json:"taskId"`
		Error  string `json:"error"`
	}{f.TaskID, f.Err.Error()})
}

// BatchResult is the outcome of MigrateBatch.
type BatchResult struct {
	Migrated []*entry.Task  `json:"migrated"`
	Failed   []BatchFailure `json:"failed"`
}

// MigrateBatch migrates every eligible task to dest from its current
// assignment. It accepts tasks only; notes are migrated one at a time.
func MigrateBatch(tasks []*entry.Task, dest *spread.Spread, snap Snapshot, cal period.Calendar) BatchResult {
	var result BatchResult
	for _, t := range tasks {
		if t == nil {
			continue
		}
		if !eligible(t, dest, snap.Spreads, cal) {
			result.Failed = append(result.Failed, BatchFailure{
				TaskID: t.ID,
				Err:    &MigrationError{Reason: NotEligible, EntryID: t.ID, Kind: entry.KindTask},
			})
			continue
		}
		_, current, _ := CurrentAssignment(t, snap.Spreads, cal)
		moved, err := Migrate(t, TargetOf(current), TargetOf(dest), snap.Spreads, cal)
		if err != nil {
			result.Failed = append(result.Failed, BatchFailure{TaskID: t.ID, Err: err})
			continue
		}
		result.Migrated = append(result.Migrated, moved.(*entry.Task))
	}
	return result
}
