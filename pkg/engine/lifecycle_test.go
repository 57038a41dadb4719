package engine

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
)

func TestPlanCreateAdoptsInboxEntries(t *testing.T) {
	task := mustTask(t, "waiting", period.Day, day(2026, time.January, 5))
	other := mustTask(t, "other day", period.Day, day(2026, time.January, 6))
	note := mustNote(t, "memo", period.Day, day(2026, time.January, 5))
	snap := Snapshot{Tasks: []*entry.Task{task, other}, Notes: []*entry.Note{note}}

	d := mustSpread(t, period.Day, day(2026, time.January, 5))
	adopted := PlanCreate(d, snap, cal)
	if len(adopted) != 2 {
		t.Fatalf("expected 2 adopted entries, got %d", len(adopted))
	}
	for _, e := range adopted {
		if e.EntryID() == other.ID {
			t.Errorf("entry for another day was adopted")
		}
		if _, _, ok := e.AssignmentList().Find(d.Period, d.Date, cal); !ok {
			t.Errorf("%q has no assignment for the new spread", e.EntryTitle())
		}
	}
	if task.AssignmentList().Len() != 0 {
		t.Errorf("PlanCreate mutated the snapshot")
	}
}

func TestPlanCreateLeavesPlacedEntries(t *testing.T) {
	year := mustSpread(t, period.Year, day(2026, time.January, 1))
	task := assigned(t, mustTask(t, "yearly", period.Year, day(2026, time.January, 1)), []*spread.Spread{year})
	snap := Snapshot{Spreads: []*spread.Spread{year}, Tasks: []*entry.Task{task}}

	month := mustSpread(t, period.Month, day(2026, time.January, 1))
	if adopted := PlanCreate(month, snap, cal); len(adopted) != 0 {
		t.Fatalf("expected nothing adopted, got %d", len(adopted))
	}
}

func TestPlanDeleteMovesToAncestor(t *testing.T) {
	year := mustSpread(t, period.Year, day(2026, time.January, 1))
	month := mustSpread(t, period.Month, day(2026, time.January, 1))
	spreads := []*spread.Spread{year, month}
	task := assigned(t, mustTask(t, "monthly", period.Month, day(2026, time.January, 1)), spreads)
	snap := Snapshot{Spreads: spreads, Tasks: []*entry.Task{task}}

	plan, err := PlanDelete(month, snap, cal)
	if err != nil {
		t.Fatalf("plan delete: %v", err)
	}
	if len(plan.Affected) != 1 {
		t.Fatalf("expected 1 affected entry, got %d", len(plan.Affected))
	}
	r := plan.Affected[0]
	if r.To != year {
		t.Fatalf("expected reassignment to the year spread, got %v", r.To)
	}
	if got := statusAt(t, r.Entry, month); got != entry.StatusMigrated {
		t.Errorf("month record status = %s, want migrated", got)
	}
	if got := statusAt(t, r.Entry, year); got != entry.StatusOpen {
		t.Errorf("year record status = %s, want open", got)
	}

	after := Snapshot{Spreads: []*spread.Spread{year}, Tasks: []*entry.Task{r.Entry.(*entry.Task)}}
	if len(after.Entries()) != len(snap.Entries()) {
		t.Errorf("deletion changed the entry count")
	}
	if len(Inbox(after, cal)) != 0 {
		t.Errorf("reassigned task should not be in the inbox")
	}
}

func TestPlanDeleteMirrorsStatus(t *testing.T) {
	year := mustSpread(t, period.Year, day(2026, time.January, 1))
	d := mustSpread(t, period.Day, day(2026, time.January, 5))
	spreads := []*spread.Spread{year, d}
	task := assigned(t, mustTask(t, "finished", period.Day, day(2026, time.January, 5)), spreads)
	task, err := Complete(task, spreads, cal)
	if err != nil {
		t.Fatal(err)
	}
	snap := Snapshot{Spreads: spreads, Tasks: []*entry.Task{task}}

	plan, err := PlanDelete(d, snap, cal)
	if err != nil {
		t.Fatal(err)
	}
	got := plan.Affected[0].Entry
	if s := statusAt(t, got, year); s != entry.StatusComplete {
		t.Errorf("year record = %s, want complete", s)
	}
	if s := statusAt(t, got, d); s != entry.StatusMigrated {
		t.Errorf("day record = %s, want migrated", s)
	}
}

func TestPlanDeleteCarriesMigratedHistory(t *testing.T) {
	month := mustSpread(t, period.Month, day(2026, time.January, 1))
	d := mustSpread(t, period.Day, day(2026, time.January, 5))
	later := mustSpread(t, period.Day, day(2026, time.February, 6))
	spreads := []*spread.Spread{month, d, later}
	task := assigned(t, mustTask(t, "moved on", period.Day, day(2026, time.January, 5)), spreads)
	moved, err := Migrate(task, TargetOf(d), TargetOf(later), spreads, cal)
	if err != nil {
		t.Fatal(err)
	}
	snap := Snapshot{Spreads: spreads, Tasks: []*entry.Task{moved.(*entry.Task)}}

	plan, err := PlanDelete(d, snap, cal)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Affected) != 1 || plan.Affected[0].To != month {
		t.Fatalf("expected the history to move to the month, got %+v", plan.Affected)
	}
	got := plan.Affected[0].Entry
	if s := statusAt(t, got, month); s != entry.StatusMigrated {
		t.Errorf("month record = %s, want migrated", s)
	}
	if s := statusAt(t, got, later); s != entry.StatusOpen {
		t.Errorf("live record = %s, want open", s)
	}
	if r, sp, ok := CurrentAssignment(got, []*spread.Spread{month, later}, cal); !ok || sp != later || r.Status != entry.StatusOpen {
		t.Errorf("current assignment should stay on %s", later.ID)
	}
}

func TestPlanDeleteWithoutAncestorFallsToInbox(t *testing.T) {
	d := mustSpread(t, period.Day, day(2026, time.January, 5))
	task := assigned(t, mustTask(t, "alone", period.Day, day(2026, time.January, 5)), []*spread.Spread{d})
	snap := Snapshot{Spreads: []*spread.Spread{d}, Tasks: []*entry.Task{task}}

	plan, err := PlanDelete(d, snap, cal)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Affected) != 1 || plan.Affected[0].To != nil {
		t.Fatalf("expected one inbox fallback, got %+v", plan.Affected)
	}
	after := Snapshot{Tasks: []*entry.Task{plan.Affected[0].Entry.(*entry.Task)}}
	if len(Inbox(after, cal)) != 1 {
		t.Errorf("task should be in the inbox")
	}
}

func TestPlanDeleteMultidayAffectsNothing(t *testing.T) {
	md := mustMultiday(t, day(2026, time.January, 5), day(2026, time.January, 11))
	task := mustTask(t, "inside", period.Day, day(2026, time.January, 6))
	snap := Snapshot{Spreads: []*spread.Spread{md}, Tasks: []*entry.Task{task}}

	plan, err := PlanDelete(md, snap, cal)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Affected) != 0 {
		t.Fatalf("expected no affected entries, got %d", len(plan.Affected))
	}
}

func TestPlanDeleteUnknownSpread(t *testing.T) {
	d := mustSpread(t, period.Day, day(2026, time.January, 5))
	_, err := PlanDelete(d, Snapshot{}, cal)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
