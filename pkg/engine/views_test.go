package engine

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
)

func TestEntriesOnModes(t *testing.T) {
	a := mustSpread(t, period.Day, day(2026, time.January, 5))
	b := mustSpread(t, period.Day, day(2026, time.January, 6))
	spreads := []*spread.Spread{a, b}
	stay := assigned(t, mustTask(t, "stay", period.Day, day(2026, time.January, 5)), spreads)
	moved, err := Migrate(assigned(t, mustTask(t, "move", period.Day, day(2026, time.January, 5)), spreads),
		TargetOf(a), TargetOf(b), spreads, cal)
	if err != nil {
		t.Fatal(err)
	}
	ev, err := entry.NewEvent("trip", day(2026, time.January, 4), day(2026, time.January, 5), cal, created)
	if err != nil {
		t.Fatal(err)
	}
	snap := Snapshot{Spreads: spreads, Tasks: []*entry.Task{stay, moved.(*entry.Task)}, Events: []*entry.Event{ev}}

	conv := EntriesOn(TargetOf(a), snap, cal, Conventional)
	if len(conv) != 3 {
		t.Fatalf("conventional: expected 3 views, got %d", len(conv))
	}
	statuses := map[string]entry.Status{}
	for _, v := range conv {
		statuses[v.Entry.EntryID()] = v.Status
	}
	if statuses[moved.EntryID()] != entry.StatusMigrated {
		t.Errorf("migrated history should show as migrated, got %q", statuses[moved.EntryID()])
	}
	if statuses[stay.ID] != entry.StatusOpen {
		t.Errorf("stay should be open, got %q", statuses[stay.ID])
	}

	trad := EntriesOn(TargetOf(a), snap, cal, Traditional)
	if len(trad) != 2 {
		t.Fatalf("traditional: expected 2 views, got %d", len(trad))
	}

	// A virtual month target works without a month spread.
	virtual := EntriesOn(Target{Period: period.Month, Date: day(2026, time.January, 1)}, snap, cal, Traditional)
	if len(virtual) != 1 || virtual[0].Entry.EntryKind() != entry.KindEvent {
		t.Fatalf("expected only the event on the virtual month, got %d", len(virtual))
	}
}

func TestSpreadViewMultiday(t *testing.T) {
	md := mustMultiday(t, day(2026, time.January, 5), day(2026, time.January, 11))
	in := mustTask(t, "in", period.Day, day(2026, time.January, 7))
	out := mustTask(t, "out", period.Day, day(2026, time.January, 12))
	gone := mustTask(t, "gone", period.Day, day(2026, time.January, 8))
	gone = Cancel(gone)
	snap := Snapshot{Spreads: []*spread.Spread{md}, Tasks: []*entry.Task{in, out, gone}}

	views := SpreadView(md, snap, cal, Conventional)
	if len(views) != 1 || views[0].Entry.EntryID() != in.ID {
		t.Fatalf("expected only the in-range task, got %d views", len(views))
	}
	if in.AssignmentList().Len() != 0 {
		t.Errorf("aggregation must not assign")
	}
}

func TestTaskLifecycle(t *testing.T) {
	d := mustSpread(t, period.Day, day(2026, time.January, 5))
	spreads := []*spread.Spread{d}
	task := assigned(t, mustTask(t, "cycle", period.Day, day(2026, time.January, 5)), spreads)

	done, err := Complete(task, spreads, cal)
	if err != nil {
		t.Fatal(err)
	}
	if done.Status != entry.StatusComplete || statusAt(t, done, d) != entry.StatusComplete {
		t.Fatalf("complete did not mirror onto the assignment")
	}

	cancelled := Cancel(done)
	if _, err := Complete(cancelled, spreads, cal); !errors.Is(err, ErrTaskCancelled) {
		t.Fatalf("expected ErrTaskCancelled, got %v", err)
	}
	snap := Snapshot{Spreads: spreads, Tasks: []*entry.Task{cancelled}}
	if len(EntriesOn(TargetOf(d), snap, cal, Conventional)) != 0 {
		t.Errorf("cancelled task should be hidden")
	}
	if _, ok := snap.Lookup(cancelled.ID); !ok {
		t.Errorf("cancelled task should be reachable by id")
	}

	reopened := Reopen(cancelled, spreads, cal)
	if reopened.Status != entry.StatusOpen || statusAt(t, reopened, d) != entry.StatusOpen {
		t.Fatalf("reopen did not restore the task")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(""); err != nil || m != Conventional {
		t.Errorf("empty mode = %v %v", m, err)
	}
	if m, err := ParseMode("Traditional"); err != nil || m != Traditional {
		t.Errorf("traditional = %v %v", m, err)
	}
	if _, err := ParseMode("weekly"); err == nil {
		t.Errorf("expected an error")
	}
}
