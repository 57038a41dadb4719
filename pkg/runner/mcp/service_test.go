package mcp

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/glyph"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/store"
)

var today = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

func newTestService() *Service {
	return NewService(&app.Service{
		Journal:       store.NewMemory(),
		Calendar:      period.Calendar{Location: time.UTC, FirstWeekday: time.Monday},
		IncludeEvents: true,
		Now:           func() time.Time { return today.Add(9 * time.Hour) },
	})
}

func TestServiceAddEntryDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	dto, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Test item"})
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if dto.Kind != "task" {
		t.Fatalf("expected task kind, got %s", dto.Kind)
	}
	if dto.Period != "day" || dto.Date != "2026-01-05" {
		t.Fatalf("expected day 2026-01-05, got %s %s", dto.Period, dto.Date)
	}
	if dto.Spread != "" {
		t.Fatalf("expected inbox placement, got spread %s", dto.Spread)
	}
	if dto.Status != "open" || dto.StatusSymbol != glyph.TaskOpen.Symbol {
		t.Fatalf("expected open task, got %s %s", dto.Status, dto.StatusSymbol)
	}
	if dto.ID == "" {
		t.Fatalf("expected generated id")
	}

	inbox, err := svc.Inbox(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(inbox) != 1 || inbox[0].ID != dto.ID {
		t.Fatalf("expected task in inbox, got %+v", inbox)
	}
}

func TestServiceCreateSpreadAdoptsInbox(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	task, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Finish report", Date: "2026-01-07"})
	if err != nil {
		t.Fatal(err)
	}
	sp, adopted, err := svc.CreateSpread(ctx, CreateSpreadOptions{Period: "day", Date: "2026-01-07"})
	if err != nil {
		t.Fatalf("CreateSpread failed: %v", err)
	}
	if sp.Title != "January 7, 2026" {
		t.Fatalf("unexpected title %q", sp.Title)
	}
	if len(adopted) != 1 || adopted[0].ID != task.ID || adopted[0].Spread != sp.ID {
		t.Fatalf("expected adopted task on %s, got %+v", sp.ID, adopted)
	}

	if _, _, err := svc.CreateSpread(ctx, CreateSpreadOptions{Period: "day", Date: "2026-01-07"}); err == nil {
		t.Fatalf("expected duplicate spread error")
	}
	if _, _, err := svc.CreateSpread(ctx, CreateSpreadOptions{Period: "multiday", Date: "2026-01-07"}); err == nil {
		t.Fatalf("expected missing end error")
	}
}

func TestServiceCompleteAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	month, _, err := svc.CreateSpread(ctx, CreateSpreadOptions{Period: "month", Date: "2026-01-05"})
	if err != nil {
		t.Fatal(err)
	}
	day, _, err := svc.CreateSpread(ctx, CreateSpreadOptions{Period: "day"})
	if err != nil {
		t.Fatal(err)
	}
	task, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Ship it"})
	if err != nil {
		t.Fatal(err)
	}
	if task.Spread != day.ID {
		t.Fatalf("expected task on day spread, got %q", task.Spread)
	}

	done, err := svc.SetTaskStatus(ctx, task.ID, "complete")
	if err != nil {
		t.Fatalf("SetTaskStatus failed: %v", err)
	}
	if done.Status != "complete" || done.CompletedAt == "" {
		t.Fatalf("expected completed task, got %+v", done)
	}
	if _, err := svc.SetTaskStatus(ctx, task.ID, "archive"); err == nil {
		t.Fatalf("expected unknown action error")
	}

	deleted, moves, err := svc.DeleteSpread(ctx, day.ID)
	if err != nil {
		t.Fatalf("DeleteSpread failed: %v", err)
	}
	if deleted.ID != day.ID {
		t.Fatalf("deleted %s, want %s", deleted.ID, day.ID)
	}
	if len(moves) != 1 || moves[0].Spread != month.ID || moves[0].Entry.Status != "complete" {
		t.Fatalf("expected completed task moved to month, got %+v", moves)
	}
}

func TestServiceMigrateByName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, _, err := svc.CreateSpread(ctx, CreateSpreadOptions{Period: "month", Date: "2026-01-01"}); err != nil {
		t.Fatal(err)
	}
	task, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Plan", Period: "month"})
	if err != nil {
		t.Fatal(err)
	}
	day, _, err := svc.CreateSpread(ctx, CreateSpreadOptions{Period: "day", Date: "2026-01-06"})
	if err != nil {
		t.Fatal(err)
	}

	moved, err := svc.MigrateEntry(ctx, task.ID, "January 2026", "2026-01-06")
	if err != nil {
		t.Fatalf("MigrateEntry failed: %v", err)
	}
	if moved.Spread != day.ID || moved.Period != "day" || moved.Date != "2026-01-06" {
		t.Fatalf("unexpected migrated entry %+v", moved)
	}

	_, conventional, err := svc.SpreadEntries(ctx, "January 2026", "conventional")
	if err != nil {
		t.Fatal(err)
	}
	if len(conventional) != 1 || conventional[0].Status != "migrated" {
		t.Fatalf("expected migrated record on month, got %+v", conventional)
	}
	_, traditional, err := svc.SpreadEntries(ctx, "January 2026", "traditional")
	if err != nil {
		t.Fatal(err)
	}
	if len(traditional) != 0 {
		t.Fatalf("expected month empty in traditional mode, got %+v", traditional)
	}
}

func TestServiceRequiresJournal(t *testing.T) {
	var svc *Service
	if _, err := svc.ListSpreads(context.Background()); err == nil {
		t.Fatalf("expected error without a journal")
	}
}
