package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
)

var cal = period.Calendar{Location: time.UTC, FirstWeekday: time.Monday}

func journals(t *testing.T) map[string]*Journal {
	t.Helper()
	diskvJournal, err := OpenDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}
	sqliteJournal, err := OpenSQLite(filepath.Join(t.TempDir(), "spreads.sqlite"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	all := map[string]*Journal{
		StorageDiskv:  diskvJournal,
		StorageSQLite: sqliteJournal,
		StorageMemory: NewMemory(),
	}
	t.Cleanup(func() {
		for _, j := range all {
			j.Close()
		}
	})
	return all
}

func TestRepositoryRoundTrip(t *testing.T) {
	now := time.Date(2026, time.January, 2, 8, 0, 0, 0, time.UTC)
	for name, j := range journals(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			s, err := spread.New(period.Day, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), cal, now)
			if err != nil {
				t.Fatal(err)
			}
			if err := j.Spreads.Save(ctx, s); err != nil {
				t.Fatalf("save spread: %v", err)
			}

			task, err := entry.NewTask("write", period.Day, s.Date, cal, now)
			if err != nil {
				t.Fatal(err)
			}
			task.Assignments.Upsert(entry.Assignment{Period: s.Period, Date: s.Date, Status: entry.StatusOpen}, cal)
			if err := j.Tasks.Save(ctx, task); err != nil {
				t.Fatalf("save task: %v", err)
			}

			// Saving again replaces the record.
			task.Title = "write more"
			if err := j.Tasks.Save(ctx, task); err != nil {
				t.Fatalf("resave task: %v", err)
			}

			spreads, err := j.Spreads.GetAll(ctx)
			if err != nil {
				t.Fatalf("get spreads: %v", err)
			}
			if len(spreads) != 1 || spreads[0].ID != s.ID || !spreads[0].Date.Equal(s.Date) {
				t.Fatalf("unexpected spreads %+v", spreads)
			}

			tasks, err := j.Tasks.GetAll(ctx)
			if err != nil {
				t.Fatalf("get tasks: %v", err)
			}
			if len(tasks) != 1 {
				t.Fatalf("expected 1 task, got %d", len(tasks))
			}
			got := tasks[0]
			if got.Title != "write more" {
				t.Errorf("title = %q", got.Title)
			}
			if _, _, ok := got.Assignments.Find(s.Period, s.Date, cal); !ok {
				t.Errorf("assignment lost in round trip")
			}

			notes, err := j.Notes.GetAll(ctx)
			if err != nil || len(notes) != 0 {
				t.Errorf("expected no notes, got %d %v", len(notes), err)
			}

			if err := j.Tasks.Delete(ctx, task); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := j.Tasks.Delete(ctx, task); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound on second delete, got %v", err)
			}
			tasks, err = j.Tasks.GetAll(ctx)
			if err != nil || len(tasks) != 0 {
				t.Fatalf("expected no tasks after delete, got %d %v", len(tasks), err)
			}
		})
	}
}

func TestSaveRequiresID(t *testing.T) {
	j := NewMemory()
	if err := j.Events.Save(context.Background(), &entry.Event{Title: "no id"}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestOpenByConfig(t *testing.T) {
	tests := map[string]struct {
		cfg     Config
		wantErr bool
	}{
		"diskv":   {cfg: Config{Storage: StorageDiskv, Path: t.TempDir()}},
		"sqlite":  {cfg: Config{Storage: StorageSQLite, Path: t.TempDir()}},
		"memory":  {cfg: Config{Storage: StorageMemory}},
		"unknown": {cfg: Config{Storage: "tape"}, wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := tt.cfg
			j, err := Open(&cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer j.Close()
			if j.Backend() != cfg.Storage {
				t.Errorf("backend = %s, want %s", j.Backend(), cfg.Storage)
			}
		})
	}
}
