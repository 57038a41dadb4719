package app

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/spreads/pkg/engine"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/logger"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
)

// Placement is a new entry and the spread it landed on. Spread is nil when
// the entry went to the Inbox.
type Placement struct {
	Entry  entry.Entry    `json:"entry"`
	Spread *spread.Spread `json:"spread"`
}

// AddTask creates a task preferring (p, date) and assigns it.
func (s *Service) AddTask(ctx context.Context, title string, p period.Period, date time.Time) (Placement, error) {
	task, err := entry.NewTask(title, p, date, s.Calendar, s.now())
	if err != nil {
		return Placement{}, err
	}
	return s.place(ctx, task)
}

// AddNote creates a note preferring (p, date) and assigns it.
func (s *Service) AddNote(ctx context.Context, title, content string, p period.Period, date time.Time) (Placement, error) {
	note, err := entry.NewNote(title, content, p, date, s.Calendar, s.now())
	if err != nil {
		return Placement{}, err
	}
	return s.place(ctx, note)
}

func (s *Service) place(ctx context.Context, e entry.Assignable) (Placement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Placement{}, err
	}
	out, target := engine.Assign(e, snap.Spreads, s.Calendar)
	if err := s.saveAssignable(ctx, out); err != nil {
		return Placement{}, err
	}
	where := "inbox"
	if target != nil {
		where = target.ID
	}
	logger.Debug("app: entry added", "kind", out.EntryKind(), "id", out.EntryID(), "spread", where)
	return Placement{Entry: out, Spread: target}, nil
}

// AddEvent stores an event covering the days [start, end].
func (s *Service) AddEvent(ctx context.Context, title string, start, end time.Time) (*entry.Event, error) {
	if s.Journal == nil {
		return nil, errNoJournal
	}
	ev, err := entry.NewEvent(title, start, end, s.Calendar, s.now())
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Journal.Events.Save(ctx, ev); err != nil {
		return nil, err
	}
	logger.Debug("app: event added", "id", ev.ID, "start", ev.StartDate.Format("2006-01-02"))
	return ev, nil
}

// ImportResult counts the events stored and skipped by ImportEvents.
type ImportResult struct {
	Added   []*entry.Event `json:"added"`
	Skipped int            `json:"skipped"`
}

// ImportEvents stores events that are not already present. An event is
// already present when one with the same Source starts on the same day.
func (s *Service) ImportEvents(ctx context.Context, events []*entry.Event) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	type key struct {
		source string
		day    int64
	}
	seen := make(map[key]bool)
	for _, ev := range snap.Events {
		if ev.Source != "" {
			seen[key{ev.Source, s.Calendar.StartOfDay(ev.StartDate).Unix()}] = true
		}
	}

	var result ImportResult
	for _, ev := range events {
		k := key{ev.Source, s.Calendar.StartOfDay(ev.StartDate).Unix()}
		if ev.Source != "" && seen[k] {
			result.Skipped++
			continue
		}
		if err := s.Journal.Events.Save(ctx, ev); err != nil {
			return result, err
		}
		seen[k] = true
		result.Added = append(result.Added, ev)
	}
	logger.Debug("app: events imported", "added", len(result.Added), "skipped", result.Skipped)
	return result, nil
}

// Entry finds any entry by id, cancelled tasks included.
func (s *Service) Entry(ctx context.Context, id string) (entry.Entry, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return findEntry(snap, id)
}

// Complete marks a task complete on its current spread.
func (s *Service) Complete(ctx context.Context, id string) (*entry.Task, error) {
	return s.updateTask(ctx, id, func(t *entry.Task, spreads []*spread.Spread) (*entry.Task, error) {
		done, err := engine.Complete(t, spreads, s.Calendar)
		if err != nil {
			return nil, err
		}
		done.CompletedAt = entry.Stamp(s.now())
		return done, nil
	})
}

// Cancel hides a task from every view. It stays reachable by id.
func (s *Service) Cancel(ctx context.Context, id string) (*entry.Task, error) {
	return s.updateTask(ctx, id, func(t *entry.Task, _ []*spread.Spread) (*entry.Task, error) {
		return engine.Cancel(t), nil
	})
}

// Reopen marks a complete or cancelled task open again.
func (s *Service) Reopen(ctx context.Context, id string) (*entry.Task, error) {
	return s.updateTask(ctx, id, func(t *entry.Task, spreads []*spread.Spread) (*entry.Task, error) {
		return engine.Reopen(t, spreads, s.Calendar), nil
	})
}

func (s *Service) updateTask(ctx context.Context, id string, fn func(*entry.Task, []*spread.Spread) (*entry.Task, error)) (*entry.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	e, err := findEntry(snap, id)
	if err != nil {
		return nil, err
	}
	task, ok := e.(*entry.Task)
	if !ok {
		return nil, fmt.Errorf("app: %s is a %s, not a task", id, e.EntryKind())
	}
	updated, err := fn(task, snap.Spreads)
	if err != nil {
		return nil, err
	}
	if err := s.Journal.Tasks.Save(ctx, updated); err != nil {
		return nil, err
	}
	logger.Debug("app: task updated", "id", updated.ID, "status", updated.Status)
	return updated, nil
}

// Inbox lists the unassigned tasks and notes.
func (s *Service) Inbox(ctx context.Context) ([]entry.Assignable, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.Inbox(snap, s.Calendar), nil
}

// View lists the entries shown on a spread in the given mode.
func (s *Service) View(ctx context.Context, spreadID string, mode engine.Mode) (*spread.Spread, []engine.EntryView, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	sp, err := findSpread(snap, spreadID)
	if err != nil {
		return nil, nil, err
	}
	return sp, engine.SpreadView(sp, snap, s.Calendar, mode), nil
}

// Multiday aggregates the entries covered by a multiday spread.
func (s *Service) Multiday(ctx context.Context, spreadID string) (*spread.Spread, []entry.Entry, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	sp, err := findSpread(snap, spreadID)
	if err != nil {
		return nil, nil, err
	}
	if !sp.IsMultiday() {
		return nil, nil, fmt.Errorf("app: spread %s is a %s spread, not multiday", sp.ID, sp.Period)
	}
	entries := engine.EntriesForSpread(sp, snap, s.Calendar, engine.RangeOptions{IncludeEvents: s.IncludeEvents})
	return sp, entries, nil
}

// MonthCounts counts, per day of month, the visible entries dated that day.
// Tasks and notes count when they prefer a day of the month; events count on
// every day they cover.
func (s *Service) MonthCounts(ctx context.Context, month time.Time) ([]int, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	first := s.Calendar.Normalize(period.Month, month)
	next := s.Calendar.End(period.Month, first)
	counts := make([]int, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		counts = append(counts, 0)
	}
	for _, e := range snap.Assignables() {
		if e.Cancelled() {
			continue
		}
		p, date := e.Preferred()
		if p != period.Day || !s.Calendar.Same(period.Month, date, first) {
			continue
		}
		counts[s.Calendar.In(date).Day()-1]++
	}
	for _, ev := range snap.Events {
		for i := range counts {
			if ev.AppearsOn(period.Day, first.AddDate(0, 0, i), s.Calendar) {
				counts[i]++
			}
		}
	}
	return counts, nil
}
