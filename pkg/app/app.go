package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tableflip.dev/spreads/pkg/engine"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/logger"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
	"tableflip.dev/spreads/pkg/store"
)

// Service provides high-level operations for spreads and entries.
// It owns the journal: every call reloads a snapshot, runs the engine and
// persists the effects, and mutations are serialised.
type Service struct {
	Journal  *store.Journal
	Calendar period.Calendar
	// IncludeEvents adds events to multiday aggregation.
	IncludeEvents bool
	// Now overrides the clock; tests pin "today" with it.
	Now func() time.Time

	mu sync.Mutex
}

var errNoJournal = errors.New("app: no persistence configured")

// New builds a Service from the loaded configuration.
func New(j *store.Journal, cfg *store.Config) (*Service, error) {
	cal, err := cfg.Calendar()
	if err != nil {
		return nil, err
	}
	return &Service{Journal: j, Calendar: cal, IncludeEvents: cfg.Events}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Today is the current day in the service calendar.
func (s *Service) Today() time.Time {
	return s.Calendar.StartOfDay(s.now())
}

// Snapshot loads every spread and entry.
func (s *Service) Snapshot(ctx context.Context) (engine.Snapshot, error) {
	if s.Journal == nil {
		return engine.Snapshot{}, errNoJournal
	}
	spreads, err := s.Journal.Spreads.GetAll(ctx)
	if err != nil {
		return engine.Snapshot{}, err
	}
	tasks, err := s.Journal.Tasks.GetAll(ctx)
	if err != nil {
		return engine.Snapshot{}, err
	}
	notes, err := s.Journal.Notes.GetAll(ctx)
	if err != nil {
		return engine.Snapshot{}, err
	}
	events, err := s.Journal.Events.GetAll(ctx)
	if err != nil {
		return engine.Snapshot{}, err
	}
	return engine.Snapshot{Spreads: spreads, Tasks: tasks, Notes: notes, Events: events}, nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Journal == nil {
		return nil, errNoJournal
	}
	return s.Journal.Watch(ctx)
}

// Spreads lists every spread in hierarchy order.
func (s *Service) Spreads(ctx context.Context) ([]*spread.Spread, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.Organize(snap.Spreads, s.Calendar).Flatten(), nil
}

// Spread finds a spread by id.
func (s *Service) Spread(ctx context.Context, id string) (*spread.Spread, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return findSpread(snap, id)
}

// TreeResult is the navigation tree and the spread to open first.
type TreeResult struct {
	Tree     engine.Tree    `json:"tree"`
	Selected *spread.Spread `json:"selected"`
}

// Tree organizes the spreads and picks the initial selection for on.
func (s *Service) Tree(ctx context.Context, on time.Time) (TreeResult, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return TreeResult{}, err
	}
	return TreeResult{
		Tree:     engine.Organize(snap.Spreads, s.Calendar),
		Selected: engine.InitialSelection(snap.Spreads, on, s.Calendar),
	}, nil
}

// CreateResult is a created spread and the Inbox entries it adopted.
type CreateResult struct {
	Spread  *spread.Spread     `json:"spread"`
	Adopted []entry.Assignable `json:"adopted"`
}

// CreateSpread validates req against the existing spreads and today, stores
// the spread and attaches the Inbox entries that now belong to it.
func (s *Service) CreateSpread(ctx context.Context, req spread.Request) (CreateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return CreateResult{}, err
	}
	created, err := spread.Build(req, snap.Spreads, s.Today(), s.Calendar, s.now())
	if err != nil {
		return CreateResult{}, err
	}
	adopted := engine.PlanCreate(created, snap, s.Calendar)

	if err := s.Journal.Spreads.Save(ctx, created); err != nil {
		return CreateResult{}, err
	}
	written := make([]entry.Assignable, 0, len(adopted))
	for _, e := range adopted {
		if err := s.saveAssignable(ctx, e); err != nil {
			s.restore(ctx, snap, written)
			if derr := s.Journal.Spreads.Delete(ctx, created); derr != nil {
				logger.Error("app: undo spread create", "id", created.ID, "err", derr)
			}
			return CreateResult{}, err
		}
		written = append(written, e)
	}

	logger.Debug("app: spread created", "id", created.ID, "period", created.Period,
		"date", created.Date.Format("2006-01-02"), "adopted", len(adopted))
	return CreateResult{Spread: created, Adopted: adopted}, nil
}

// CreatePreset creates the multiday spread for a named preset.
func (s *Service) CreatePreset(ctx context.Context, p spread.Preset) (CreateResult, error) {
	return s.CreateSpread(ctx, p.Request(s.Today(), s.Calendar))
}

// DeleteSpread removes the spread and reassigns its entries. Entry updates
// and the removal are applied together: if any write fails, entries already
// rewritten are restored and the persistence error is returned unchanged.
func (s *Service) DeleteSpread(ctx context.Context, id string) (engine.DeletionPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return engine.DeletionPlan{}, err
	}
	target, err := findSpread(snap, id)
	if err != nil {
		return engine.DeletionPlan{}, err
	}
	plan, err := engine.PlanDelete(target, snap, s.Calendar)
	if err != nil {
		return engine.DeletionPlan{}, err
	}

	written := make([]entry.Assignable, 0, len(plan.Affected))
	for _, e := range plan.Updated() {
		if err := s.saveAssignable(ctx, e); err != nil {
			s.restore(ctx, snap, written)
			return engine.DeletionPlan{}, err
		}
		written = append(written, e)
	}
	if err := s.Journal.Spreads.Delete(ctx, target); err != nil {
		s.restore(ctx, snap, written)
		return engine.DeletionPlan{}, err
	}

	logger.Debug("app: spread deleted", "id", target.ID, "period", target.Period, "affected", len(plan.Affected))
	return plan, nil
}

// restore writes back the snapshot copies of entries that were already saved.
func (s *Service) restore(ctx context.Context, snap engine.Snapshot, written []entry.Assignable) {
	for _, e := range written {
		original, ok := snap.Lookup(e.EntryID())
		if !ok {
			continue
		}
		a, ok := original.(entry.Assignable)
		if !ok {
			continue
		}
		if err := s.saveAssignable(ctx, a); err != nil {
			logger.Error("app: restore entry", "id", e.EntryID(), "err", err)
		}
	}
}

func (s *Service) saveAssignable(ctx context.Context, e entry.Assignable) error {
	switch v := e.(type) {
	case *entry.Task:
		return s.Journal.Tasks.Save(ctx, v)
	case *entry.Note:
		return s.Journal.Notes.Save(ctx, v)
	default:
		return fmt.Errorf("app: cannot save %s entries", e.EntryKind())
	}
}

func findSpread(snap engine.Snapshot, id string) (*spread.Spread, error) {
	sp, ok := snap.Spread(id)
	if !ok {
		return nil, &engine.NotFoundError{What: "spread", ID: id}
	}
	return sp, nil
}

func findEntry(snap engine.Snapshot, id string) (entry.Entry, error) {
	e, ok := snap.Lookup(id)
	if !ok {
		return nil, &engine.NotFoundError{What: "entry", ID: id}
	}
	return e, nil
}

// Resolve finds a spread by id, by "today" (the Day spread for today) or by a
// name such as "2026", "January 2026" or "2026-01-05".
func (s *Service) Resolve(ctx context.Context, ref string) (*spread.Spread, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if sp, ok := snap.Spread(ref); ok {
		return sp, nil
	}
	t, err := s.Target(ref)
	if err != nil {
		return nil, &engine.NotFoundError{What: "spread", ID: ref}
	}
	if sp := spread.Find(snap.Spreads, t.Period, t.Date, s.Calendar); sp != nil {
		return sp, nil
	}
	return nil, &engine.NotFoundError{What: "spread", ID: ref}
}

// Target parses a spread name, or "today", into a period and date.
func (s *Service) Target(ref string) (engine.Target, error) {
	if strings.EqualFold(strings.TrimSpace(ref), "today") {
		return engine.Target{Period: period.Day, Date: s.Today()}, nil
	}
	p, date, err := spread.ParseName(ref, s.Calendar)
	if err != nil {
		return engine.Target{}, err
	}
	return engine.Target{Period: p, Date: s.Calendar.Normalize(p, date)}, nil
}

// TargetOf resolves ref as a spread id first and as a name otherwise.
func (s *Service) TargetOf(ctx context.Context, ref string) (engine.Target, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return engine.Target{}, err
	}
	if sp, ok := snap.Spread(ref); ok {
		return engine.TargetOf(sp), nil
	}
	return s.Target(ref)
}
