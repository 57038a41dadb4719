package app

import (
	"context"

	"tableflip.dev/spreads/pkg/engine"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/logger"
	"tableflip.dev/spreads/pkg/spread"
)

// Migrate moves a task or note from one spread to another. Migration only
// ever happens on request.
func (s *Service) Migrate(ctx context.Context, id string, from, to engine.Target) (entry.Assignable, error) {
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
	moved, err := engine.Migrate(e, from, to, snap.Spreads, s.Calendar)
	if err != nil {
		return nil, err
	}
	if err := s.saveAssignable(ctx, moved); err != nil {
		return nil, err
	}
	logger.Debug("app: entry migrated", "id", id, "from", from.String(), "to", to.String())
	return moved, nil
}

// MigrationCandidates lists the open tasks on ancestors of the spread that
// could be brought onto it.
func (s *Service) MigrationCandidates(ctx context.Context, spreadID string) (*spread.Spread, []*entry.Task, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	dest, err := findSpread(snap, spreadID)
	if err != nil {
		return nil, nil, err
	}
	return dest, engine.MigrationCandidates(dest, snap, s.Calendar), nil
}

// MigrateBatch migrates the given tasks onto the spread, or every candidate
// when ids is empty. Ids that are not tasks are reported as failures and
// repeated ids count once. The saves are applied together: if one fails, the
// tasks already written are restored and the persistence error is returned.
func (s *Service) MigrateBatch(ctx context.Context, spreadID string, ids []string) (engine.BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return engine.BatchResult{}, err
	}
	dest, err := findSpread(snap, spreadID)
	if err != nil {
		return engine.BatchResult{}, err
	}

	var failed []engine.BatchFailure
	tasks := make([]*entry.Task, 0, len(ids))
	if len(ids) == 0 {
		tasks = engine.MigrationCandidates(dest, snap, s.Calendar)
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		e, err := findEntry(snap, id)
		if err != nil {
			failed = append(failed, engine.BatchFailure{TaskID: id, Err: err})
			continue
		}
		t, ok := e.(*entry.Task)
		if !ok {
			failed = append(failed, engine.BatchFailure{
				TaskID: id,
				Err:    &engine.MigrationError{Reason: engine.UnsupportedKind, EntryID: id, Kind: e.EntryKind()},
			})
			continue
		}
		tasks = append(tasks, t)
	}

	result := engine.MigrateBatch(tasks, dest, snap, s.Calendar)
	result.Failed = append(failed, result.Failed...)
	written := make([]entry.Assignable, 0, len(result.Migrated))
	for _, t := range result.Migrated {
		if err := s.Journal.Tasks.Save(ctx, t); err != nil {
			s.restore(ctx, snap, written)
			return engine.BatchResult{}, err
		}
		written = append(written, t)
	}
	logger.Debug("app: batch migrated", "spread", dest.ID, "migrated", len(result.Migrated), "failed", len(result.Failed))
	return result, nil
}
