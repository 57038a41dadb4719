package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/spreads/pkg/engine"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/spread"
)

// ReportSection groups completed tasks by the spread they were completed on.
// Spread is nil for tasks completed while in the Inbox.
type ReportSection struct {
	Spread *spread.Spread `json:"spread"`
	Tasks  []*entry.Task  `json:"tasks"`
}

// ReportResult encapsulates a completed-tasks report for a time window.
type ReportResult struct {
	Since    time.Time       `json:"since"`
	Until    time.Time       `json:"until"`
	Sections []ReportSection `json:"sections"`
	Total    int             `json:"total"`
}

// Report returns tasks completed between the provided bounds, grouped by
// spread in hierarchy order.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return ReportResult{}, err
	}

	grouped := make(map[string][]*entry.Task)
	total := 0
	for _, t := range snap.Tasks {
		if t.Status != entry.StatusComplete {
			continue
		}
		at := t.CompletedAt.Time
		if at.IsZero() || at.Before(since) || at.After(until) {
			continue
		}
		key := ""
		if _, sp, ok := engine.CurrentAssignment(t, snap.Spreads, s.Calendar); ok {
			key = sp.ID
		}
		grouped[key] = append(grouped[key], t)
		total++
	}

	result := ReportResult{Since: since, Until: until, Total: total}
	if total == 0 {
		return result, nil
	}
	order := engine.Organize(snap.Spreads, s.Calendar).Flatten()
	if tasks, ok := grouped[""]; ok {
		result.Sections = append(result.Sections, ReportSection{Tasks: sortByCompletion(tasks)})
	}
	for _, sp := range order {
		if tasks, ok := grouped[sp.ID]; ok {
			result.Sections = append(result.Sections, ReportSection{Spread: sp, Tasks: sortByCompletion(tasks)})
		}
	}
	return result, nil
}

func sortByCompletion(tasks []*entry.Task) []*entry.Task {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].CompletedAt.Equal(tasks[j].CompletedAt.Time) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CompletedAt.Before(tasks[j].CompletedAt.Time)
	})
	return tasks
}
