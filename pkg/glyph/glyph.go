// Package glyph maps entry kinds and statuses to the bullets printed for them.
package glyph

import (
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
)

type Glyph struct {
	Symbol  string
	Meaning string
}

func (g Glyph) String() string {
	return g.Symbol
}

var (
	TaskOpen      = Glyph{Symbol: "●", Meaning: "task"}
	TaskComplete  = Glyph{Symbol: "✘", Meaning: "task completed"}
	TaskMigrated  = Glyph{Symbol: "›", Meaning: "task migrated"}
	TaskCancelled = Glyph{Symbol: "⦵", Meaning: "task cancelled"}
	Note          = Glyph{Symbol: "⁃", Meaning: "note"}
	NoteMigrated  = Glyph{Symbol: "»", Meaning: "note migrated"}
	Event         = Glyph{Symbol: "○", Meaning: "event"}
)

// Legend lists every entry glyph in display order.
func Legend() []Glyph {
	return []Glyph{TaskOpen, TaskComplete, TaskMigrated, TaskCancelled, Note, NoteMigrated, Event}
}

// For returns the bullet for an entry shown with status.
func For(kind entry.Kind, status entry.Status) Glyph {
	switch kind {
	case entry.KindEvent:
		return Event
	case entry.KindNote:
		if status == entry.StatusMigrated {
			return NoteMigrated
		}
		return Note
	}
	switch status {
	case entry.StatusComplete:
		return TaskComplete
	case entry.StatusMigrated:
		return TaskMigrated
	case entry.StatusCancelled:
		return TaskCancelled
	default:
		return TaskOpen
	}
}

// Spread marks spreads in the hierarchy.
func Spread(p period.Period) string {
	switch p {
	case period.Year:
		return "◆"
	case period.Month:
		return "◇"
	case period.Multiday:
		return "▭"
	default:
		return "·"
	}
}
