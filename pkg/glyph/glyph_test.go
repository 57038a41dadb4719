package glyph

import (
	"testing"

	"tableflip.dev/spreads/pkg/entry"
)

func TestFor(t *testing.T) {
	tests := []struct {
		kind   entry.Kind
		status entry.Status
		want   Glyph
	}{
		{entry.KindTask, entry.StatusOpen, TaskOpen},
		{entry.KindTask, entry.StatusComplete, TaskComplete},
		{entry.KindTask, entry.StatusMigrated, TaskMigrated},
		{entry.KindTask, entry.StatusCancelled, TaskCancelled},
		{entry.KindNote, entry.StatusActive, Note},
		{entry.KindNote, entry.StatusMigrated, NoteMigrated},
		{entry.KindEvent, "", Event},
	}
	for _, tt := range tests {
		if got := For(tt.kind, tt.status); got != tt.want {
			t.Errorf("For(%s, %s) = %s, want %s", tt.kind, tt.status, got, tt.want)
		}
	}
}
