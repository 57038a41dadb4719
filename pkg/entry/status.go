package entry

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of an entry or of one of its assignments.
// Tasks use open, complete, migrated and cancelled; notes use active and
// migrated. Assignments never carry cancelled.
type Status string

const (
	StatusOpen      Status = "open"
	StatusComplete  Status = "complete"
	StatusMigrated  Status = "migrated"
	StatusCancelled Status = "cancelled"
	StatusActive    Status = "active"
)

// TaskStatuses returns the statuses valid for a task.
func TaskStatuses() []Status {
	return []Status{StatusOpen, StatusComplete, StatusMigrated, StatusCancelled}
}

// NoteStatuses returns the statuses valid for a note.
func NoteStatuses() []Status {
	return []Status{StatusActive, StatusMigrated}
}

// ParseStatus converts a string to a Status valid for the kind.
func ParseStatus(kind Kind, raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	var valid []Status
	switch kind {
	case KindTask:
		valid = TaskStatuses()
	case KindNote:
		valid = NoteStatuses()
	default:
		return "", fmt.Errorf("entry: %s entries have no status", kind)
	}
	for _, candidate := range valid {
		if candidate == s {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("entry: unknown %s status %q", kind, raw)
}

func (s Status) String() string {
	return string(s)
}
