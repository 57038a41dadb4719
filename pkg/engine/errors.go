package engine

import (
	"errors"
	"fmt"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/spread"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports an entry or spread id that no longer exists.
type NotFoundError struct {
	What string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.What, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError is the spread creation policy error.
type ValidationError = spread.ValidationError

// MigrationReason classifies a failed migration.
type MigrationReason string

const (
	NoSourceAssignment MigrationReason = "no_source_assignment"
	UnsupportedKind    MigrationReason = "unsupported_kind"
	CancelledEntry     MigrationReason = "cancelled"
	InvalidDestination MigrationReason = "invalid_destination"
	NotEligible        MigrationReason = "not_eligible"
)

// MigrationError reports why an entry could not be migrated.
type MigrationError struct {
	Reason  MigrationReason
	EntryID string
	Kind    entry.Kind
}

func (e *MigrationError) Error() string {
	switch e.Reason {
	case NoSourceAssignment:
		return fmt.Sprintf("migrate %s: no assignment on the source spread", e.EntryID)
	case UnsupportedKind:
		return fmt.Sprintf("migrate %s: %s entries cannot be migrated", e.EntryID, e.Kind)
	case CancelledEntry:
		return fmt.Sprintf("migrate %s: cancelled tasks cannot be migrated", e.EntryID)
	case InvalidDestination:
		return fmt.Sprintf("migrate %s: destination must be a year, month or day spread", e.EntryID)
	case NotEligible:
		return fmt.Sprintf("migrate %s: not eligible for batch migration", e.EntryID)
	default:
		return fmt.Sprintf("migrate %s: %s", e.EntryID, e.Reason)
	}
}

// IsMigrationReason reports whether err is a *MigrationError with reason r.
func IsMigrationReason(err error, r MigrationReason) bool {
	var merr *MigrationError
	return errors.As(err, &merr) && merr.Reason == r
}
