// Package entry defines the journalable items: tasks, notes and events, and
// the per-spread assignment records tasks and notes carry.
package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"tableflip.dev/spreads/pkg/period"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 10
)

// Kind tags the entry variant.
type Kind string

const (
	KindTask  Kind = "task"
	KindEvent Kind = "event"
	KindNote  Kind = "note"
)

// ParseKind converts a string to a Kind.
func ParseKind(raw string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case KindTask, KindEvent, KindNote:
		return k, nil
	default:
		return "", fmt.Errorf("entry: unknown kind %q", raw)
	}
}

// NewID generates a new nanoid for an entry or spread.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// Entry is implemented by *Task, *Note and *Event only.
type Entry interface {
	EntryID() string
	EntryKind() Kind
	EntryTitle() string
	CreatedAt() time.Time
	sealed()
}

// Assignable is an entry with a preferred date and an assignment history.
type Assignable interface {
	Entry
	Preferred() (period.Period, time.Time)
	SetPreferred(p period.Period, date time.Time)
	CurrentStatus() Status
	SetStatus(s Status)
	// OpenStatus is the per-spread status of a live assignment: open for
	// tasks, active for notes.
	OpenStatus() Status
	AssignmentList() *Assignments
	Cancelled() bool
	CloneAssignable() Assignable
}

// ErrUnassignablePeriod is returned when an entry is given a multiday period.
var ErrUnassignablePeriod = errors.New("entry: period is not assignable")

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("entry: title must not be empty")
	}
	return nil
}

// Task is an actionable entry.
type Task struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Created     Timestamp     `json:"created"`
	Date        time.Time     `json:"date"`
	Period      period.Period `json:"period"`
	Status      Status        `json:"status"`
	Assignments Assignments   `json:"assignments"`
	// CompletedAt is set while the task is complete.
	CompletedAt Timestamp `json:"completedAt"`
}

// NewTask builds an open task preferring (p, date). The date is normalized
// under p.
func NewTask(title string, p period.Period, date time.Time, cal period.Calendar, now time.Time) (*Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if !p.IsAssignable() {
		return nil, fmt.Errorf("%w: %s", ErrUnassignablePeriod, p)
	}
	id, err := NewID()
	if err != nil {
		return nil, err
	}
	return &Task{
		ID:      id,
		Title:   strings.TrimSpace(title),
		Created: Stamp(now),
		Date:    cal.Normalize(p, date),
		Period:  p,
		Status:  StatusOpen,
	}, nil
}

func (t *Task) EntryID() string      { return t.ID }
func (t *Task) EntryKind() Kind      { return KindTask }
func (t *Task) EntryTitle() string   { return t.Title }
func (t *Task) CreatedAt() time.Time { return t.Created.Time }
func (t *Task) sealed()              {}

func (t *Task) Preferred() (period.Period, time.Time) { return t.Period, t.Date }

func (t *Task) SetPreferred(p period.Period, date time.Time) {
	t.Period = p
	t.Date = date
}

func (t *Task) CurrentStatus() Status        { return t.Status }
func (t *Task) SetStatus(s Status)           { t.Status = s }
func (t *Task) OpenStatus() Status           { return StatusOpen }
func (t *Task) AssignmentList() *Assignments { return &t.Assignments }
func (t *Task) Cancelled() bool              { return t.Status == StatusCancelled }
func (t *Task) CloneAssignable() Assignable  { return t.Clone() }

// Clone returns a deep copy.
func (t *Task) Clone() *Task {
	cp := *t
	cp.Assignments = t.Assignments.Clone()
	return &cp
}

// Note is a free-form entry with content.
type Note struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content,omitempty"`
	Created     Timestamp     `json:"created"`
	Date        time.Time     `json:"date"`
	Period      period.Period `json:"period"`
	Status      Status        `json:"status"`
	Assignments Assignments   `json:"assignments"`
}

// NewNote builds an active note preferring (p, date).
func NewNote(title, content string, p period.Period, date time.Time, cal period.Calendar, now time.Time) (*Note, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if !p.IsAssignable() {
		return nil, fmt.Errorf("%w: %s", ErrUnassignablePeriod, p)
	}
	id, err := NewID()
	if err != nil {
		return nil, err
	}
	return &Note{
		ID:      id,
		Title:   strings.TrimSpace(title),
		Content: content,
		Created: Stamp(now),
		Date:    cal.Normalize(p, date),
		Period:  p,
		Status:  StatusActive,
	}, nil
}

func (n *Note) EntryID() string      { return n.ID }
func (n *Note) EntryKind() Kind      { return KindNote }
func (n *Note) EntryTitle() string   { return n.Title }
func (n *Note) CreatedAt() time.Time { return n.Created.Time }
func (n *Note) sealed()              {}

func (n *Note) Preferred() (period.Period, time.Time) { return n.Period, n.Date }

func (n *Note) SetPreferred(p period.Period, date time.Time) {
	n.Period = p
	n.Date = date
}

func (n *Note) CurrentStatus() Status        { return n.Status }
func (n *Note) SetStatus(s Status)           { n.Status = s }
func (n *Note) OpenStatus() Status           { return StatusActive }
func (n *Note) AssignmentList() *Assignments { return &n.Assignments }
func (n *Note) Cancelled() bool              { return false }
func (n *Note) CloneAssignable() Assignable  { return n.Clone() }

// Clone returns a deep copy.
func (n *Note) Clone() *Note {
	cp := *n
	cp.Assignments = n.Assignments.Clone()
	return &cp
}

// Event spans a date range. Its spread membership is always computed.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Created   Timestamp `json:"created"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	// Source records where an imported event came from, e.g. an ICS UID.
	Source string `json:"source,omitempty"`
}

// NewEvent builds an event covering the days [start, end].
func NewEvent(title string, start, end time.Time, cal period.Calendar, now time.Time) (*Event, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	start = cal.StartOfDay(start)
	end = cal.StartOfDay(end)
	if end.Before(start) {
		return nil, errors.New("entry: event ends before it starts")
	}
	id, err := NewID()
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:        id,
		Title:     strings.TrimSpace(title),
		Created:   Stamp(now),
		StartDate: start,
		EndDate:   end,
	}, nil
}

func (e *Event) EntryID() string      { return e.ID }
func (e *Event) EntryKind() Kind      { return KindEvent }
func (e *Event) EntryTitle() string   { return e.Title }
func (e *Event) CreatedAt() time.Time { return e.Created.Time }
func (e *Event) sealed()              {}

// Clone returns a copy.
func (e *Event) Clone() *Event {
	cp := *e
	return &cp
}

// Overlaps reports whether the event's days intersect the days [start, end].
func (e *Event) Overlaps(start, end time.Time, cal period.Calendar) bool {
	es := cal.StartOfDay(e.StartDate)
	ee := cal.StartOfDay(e.EndDate)
	s := cal.StartOfDay(start)
	en := cal.StartOfDay(end)
	return !es.After(en) && !ee.Before(s)
}

// AppearsOn reports whether the event intersects the period p containing date.
func (e *Event) AppearsOn(p period.Period, date time.Time, cal period.Calendar) bool {
	if p == period.Multiday {
		return e.Overlaps(date, date, cal)
	}
	start := cal.Normalize(p, date)
	last := cal.End(p, date).AddDate(0, 0, -1)
	return e.Overlaps(start, last, cal)
}
