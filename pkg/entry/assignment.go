package entry

import (
	"encoding/json"
	"time"

	"tableflip.dev/spreads/pkg/period"
)

// Assignment is the per-spread status record binding an assignable entry to
// the spread identified by (Period, Date).
type Assignment struct {
	Period period.Period `json:"period"`
	Date   time.Time     `json:"date"`
	Status Status        `json:"status"`
}

// Matches reports whether the assignment binds to the spread (p, date). The
// period must be equal and both dates must normalize to the same instant.
func (a Assignment) Matches(p period.Period, date time.Time, cal period.Calendar) bool {
	if a.Period != p {
		return false
	}
	return cal.Same(p, a.Date, date)
}

type assignmentKey struct {
	period period.Period
	unix   int64
}

// Assignments is the ordered assignment history of an entry. It holds at most
// one record per (period, normalized date); the index is rebuilt lazily.
type Assignments struct {
	items []Assignment
	index map[assignmentKey]int
}

// NewAssignments builds a list from records, keeping the last record for any
// duplicated key in the position of the first.
func NewAssignments(records ...Assignment) Assignments {
	var a Assignments
	for _, r := range records {
		a.put(r)
	}
	return a
}

func keyOf(p period.Period, date time.Time) assignmentKey {
	return assignmentKey{period: p, unix: date.Unix()}
}

func (a *Assignments) reindex() {
	a.index = make(map[assignmentKey]int, len(a.items))
	for i, item := range a.items {
		a.index[keyOf(item.Period, item.Date)] = i
	}
}

func (a *Assignments) put(r Assignment) int {
	if a.index == nil {
		a.reindex()
	}
	k := keyOf(r.Period, r.Date)
	if i, ok := a.index[k]; ok {
		a.items[i] = r
		return i
	}
	a.items = append(a.items, r)
	a.index[k] = len(a.items) - 1
	return len(a.items) - 1
}

// Len returns the number of records.
func (a *Assignments) Len() int {
	return len(a.items)
}

// All returns a copy of the records in insertion order.
func (a *Assignments) All() []Assignment {
	out := make([]Assignment, len(a.items))
	copy(out, a.items)
	return out
}

// At returns the i-th record.
func (a *Assignments) At(i int) Assignment {
	return a.items[i]
}

// Find returns the record matching (p, date) under cal.
func (a *Assignments) Find(p period.Period, date time.Time, cal period.Calendar) (Assignment, int, bool) {
	if a.index == nil {
		a.reindex()
	}
	if i, ok := a.index[keyOf(p, cal.Normalize(p, date))]; ok {
		return a.items[i], i, true
	}
	// Records written under a different calendar keep their old instants.
	for i, item := range a.items {
		if item.Matches(p, date, cal) {
			return item, i, true
		}
	}
	return Assignment{}, -1, false
}

// Upsert updates the record matching r in place, or appends r. The date is
// normalized under cal before it is stored.
func (a *Assignments) Upsert(r Assignment, cal period.Calendar) int {
	r.Date = cal.Normalize(r.Period, r.Date)
	if _, i, ok := a.Find(r.Period, r.Date, cal); ok {
		a.items[i] = r
		if a.index != nil {
			a.reindex()
		}
		return i
	}
	return a.put(r)
}

// SetStatus updates the status of the i-th record.
func (a *Assignments) SetStatus(i int, s Status) {
	a.items[i].Status = s
}

// Clone returns an independent copy.
func (a *Assignments) Clone() Assignments {
	return NewAssignments(a.items...)
}

func (a Assignments) MarshalJSON() ([]byte, error) {
	if a.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a.items)
}

func (a *Assignments) UnmarshalJSON(b []byte) error {
	var records []Assignment
	if err := json.Unmarshal(b, &records); err != nil {
		return err
	}
	*a = NewAssignments(records...)
	return nil
}
