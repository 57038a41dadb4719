package entry

import (
	"encoding/json"
	"testing"
	"time"

	"tableflip.dev/spreads/pkg/period"
)

var cal = period.Calendar{Location: time.UTC, FirstWeekday: time.Monday}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTaskNormalizesDate(t *testing.T) {
	now := day(2026, time.January, 2)
	task, err := NewTask("write report", period.Month, time.Date(2026, time.January, 17, 10, 0, 0, 0, time.UTC), cal, now)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if !task.Date.Equal(day(2026, time.January, 1)) {
		t.Fatalf("expected month start, got %v", task.Date)
	}
	if task.Status != StatusOpen {
		t.Fatalf("expected open status, got %s", task.Status)
	}
	if len(task.ID) != idLength {
		t.Fatalf("unexpected id %q", task.ID)
	}
}

func TestNewTaskRejectsMultiday(t *testing.T) {
	if _, err := NewTask("x", period.Multiday, day(2026, time.January, 1), cal, time.Now()); err == nil {
		t.Fatal("expected multiday period to be rejected")
	}
	if _, err := NewNote("  ", "", period.Day, day(2026, time.January, 1), cal, time.Now()); err == nil {
		t.Fatal("expected empty title to be rejected")
	}
}

func TestAssignmentsUpsertKeepsOnePerKey(t *testing.T) {
	var a Assignments
	a.Upsert(Assignment{Period: period.Day, Date: time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC), Status: StatusOpen}, cal)
	a.Upsert(Assignment{Period: period.Day, Date: time.Date(2026, time.January, 5, 22, 0, 0, 0, time.UTC), Status: StatusMigrated}, cal)
	a.Upsert(Assignment{Period: period.Month, Date: day(2026, time.January, 5), Status: StatusOpen}, cal)

	if a.Len() != 2 {
		t.Fatalf("expected 2 assignments, got %d", a.Len())
	}
	got, _, ok := a.Find(period.Day, day(2026, time.January, 5), cal)
	if !ok || got.Status != StatusMigrated {
		t.Fatalf("expected updated day assignment, got %+v (%v)", got, ok)
	}
	if _, _, ok := a.Find(period.Day, day(2026, time.January, 6), cal); ok {
		t.Fatal("unexpected match for another day")
	}
	month, _, ok := a.Find(period.Month, day(2026, time.January, 20), cal)
	if !ok || !month.Date.Equal(day(2026, time.January, 1)) {
		t.Fatalf("expected normalized month assignment, got %+v", month)
	}
}

func TestAssignmentMatchesRequiresSamePeriod(t *testing.T) {
	a := Assignment{Period: period.Month, Date: day(2026, time.January, 1), Status: StatusOpen}
	if a.Matches(period.Day, day(2026, time.January, 1), cal) {
		t.Fatal("month assignment must not match a day spread")
	}
	if !a.Matches(period.Month, day(2026, time.January, 31), cal) {
		t.Fatal("month assignment should match any date in the month")
	}
}

func TestTaskJSONRoundTripKeepsHistory(t *testing.T) {
	task, err := NewTask("call mom", period.Day, day(2026, time.January, 5), cal, day(2026, time.January, 1))
	if err != nil {
		t.Fatal(err)
	}
	task.Assignments.Upsert(Assignment{Period: period.Day, Date: day(2026, time.January, 5), Status: StatusMigrated}, cal)
	task.Assignments.Upsert(Assignment{Period: period.Day, Date: day(2026, time.January, 6), Status: StatusOpen}, cal)

	b, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Task
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Assignments.Len() != 2 {
		t.Fatalf("expected 2 assignments, got %d", out.Assignments.Len())
	}
	if !out.Created.Equal(task.Created.Time) {
		t.Fatalf("created mismatch: %v vs %v", out.Created, task.Created)
	}
	if _, _, ok := out.Assignments.Find(period.Day, day(2026, time.January, 6), cal); !ok {
		t.Fatal("expected decoded assignment to be indexed")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	task, _ := NewTask("x", period.Day, day(2026, time.January, 5), cal, day(2026, time.January, 1))
	task.Assignments.Upsert(Assignment{Period: period.Day, Date: task.Date, Status: StatusOpen}, cal)
	cp := task.Clone()
	cp.Assignments.SetStatus(0, StatusComplete)
	if task.Assignments.At(0).Status != StatusOpen {
		t.Fatal("clone shares assignment storage with original")
	}
}

func TestEventAppearsOn(t *testing.T) {
	ev, err := NewEvent("conference", day(2026, time.January, 30), day(2026, time.February, 2), cal, day(2026, time.January, 1))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		p    period.Period
		date time.Time
		want bool
	}{
		{"first day", period.Day, day(2026, time.January, 30), true},
		{"last day", period.Day, day(2026, time.February, 2), true},
		{"day after", period.Day, day(2026, time.February, 3), false},
		{"january", period.Month, day(2026, time.January, 1), true},
		{"march", period.Month, day(2026, time.March, 1), false},
		{"year", period.Year, day(2026, time.June, 1), true},
		{"previous year", period.Year, day(2025, time.June, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ev.AppearsOn(tt.p, tt.date, cal); got != tt.want {
				t.Fatalf("AppearsOn = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := NewEvent("bad", day(2026, time.January, 3), day(2026, time.January, 2), cal, time.Now()); err == nil {
		t.Fatal("expected reversed range to fail")
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus(KindNote, "complete"); err == nil {
		t.Fatal("notes cannot be complete")
	}
	if s, err := ParseStatus(KindTask, "Cancelled"); err != nil || s != StatusCancelled {
		t.Fatalf("parse cancelled: %v %v", s, err)
	}
	if _, err := ParseStatus(KindEvent, "open"); err == nil {
		t.Fatal("events have no status")
	}
}

func TestTimestampKeepsNanoseconds(t *testing.T) {
	at := time.Date(2026, time.January, 5, 9, 30, 0, 123456789, time.FixedZone("X", 3600))
	b, err := json.Marshal(Stamp(at))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Timestamp
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal %s: %v", b, err)
	}
	if !got.Equal(at) {
		t.Fatalf("round trip = %v, want %v", got, at)
	}

	for _, in := range []string{`""`, `null`} {
		var z Timestamp
		if err := json.Unmarshal([]byte(in), &z); err != nil || !z.IsZero() {
			t.Fatalf("Unmarshal(%s) = %v, %v; want zero", in, z, err)
		}
	}
}
