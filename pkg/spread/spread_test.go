package spread

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/spreads/pkg/period"
)

var cal = period.Calendar{Location: time.UTC, FirstWeekday: time.Monday}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustNew(t *testing.T, p period.Period, date time.Time) *Spread {
	t.Helper()
	s, err := New(p, date, cal, day(2025, time.December, 1))
	if err != nil {
		t.Fatalf("new spread: %v", err)
	}
	return s
}

func TestCanCreate(t *testing.T) {
	today := day(2026, time.January, 2)
	existing := []*Spread{
		mustNew(t, period.Day, day(2026, time.January, 5)),
		mustNew(t, period.Month, day(2026, time.February, 1)),
	}

	tests := []struct {
		name string
		req  Request
		want Validation
	}{
		{"past day", Request{Period: period.Day, Date: day(2026, time.January, 1)}, PastDate},
		{"today", Request{Period: period.Day, Date: today}, Valid},
		{"duplicate day", Request{Period: period.Day, Date: time.Date(2026, time.January, 5, 13, 0, 0, 0, time.UTC)}, Duplicate},
		{"duplicate month by inner date", Request{Period: period.Month, Date: day(2026, time.February, 14)}, Duplicate},
		{"current month", Request{Period: period.Month, Date: day(2026, time.January, 1)}, Valid},
		{"previous month", Request{Period: period.Month, Date: day(2025, time.December, 31)}, PastDate},
		{"current year", Request{Period: period.Year, Date: day(2026, time.March, 1)}, Valid},
		{"past year", Request{Period: period.Year, Date: day(2025, time.March, 1)}, PastDate},
		{"multiday future", Request{Period: period.Multiday, Date: day(2026, time.January, 5), End: day(2026, time.January, 11)}, Valid},
		{"multiday reversed", Request{Period: period.Multiday, Date: day(2026, time.January, 11), End: day(2026, time.January, 5)}, InvalidRange},
		{"multiday started this week", Request{Period: period.Multiday, Date: day(2025, time.December, 29), End: day(2026, time.January, 4)}, Valid},
		{"multiday started last week", Request{Period: period.Multiday, Date: day(2025, time.December, 28), End: day(2026, time.January, 4)}, PastDate},
		{"multiday ended", Request{Period: period.Multiday, Date: day(2025, time.December, 29), End: day(2026, time.January, 1)}, PastDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanCreate(tt.req, existing, today, cal); got != tt.want {
				t.Fatalf("CanCreate = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSecondIdenticalRequestIsDuplicate(t *testing.T) {
	today := day(2026, time.January, 2)
	var existing []*Spread
	reqs := []Request{
		{Period: period.Day, Date: day(2026, time.January, 9)},
		{Period: period.Month, Date: day(2026, time.March, 3)},
		{Period: period.Year, Date: day(2027, time.May, 1)},
		{Period: period.Multiday, Date: day(2026, time.January, 12), End: day(2026, time.January, 18)},
	}
	for _, req := range reqs {
		s, err := Build(req, existing, today, cal, today)
		if err != nil {
			t.Fatalf("build %s: %v", req.Period, err)
		}
		existing = append(existing, s)
		if got := CanCreate(req, existing, today, cal); got != Duplicate {
			t.Fatalf("%s: second request = %s, want duplicate", req.Period, got)
		}
	}
}

func TestMultidayWithSameStartDifferentEndIsNotDuplicate(t *testing.T) {
	today := day(2026, time.January, 2)
	s, err := NewMultiday(day(2026, time.January, 5), day(2026, time.January, 11), cal, today)
	if err != nil {
		t.Fatal(err)
	}
	req := Request{Period: period.Multiday, Date: day(2026, time.January, 5), End: day(2026, time.January, 7)}
	if got := CanCreate(req, []*Spread{s}, today, cal); got != Valid {
		t.Fatalf("expected valid, got %s", got)
	}
}

func TestBuildReturnsValidationError(t *testing.T) {
	today := day(2026, time.January, 2)
	_, err := Build(Request{Period: period.Day, Date: day(2026, time.January, 1)}, nil, today, cal, today)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Reason != PastDate {
		t.Fatalf("expected past date, got %s", verr.Reason)
	}
}

func TestPresetsFollowFirstWeekday(t *testing.T) {
	// Saturday.
	today := day(2026, time.January, 3)
	this := PresetThisWeek.Request(today, cal)
	if !this.Date.Equal(day(2025, time.December, 29)) || !this.End.Equal(day(2026, time.January, 4)) {
		t.Fatalf("this week = %v..%v", this.Date, this.End)
	}
	if got := CanCreate(this, nil, today, cal); got != Valid {
		t.Fatalf("this week preset = %s, want valid", got)
	}
	next := PresetNextWeek.Request(today, cal)
	if !next.Date.Equal(day(2026, time.January, 5)) || !next.End.Equal(day(2026, time.January, 11)) {
		t.Fatalf("next week = %v..%v", next.Date, next.End)
	}

	sunday := period.Calendar{Location: time.UTC, FirstWeekday: time.Sunday}
	if got := PresetThisWeek.Request(today, sunday); !got.Date.Equal(day(2025, time.December, 28)) {
		t.Fatalf("sunday-first this week starts %v", got.Date)
	}
}

func TestTitleAndParseName(t *testing.T) {
	tests := []struct {
		name   string
		period period.Period
		date   time.Time
	}{
		{"2026", period.Year, day(2026, time.January, 1)},
		{"January 2026", period.Month, day(2026, time.January, 1)},
		{"January 5, 2026", period.Day, day(2026, time.January, 5)},
		{"2026-02", period.Month, day(2026, time.February, 1)},
		{"2026-02-14", period.Day, day(2026, time.February, 14)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, d, err := ParseName(tt.name, cal)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if p != tt.period || !d.Equal(tt.date) {
				t.Fatalf("got %s %v, want %s %v", p, d, tt.period, tt.date)
			}
		})
	}
	if _, _, err := ParseName("someday", cal); err == nil {
		t.Fatal("expected error for unknown name")
	}

	s := mustNew(t, period.Day, day(2026, time.January, 5))
	if got := s.Title(cal); got != "January 5, 2026" {
		t.Fatalf("title = %q", got)
	}
}

func TestContains(t *testing.T) {
	m, err := NewMultiday(day(2026, time.January, 5), day(2026, time.January, 11), cal, day(2026, time.January, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !m.Contains(time.Date(2026, time.January, 11, 23, 0, 0, 0, time.UTC), cal) {
		t.Fatal("expected last day to be contained")
	}
	if m.Contains(day(2026, time.January, 12), cal) {
		t.Fatal("day after range should not be contained")
	}
	month := mustNew(t, period.Month, day(2026, time.January, 1))
	if !month.Contains(day(2026, time.January, 31), cal) || month.Contains(day(2026, time.February, 1), cal) {
		t.Fatal("month containment wrong")
	}
}
