package period

import (
	"testing"
	"time"
)

func utcCalendar() Calendar {
	return Calendar{Location: time.UTC, FirstWeekday: time.Monday}
}

func TestNormalize(t *testing.T) {
	cal := utcCalendar()
	in := time.Date(2026, time.March, 17, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		period Period
		want   time.Time
	}{
		{Year, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{Month, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{Day, time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC)},
		{Multiday, in},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got := cal.Normalize(tt.period, in)
			if !got.Equal(tt.want) {
				t.Fatalf("Normalize(%s) = %v, want %v", tt.period, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	cal := utcCalendar()
	dates := []time.Time{
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC),
	}
	for _, p := range All() {
		for _, d := range dates {
			once := cal.Normalize(p, d)
			twice := cal.Normalize(p, once)
			if !once.Equal(twice) {
				t.Errorf("%s: normalize not idempotent for %v: %v vs %v", p, d, once, twice)
			}
		}
	}
}

func TestNormalizeUsesCalendarLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	cal := Calendar{Location: tokyo}
	// 2026-01-04 20:00 UTC is already 2026-01-05 in Tokyo.
	in := time.Date(2026, time.January, 4, 20, 0, 0, 0, time.UTC)
	got := cal.Normalize(Day, in)
	want := time.Date(2026, time.January, 5, 0, 0, 0, 0, tokyo)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParentChild(t *testing.T) {
	if p, ok := Day.Parent(); !ok || p != Month {
		t.Fatalf("day parent = %v %v", p, ok)
	}
	if p, ok := Month.Parent(); !ok || p != Year {
		t.Fatalf("month parent = %v %v", p, ok)
	}
	if _, ok := Year.Parent(); ok {
		t.Fatal("year should have no parent")
	}
	if _, ok := Multiday.Parent(); ok {
		t.Fatal("multiday should have no parent")
	}
	if _, ok := Multiday.Child(); ok {
		t.Fatal("multiday should have no child")
	}
	if !Year.Coarser(Day) || Day.Coarser(Month) || Multiday.Coarser(Day) {
		t.Fatal("unexpected coarser ordering")
	}
}

func TestWeekBounds(t *testing.T) {
	cal := utcCalendar()
	// Saturday 2026-01-10, weeks start Monday.
	sat := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	if got, want := cal.WeekStart(sat), time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("week start %v, want %v", got, want)
	}
	if got, want := cal.WeekEnd(sat), time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("week end %v, want %v", got, want)
	}

	sunday := Calendar{Location: time.UTC, FirstWeekday: time.Sunday}
	if got, want := sunday.WeekStart(sat), time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("sunday week start %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	if p, err := Parse(" Month "); err != nil || p != Month {
		t.Fatalf("parse month: %v %v", p, err)
	}
	if _, err := Parse("week"); err == nil {
		t.Fatal("week is not a supported period")
	}
	if d, err := ParseWeekday("mon"); err != nil || d != time.Monday {
		t.Fatalf("parse weekday: %v %v", d, err)
	}
}
