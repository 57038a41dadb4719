package engine

import (
	"testing"
	"time"

	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
)

func TestOrganize(t *testing.T) {
	y26 := mustSpread(t, period.Year, day(2026, time.January, 1))
	jan := mustSpread(t, period.Month, day(2026, time.January, 1))
	d5 := mustSpread(t, period.Day, day(2026, time.January, 5))
	d3 := mustSpread(t, period.Day, day(2026, time.January, 3))
	week := mustMultiday(t, day(2026, time.January, 5), day(2026, time.January, 11))
	short := mustMultiday(t, day(2026, time.January, 5), day(2026, time.January, 7))
	feb := mustSpread(t, period.Day, day(2026, time.February, 2))
	y27 := mustSpread(t, period.Year, day(2027, time.January, 1))

	tree := Organize([]*spread.Spread{y27, feb, week, d5, jan, short, d3, y26}, cal)
	if len(tree.Years) != 2 || tree.Years[0].Year != 2026 || tree.Years[1].Year != 2027 {
		t.Fatalf("unexpected years %+v", tree.Years)
	}
	y := tree.Years[0]
	if y.Spread != y26 {
		t.Errorf("year node should carry the year spread")
	}
	if len(y.Months) != 2 || y.Months[0].Month != time.January || y.Months[1].Month != time.February {
		t.Fatalf("unexpected months %+v", y.Months)
	}
	if y.Months[0].Spread != jan {
		t.Errorf("january node should carry the month spread")
	}
	if y.Months[1].Spread != nil {
		t.Errorf("february has no explicit month spread")
	}
	want := []*spread.Spread{d3, d5, short, week}
	items := y.Months[0].Items
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("item %d = %s, want %s", i, items[i].Title(cal), want[i].Title(cal))
		}
	}
	if tree.Len() != 8 {
		t.Errorf("Len = %d, want 8", tree.Len())
	}
}

func TestCompareMultidayTieBreaks(t *testing.T) {
	a := mustMultiday(t, day(2026, time.January, 5), day(2026, time.January, 11))
	b := mustMultiday(t, day(2026, time.January, 5), day(2026, time.January, 11))
	a.ID, b.ID = "aaa", "bbb"
	if CompareMultiday(a, b, cal) >= 0 {
		t.Errorf("lower id should win a full tie")
	}
	b.Created = entry.Stamp(created.Add(-time.Hour))
	if CompareMultiday(b, a, cal) >= 0 {
		t.Errorf("earlier creation should win")
	}
	c := mustMultiday(t, day(2026, time.January, 4), day(2026, time.January, 20))
	if CompareMultiday(c, a, cal) >= 0 {
		t.Errorf("earlier start should win")
	}
}

func TestInitialSelection(t *testing.T) {
	year := mustSpread(t, period.Year, day(2026, time.January, 1))
	month := mustSpread(t, period.Month, day(2026, time.January, 1))
	d := mustSpread(t, period.Day, day(2026, time.January, 6))
	wide := mustMultiday(t, day(2026, time.January, 5), day(2026, time.January, 11))
	narrow := mustMultiday(t, day(2026, time.January, 5), day(2026, time.January, 8))

	tests := []struct {
		name    string
		spreads []*spread.Spread
		on      time.Time
		want    *spread.Spread
	}{
		{name: "day wins", spreads: []*spread.Spread{year, month, d, wide}, on: day(2026, time.January, 6), want: d},
		{name: "earliest end multiday", spreads: []*spread.Spread{year, month, wide, narrow}, on: day(2026, time.January, 7), want: narrow},
		{name: "month", spreads: []*spread.Spread{year, month, wide}, on: day(2026, time.January, 20), want: month},
		{name: "year", spreads: []*spread.Spread{year}, on: day(2026, time.June, 2), want: year},
		{name: "nothing", spreads: []*spread.Spread{year}, on: day(2027, time.June, 2), want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InitialSelection(tt.spreads, tt.on, cal); got != tt.want {
				t.Errorf("InitialSelection = %v, want %v", got, tt.want)
			}
		})
	}
}
