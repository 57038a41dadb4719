package timeutil

import (
	"testing"
	"time"

	"tableflip.dev/spreads/pkg/period"
)

func TestParseDate(t *testing.T) {
	cal := period.Calendar{Location: time.UTC, FirstWeekday: time.Monday}
	// Thursday afternoon.
	today := time.Date(2026, time.January, 8, 15, 4, 0, 0, time.UTC)
	day := func(m time.Month, d int) time.Time { return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "", want: day(time.January, 8)},
		{in: "today", want: day(time.January, 8)},
		{in: "Tomorrow", want: day(time.January, 9)},
		{in: "yesterday", want: day(time.January, 7)},
		{in: "2026-02-14", want: day(time.February, 14)},
		{in: "+3d", want: day(time.January, 11)},
		{in: "+1w", want: day(time.January, 15)},
		{in: "-2d", want: day(time.January, 6)},
		{in: "monday", want: day(time.January, 12)},
		{in: "thu", want: day(time.January, 8)},
		{in: "+2h", wantErr: true},
		{in: "someday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in, today, cal)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
