package timeutil

import (
	"testing"
	"time"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in        string
		want      time.Duration
		wantLabel string
		wantErr   bool
	}{
		{in: "", want: 7 * day, wantLabel: "1w"},
		{in: "3d", want: 3 * day, wantLabel: "3d"},
		{in: "10 days", want: 10 * day, wantLabel: "1w3d"},
		{in: "1w2d6h30m", want: 9*day + 6*time.Hour + 30*time.Minute, wantLabel: "1w2d6h30m"},
		{in: "2 Weeks", want: 14 * day, wantLabel: "2w"},
		{in: "90s", want: 90 * time.Second, wantLabel: "1m30s"},
		{in: "0d", wantErr: true},
		{in: "3 fortnights", wantErr: true},
		{in: "d3", wantErr: true},
		{in: "3d junk", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, label, err := ParseWindow(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseWindow(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if label != tt.wantLabel {
				t.Errorf("label = %q, want %q", label, tt.wantLabel)
			}
		})
	}
}

func TestParseDays(t *testing.T) {
	if n, err := ParseDays("2w"); err != nil || n != 14 {
		t.Fatalf("ParseDays(2w) = %d, %v", n, err)
	}
	if _, err := ParseDays("36h"); err == nil {
		t.Fatal("expected error for a partial day")
	}
}

func TestFormatWindow(t *testing.T) {
	if got := FormatWindow(0); got != "0s" {
		t.Fatalf("FormatWindow(0) = %q", got)
	}
	if got := FormatWindow(8*day + time.Hour); got != "1w1d1h" {
		t.Fatalf("FormatWindow = %q", got)
	}
}
