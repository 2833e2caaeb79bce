package timerules

import (
	"errors"
	"testing"

	"timesheet/internal/domain"
)

func TestFormatHM(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{-5, "-00:05"},
		{90, "01:30"},
		{-90, "-01:30"},
		{1439, "23:59"},
		{-1439, "-23:59"},
		{3000, "50:00"},
	}
	for _, tt := range tests {
		if got := FormatHM(tt.minutes); got != tt.want {
			t.Errorf("FormatHM(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
	if got := FormatOptionalHM(nil); got != Placeholder {
		t.Errorf("FormatOptionalHM(nil) = %q", got)
	}
}

func TestHMRoundTrip(t *testing.T) {
	for x := -1439; x <= 1439; x++ {
		got, ok := ParseHM(FormatHM(x))
		if !ok || got != x {
			t.Fatalf("ParseHM(FormatHM(%d)) = (%d, %v)", x, got, ok)
		}
	}
}

func TestParseHMRejects(t *testing.T) {
	for _, s := range []string{"", "--:--", "1:5", "1:60", "abc", "12", "1:30:00"} {
		if _, ok := ParseHM(s); ok {
			t.Errorf("ParseHM(%q) accepted", s)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"9:05", 545, false},
		{" 23:59 ", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12", 0, true},
		{"-01:00", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("ParseClock(%q) err = %v, want validation error", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseClock(%q) = (%d, %v), want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestParseBreak(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"   ", 0, false},
		{"30", 30, false},
		{"0", 0, false},
		{"1:30", 90, false},
		{"0:45", 45, false},
		{"1 : 05", 65, false},
		{"-15", -15, false},
		{"-0:30", -30, false},
		{"- 1:00", -60, false},
		{"+20", 20, false},
		{"-", 0, false},
		{"1:5", 0, true},
		{"1:75", 0, true},
		{"30min", 0, true},
		{"1.5", 0, true},
		{"abc", 0, true},
		{"1:30:00", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseBreak(tt.in)
		if tt.wantErr {
			if !errors.Is(err, domain.ErrInvalidBreak) {
				t.Errorf("ParseBreak(%q) err = %v, want ErrInvalidBreak", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseBreak(%q) = (%d, %v), want %d", tt.in, got, err, tt.want)
		}
	}
}
