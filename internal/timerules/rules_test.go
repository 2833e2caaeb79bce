package timerules

import (
	"slices"
	"testing"

	"timesheet/internal/domain"
)

func ptr(v int) *int { return &v }

func timed(start, end, brk int) Input {
	return Input{StartMinute: ptr(start), EndMinute: ptr(end), BreakMinutes: brk}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name   string
		start  *int
		end    *int
		brk    int
		want   int
		wantOK bool
	}{
		{"regular day", ptr(540), ptr(1020), 30, 450, true},
		{"no break", ptr(480), ptr(1080), 0, 600, true},
		{"break longer than day", ptr(600), ptr(630), 60, 0, true},
		{"end before start", ptr(900), ptr(600), 0, 0, true},
		{"negative break adds time", ptr(600), ptr(660), -15, 75, true},
		{"missing start", nil, ptr(600), 0, 0, false},
		{"missing end", ptr(600), nil, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Duration(tt.start, tt.end, tt.brk)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Duration() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDurationMatchesFormulaForAllValidInputs(t *testing.T) {
	for start := 0; start < MinutesPerDay; start += 37 {
		for end := start; end < MinutesPerDay; end += 53 {
			for _, brk := range []int{0, 15, 30, 45, 120} {
				got, ok := Duration(&start, &end, brk)
				want := max(0, end-start-brk)
				if !ok || got != want || got < 0 {
					t.Fatalf("Duration(%d, %d, %d) = (%d, %v), want %d", start, end, brk, got, ok, want)
				}
			}
		}
	}
}

func TestDifference(t *testing.T) {
	if d, ok := Difference(500, true, 480); !ok || d != 20 {
		t.Errorf("Difference(500, 480) = (%d, %v)", d, ok)
	}
	if d, ok := Difference(300, true, 480); !ok || d != -180 {
		t.Errorf("Difference(300, 480) = (%d, %v)", d, ok)
	}
	if _, ok := Difference(0, false, 480); ok {
		t.Error("Difference of undefined duration must be undefined")
	}
}

func TestCheckRules(t *testing.T) {
	// 2024-03-04 is a Monday.
	const monday = "2024-03-04"
	tests := []struct {
		name string
		in   Input
		date string
		want []Warning
	}{
		{"exactly ten hours", timed(480, 1080+45, 45), monday, nil},
		{"above ten hours", timed(480, 1081+45, 45), monday, []Warning{WarnAboveMaximum}},
		{"541 with break 44", timed(480, 480+541+44, 44), monday, []Warning{WarnBreakTooShort}},
		{"540 with break 44", timed(480, 480+540+44, 44), monday, nil},
		{"361 with break 29", timed(480, 480+361+29, 29), monday, []Warning{WarnBreakTooShort}},
		{"361 with break 30", timed(480, 480+361+30, 30), monday, nil},
		{"360 with break 0", timed(480, 840, 0), monday, nil},
		{"long day reports break once", timed(420, 1140, 20), monday, []Warning{WarnAboveMaximum, WarnBreakTooShort}},
		{"incomplete has no warnings", Input{StartMinute: ptr(480)}, "2024-03-03", nil},
		{"no date skips calendar", timed(480, 960, 30), "", nil},
		{"unparsable date skips weekday", timed(480, 960, 30), "03.03.2024", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckRules(tt.in, tt.date, nil)
			if !slices.Equal(got, tt.want) {
				t.Errorf("CheckRules() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckRulesSundayAlwaysIncluded(t *testing.T) {
	inputs := []Input{
		timed(480, 540, 0),
		timed(480, 960, 30),
		timed(300, 1200, 0),
		timed(600, 600, 0),
	}
	for _, in := range inputs {
		got := CheckRules(in, "2024-03-03", nil)
		if !slices.Contains(got, WarnSunday) {
			t.Errorf("CheckRules(%+v) = %v, missing %q", in, got, WarnSunday)
		}
	}
}

func TestCheckRulesHoliday(t *testing.T) {
	holidays := domain.HolidayMap{"2024-12-25": "1. Weihnachtstag"}
	got := CheckRules(timed(300, 1200, 0), "2024-12-25", holidays)
	want := []Warning{WarnAboveMaximum, WarnBreakTooShort, WarnHoliday}
	if !slices.Equal(got, want) {
		t.Errorf("CheckRules() = %v, want %v", got, want)
	}
	if got := JoinWarnings(got); got != "Above maximum time, Break too short, Holiday work not allowed" {
		t.Errorf("JoinWarnings() = %q", got)
	}
}

func TestEvaluate(t *testing.T) {
	ev := Evaluate(timed(540, 1020, 30), "2024-03-04", 480, nil)
	if ev.Duration == nil || *ev.Duration != 450 {
		t.Fatalf("Duration = %v, want 450", ev.Duration)
	}
	if ev.Difference == nil || *ev.Difference != -30 {
		t.Fatalf("Difference = %v, want -30", ev.Difference)
	}
	if len(ev.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want none", ev.Warnings)
	}

	partial := Evaluate(Input{EndMinute: ptr(600)}, "2024-03-04", 480, nil)
	if partial.Duration != nil || partial.Difference != nil {
		t.Fatalf("partial entry must have no duration, got %+v", partial)
	}
	if !slices.Equal(partial.Warnings, []Warning{WarnIncomplete}) {
		t.Fatalf("partial warnings = %v", partial.Warnings)
	}

	empty := Evaluate(Input{}, "2024-03-03", 480, nil)
	if empty.Duration != nil || len(empty.Warnings) != 0 {
		t.Fatalf("empty entry = %+v", empty)
	}
}
