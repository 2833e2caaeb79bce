package timerules

import (
	"testing"

	"timesheet/internal/domain"
)

func TestSummarize(t *testing.T) {
	note := "doctor"
	entries := []domain.TimeEntry{
		{WorkDate: "2024-03-04", StartMinute: ptr(480), EndMinute: ptr(990), BreakMinutes: 30},
		{WorkDate: "2024-03-05", Comment: &note},
		{WorkDate: "2024-03-06", StartMinute: ptr(450), EndMinute: ptr(995), BreakMinutes: 45},
	}
	got := Summarize(entries, 480)
	want := Summary{WorkedMinutes: 980, WorkedDays: 2, TargetMinutes: 480, OvertimeMinutes: 20}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil, 420)
	if got != (Summary{TargetMinutes: 420}) {
		t.Errorf("Summarize(nil) = %+v", got)
	}
}
