// Package timerules turns a day's raw times into worked duration, the
// difference against a daily target and labour-rule warnings. The same
// limits drive the spreadsheet formulas in formula.go.
package timerules

import (
	"strings"
	"time"

	"timesheet/internal/domain"
)

const (
	MaxWorkMinutes = 600
	MinutesPerDay  = 1440
)

// Warning is a display label for one rule violation.
type Warning string

const (
	WarnAboveMaximum  Warning = "Above maximum time"
	WarnBreakTooShort Warning = "Break too short"
	WarnSunday        Warning = "Sunday work not allowed"
	WarnHoliday       Warning = "Holiday work not allowed"
	WarnIncomplete    Warning = "Time incomplete"
)

// BreakRule requires at least MinBreak minutes once the duration is
// strictly above AboveMinutes.
type BreakRule struct {
	AboveMinutes int
	MinBreak     int
}

// BreakRules are checked in order; the first violated rule wins.
var BreakRules = []BreakRule{
	{AboveMinutes: 540, MinBreak: 45},
	{AboveMinutes: 360, MinBreak: 30},
}

// Input is the entry-shaped input of the engine.
type Input struct {
	StartMinute  *int
	EndMinute    *int
	BreakMinutes int
}

// FromEntry extracts the engine input of a stored entry.
func FromEntry(e domain.TimeEntry) Input {
	return Input{StartMinute: e.StartMinute, EndMinute: e.EndMinute, BreakMinutes: e.BreakMinutes}
}

func (in Input) complete() bool {
	return in.StartMinute != nil && in.EndMinute != nil
}

// Duration returns max(0, end-start-break). ok is false when a time is absent.
func Duration(start, end *int, breakMinutes int) (minutes int, ok bool) {
	if start == nil || end == nil {
		return 0, false
	}
	return max(0, *end-*start-breakMinutes), true
}

// Difference returns duration-target, undefined when duration is.
func Difference(duration int, ok bool, target int) (int, bool) {
	if !ok {
		return 0, false
	}
	return duration - target, true
}

// CheckRules returns every applicable warning. date may be empty, in which
// case the calendar checks are skipped.
func CheckRules(in Input, date string, holidays domain.HolidayMap) []Warning {
	dur, ok := Duration(in.StartMinute, in.EndMinute, in.BreakMinutes)
	if !ok {
		return nil
	}
	var out []Warning
	if dur > MaxWorkMinutes {
		out = append(out, WarnAboveMaximum)
	}
	for _, r := range BreakRules {
		if dur > r.AboveMinutes && in.BreakMinutes < r.MinBreak {
			out = append(out, WarnBreakTooShort)
			break
		}
	}
	if date != "" {
		if d, err := time.Parse(domain.DateLayout, date); err == nil && d.Weekday() == time.Sunday {
			out = append(out, WarnSunday)
		}
		if holidays.Has(date) {
			out = append(out, WarnHoliday)
		}
	}
	return out
}

// JoinWarnings renders warnings for display.
func JoinWarnings(ws []Warning) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = string(w)
	}
	return strings.Join(parts, ", ")
}

// Evaluation bundles what the UI shows next to one entry.
type Evaluation struct {
	Duration   *int
	Difference *int
	Warnings   []Warning
}

// Evaluate computes duration, difference and warnings in one pass. A
// partial time pair yields only WarnIncomplete.
func Evaluate(in Input, date string, target int, holidays domain.HolidayMap) Evaluation {
	if (in.StartMinute == nil) != (in.EndMinute == nil) {
		return Evaluation{Warnings: []Warning{WarnIncomplete}}
	}
	var ev Evaluation
	dur, ok := Duration(in.StartMinute, in.EndMinute, in.BreakMinutes)
	if ok {
		ev.Duration = &dur
	}
	if diff, ok := Difference(dur, ok, target); ok {
		ev.Difference = &diff
	}
	ev.Warnings = CheckRules(in, date, holidays)
	return ev
}
