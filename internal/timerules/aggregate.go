package timerules

import "timesheet/internal/domain"

// Summary is the roll-up of a set of entries against one daily target.
type Summary struct {
	WorkedMinutes   int
	WorkedDays      int
	TargetMinutes   int
	OvertimeMinutes int
}

// Overtime is worked - days*target.
func Overtime(workedMinutes, workedDays, target int) int {
	return workedMinutes - workedDays*target
}

// Summarize counts only entries with both times present; comment-only days
// contribute nothing.
func Summarize(entries []domain.TimeEntry, target int) Summary {
	s := Summary{TargetMinutes: target}
	for _, e := range entries {
		d, ok := Duration(e.StartMinute, e.EndMinute, e.BreakMinutes)
		if !ok {
			continue
		}
		s.WorkedMinutes += d
		s.WorkedDays++
	}
	s.OvertimeMinutes = Overtime(s.WorkedMinutes, s.WorkedDays, target)
	return s
}
