// Package export lays out monthly timesheets and renders them as xlsx.
package export

import (
	"time"

	"timesheet/internal/domain"
	"timesheet/internal/timerules"
)

// Day statuses.
const (
	StatusHoliday = "Holiday"
	StatusWeekend = "Weekend"
)

// Row is one calendar day.
type Row struct {
	Date       string
	Weekday    string
	Status     string
	Holiday    string
	Start      *int
	Break      int
	End        *int
	Duration   *int
	Difference *int
	Comment    string
	Warnings   []timerules.Warning
	HasEntry   bool
}

// Month is one sheet.
type Month struct {
	Month   string
	Target  int
	Rows    []Row
	Summary timerules.Summary
}

// Workbook is everything one export file contains.
type Workbook struct {
	UserID   string
	UserName string
	Months   []Month
}

// BuildMonth produces a row for every day of the month starting at first.
func BuildMonth(first time.Time, entries []domain.TimeEntry, target int, holidays domain.HolidayMap) Month {
	first = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	byDate := make(map[string]domain.TimeEntry, len(entries))
	var inMonth []domain.TimeEntry
	for _, e := range entries {
		d, err := time.Parse(domain.DateLayout, e.WorkDate)
		if err != nil || d.Year() != first.Year() || d.Month() != first.Month() {
			continue
		}
		byDate[e.WorkDate] = e
		inMonth = append(inMonth, e)
	}

	m := Month{Month: first.Format("2006-01"), Target: target}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		date := d.Format(domain.DateLayout)
		row := Row{Date: date, Weekday: d.Weekday().String()[:3], Status: status(d, date, holidays)}
		if row.Status == StatusHoliday {
			row.Holiday = holidays[date]
		}
		if e, ok := byDate[date]; ok {
			row.HasEntry = true
			row.Start = e.StartMinute
			row.End = e.EndMinute
			row.Break = e.BreakMinutes
			row.Comment = e.CommentText()
			ev := timerules.Evaluate(timerules.FromEntry(e), date, target, holidays)
			row.Duration = ev.Duration
			row.Difference = ev.Difference
			row.Warnings = ev.Warnings
		}
		m.Rows = append(m.Rows, row)
	}
	m.Summary = timerules.Summarize(inMonth, target)
	return m
}

func status(d time.Time, date string, holidays domain.HolidayMap) string {
	switch {
	case holidays.Has(date):
		return StatusHoliday
	case d.Weekday() == time.Saturday || d.Weekday() == time.Sunday:
		return StatusWeekend
	}
	return ""
}
