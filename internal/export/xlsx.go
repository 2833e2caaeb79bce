package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"timesheet/internal/timerules"
)

// Options controls rendering.
type Options struct {
	// Formulas writes duration, difference, warning and summary cells as
	// formulas instead of computed values.
	Formulas bool
}

var header = []string{"Date", "Weekday", "Status", "Start", "Break", "End", "Duration", "Difference", "Comment", "Warnings"}

// Column letters, matching header.
const (
	colDate       = "A"
	colWeekday    = "B"
	colStatus     = "C"
	colStart      = "D"
	colBreak      = "E"
	colEnd        = "F"
	colDuration   = "G"
	colDifference = "H"
	colComment    = "I"
	colWarnings   = "J"
)

// epoch1904 is serial day zero in the 1904 date system.
var epoch1904 = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)

type styles struct {
	header, date, clock, span int
}

// WriteXLSX renders one sheet per month. The workbook uses the 1904 date
// system so negative spans keep their sign.
func WriteXLSX(w io.Writer, wb Workbook, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	date1904 := true
	if err := f.SetWorkbookProps(&excelize.WorkbookPropsOptions{Date1904: &date1904}); err != nil {
		return fmt.Errorf("workbook props: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: "Timesheet " + wb.UserName, Creator: "timesheet"}); err != nil {
		return fmt.Errorf("doc props: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	if len(wb.Months) == 0 {
		return writeEmpty(f, w)
	}
	for i, m := range wb.Months {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", m.Month); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(m.Month); err != nil {
			return fmt.Errorf("new sheet %s: %w", m.Month, err)
		}
		if err := writeMonth(f, m.Month, m, st, opts); err != nil {
			return fmt.Errorf("sheet %s: %w", m.Month, err)
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeEmpty(f *excelize.File, w io.Writer) error {
	if err := f.SetCellValue("Sheet1", "A1", "No months selected"); err != nil {
		return err
	}
	return f.Write(w)
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	if st.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, err
	}
	dateFmt, clockFmt, spanFmt := "yyyy-mm-dd", "hh:mm", "[hh]:mm"
	if st.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt}); err != nil {
		return st, err
	}
	if st.clock, err = f.NewStyle(&excelize.Style{CustomNumFmt: &clockFmt}); err != nil {
		return st, err
	}
	if st.span, err = f.NewStyle(&excelize.Style{CustomNumFmt: &spanFmt}); err != nil {
		return st, err
	}
	return st, nil
}

// sheetWriter keeps the first error so cell writes read as a list.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (s *sheetWriter) value(cell string, v any) {
	if s.err == nil && v != nil {
		s.err = s.f.SetCellValue(s.sheet, cell, v)
	}
}

func (s *sheetWriter) formula(cell, formula string) {
	if s.err == nil {
		s.err = s.f.SetCellFormula(s.sheet, cell, formula)
	}
}

func (s *sheetWriter) style(from, to string, id int) {
	if s.err == nil {
		s.err = s.f.SetCellStyle(s.sheet, from, to, id)
	}
}

func writeMonth(f *excelize.File, sheet string, m Month, st styles, opts Options) error {
	s := &sheetWriter{f: f, sheet: sheet}
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		s.value(cell, h)
	}
	s.style(colDate+"1", colWarnings+"1", st.header)

	firstRow := 2
	lastRow := firstRow + len(m.Rows) - 1
	for i, row := range m.Rows {
		writeRow(s, firstRow+i, row, m.Target, opts)
	}
	if len(m.Rows) > 0 {
		s.style(cellRef(colDate, firstRow), cellRef(colDate, lastRow), st.date)
		s.style(cellRef(colStart, firstRow), cellRef(colStart, lastRow), st.clock)
		s.style(cellRef(colEnd, firstRow), cellRef(colEnd, lastRow), st.clock)
		s.style(cellRef(colDuration, firstRow), cellRef(colDifference, lastRow), st.span)
	}

	durations := fmt.Sprintf("%s:%s", cellRef(colDuration, firstRow), cellRef(colDuration, lastRow))
	sum := lastRow + 2
	worked, days, target, overtime := cellRef("B", sum), cellRef("B", sum+1), cellRef("B", sum+2), cellRef("B", sum+3)
	s.value(cellRef("A", sum), "Worked")
	s.value(cellRef("A", sum+1), "Workdays")
	s.value(cellRef("A", sum+2), "Daily target")
	s.value(cellRef("A", sum+3), "Overtime")
	s.style(cellRef("A", sum), cellRef("A", sum+3), st.header)
	s.value(target, dayFraction(m.Target))
	if opts.Formulas {
		s.formula(worked, timerules.WorkedFormula(durations))
		s.formula(days, timerules.WorkedDaysFormula(durations))
		s.formula(overtime, timerules.OvertimeFormula(worked, days, m.Target))
	} else {
		s.value(worked, dayFraction(m.Summary.WorkedMinutes))
		s.value(days, m.Summary.WorkedDays)
		s.value(overtime, dayFraction(m.Summary.OvertimeMinutes))
	}
	s.style(worked, worked, st.span)
	s.style(target, overtime, st.span)

	if s.err != nil {
		return s.err
	}
	if err := f.SetColWidth(sheet, colDate, colDate, 12); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, colComment, colComment, 30); err != nil {
		return err
	}
	return f.SetColWidth(sheet, colWarnings, colWarnings, 40)
}

func writeRow(s *sheetWriter, r int, row Row, target int, opts Options) {
	day, _ := time.Parse("2006-01-02", row.Date)
	s.value(cellRef(colDate, r), day.Sub(epoch1904).Hours()/24)
	s.value(cellRef(colWeekday, r), row.Weekday)
	s.value(cellRef(colStatus, r), row.Status)
	comment := row.Comment
	if comment == "" {
		comment = row.Holiday
	}
	s.value(cellRef(colComment, r), comment)
	if !row.HasEntry {
		return
	}
	if row.Start != nil {
		s.value(cellRef(colStart, r), dayFraction(*row.Start))
	}
	if row.End != nil {
		s.value(cellRef(colEnd, r), dayFraction(*row.End))
	}
	s.value(cellRef(colBreak, r), row.Break)

	if opts.Formulas {
		c := timerules.Cells{
			Date:     cellRef(colDate, r),
			Start:    cellRef(colStart, r),
			Break:    cellRef(colBreak, r),
			End:      cellRef(colEnd, r),
			Duration: cellRef(colDuration, r),
			Holiday:  fmt.Sprintf(`%s="%s"`, cellRef(colStatus, r), StatusHoliday),
		}
		s.formula(c.Duration, timerules.DurationFormula(c))
		s.formula(cellRef(colDifference, r), timerules.DifferenceFormula(c, target))
		s.formula(cellRef(colWarnings, r), timerules.WarningsFormula(c))
		return
	}
	if row.Duration != nil {
		s.value(cellRef(colDuration, r), dayFraction(*row.Duration))
	}
	if row.Difference != nil {
		s.value(cellRef(colDifference, r), dayFraction(*row.Difference))
	}
	s.value(cellRef(colWarnings, r), timerules.JoinWarnings(row.Warnings))
}

func cellRef(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func dayFraction(minutes int) float64 {
	return float64(minutes) / timerules.MinutesPerDay
}
