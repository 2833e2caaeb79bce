package timerules

import (
	"fmt"
	"strings"
)

// Cells addresses the cells of one spreadsheet row. Times and durations are
// day fractions, Break holds integer minutes and Holiday is a boolean
// expression such as C2="Holiday".
type Cells struct {
	Date     string
	Start    string
	Break    string
	End      string
	Duration string
	Holiday  string
}

func durationMinutes(c Cells) string {
	return fmt.Sprintf("ROUND(%s*%d,0)", c.Duration, MinutesPerDay)
}

// DurationFormula mirrors Duration.
func DurationFormula(c Cells) string {
	return fmt.Sprintf(`IF(OR(%[1]s="",%[2]s=""),"",MAX(0,%[2]s-%[1]s-%[3]s/%[4]d))`,
		c.Start, c.End, c.Break, MinutesPerDay)
}

// DifferenceFormula mirrors Difference.
func DifferenceFormula(c Cells, target int) string {
	return fmt.Sprintf(`IF(%[1]s="","",%[1]s-%[2]d/%[3]d)`, c.Duration, target, MinutesPerDay)
}

// WarningsFormula mirrors CheckRules and yields the same joined labels.
func WarningsFormula(c Cells) string {
	dur := durationMinutes(c)
	parts := []string{
		fmt.Sprintf(`IF(%s>%d,", %s","")`, dur, MaxWorkMinutes, WarnAboveMaximum),
		breakFormula(dur, c.Break),
		fmt.Sprintf(`IF(WEEKDAY(%s)=1,", %s","")`, c.Date, WarnSunday),
	}
	if c.Holiday != "" {
		parts = append(parts, fmt.Sprintf(`IF(%s,", %s","")`, c.Holiday, WarnHoliday))
	}
	return fmt.Sprintf(`IF(%s="","",MID(%s,3,1000))`, c.Duration, strings.Join(parts, "&"))
}

// breakFormula nests BreakRules so the first violated rule wins.
func breakFormula(dur, brk string) string {
	expr := `""`
	for i := len(BreakRules) - 1; i >= 0; i-- {
		r := BreakRules[i]
		expr = fmt.Sprintf(`IF(AND(%s>%d,%s<%d),", %s",%s)`,
			dur, r.AboveMinutes, brk, r.MinBreak, WarnBreakTooShort, expr)
	}
	return expr
}

// WorkedFormula sums a duration column. Blank rows are text and ignored.
func WorkedFormula(durationRange string) string {
	return "SUM(" + durationRange + ")"
}

// WorkedDaysFormula counts rows with a numeric duration.
func WorkedDaysFormula(durationRange string) string {
	return "COUNT(" + durationRange + ")"
}

// OvertimeFormula mirrors Overtime on day fractions.
func OvertimeFormula(workedCell, daysCell string, target int) string {
	return fmt.Sprintf("%s-%s*%d/%d", workedCell, daysCell, target, MinutesPerDay)
}
