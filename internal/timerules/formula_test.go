package timerules

import "testing"

var row2 = Cells{
	Date:     "A2",
	Start:    "D2",
	Break:    "E2",
	End:      "F2",
	Duration: "G2",
	Holiday:  `C2="Holiday"`,
}

func TestDurationFormula(t *testing.T) {
	want := `IF(OR(D2="",F2=""),"",MAX(0,F2-D2-E2/1440))`
	if got := DurationFormula(row2); got != want {
		t.Errorf("DurationFormula() =\n%s\nwant\n%s", got, want)
	}
}

func TestDifferenceFormula(t *testing.T) {
	want := `IF(G2="","",G2-480/1440)`
	if got := DifferenceFormula(row2, 480); got != want {
		t.Errorf("DifferenceFormula() = %s, want %s", got, want)
	}
}

func TestWarningsFormula(t *testing.T) {
	want := `IF(G2="","",MID(` +
		`IF(ROUND(G2*1440,0)>600,", Above maximum time","")&` +
		`IF(AND(ROUND(G2*1440,0)>540,E2<45),", Break too short",IF(AND(ROUND(G2*1440,0)>360,E2<30),", Break too short",""))&` +
		`IF(WEEKDAY(A2)=1,", Sunday work not allowed","")&` +
		`IF(C2="Holiday",", Holiday work not allowed",""),3,1000))`
	if got := WarningsFormula(row2); got != want {
		t.Errorf("WarningsFormula() =\n%s\nwant\n%s", got, want)
	}
}

func TestWarningsFormulaWithoutHolidayColumn(t *testing.T) {
	c := row2
	c.Holiday = ""
	want := `IF(G2="","",MID(` +
		`IF(ROUND(G2*1440,0)>600,", Above maximum time","")&` +
		`IF(AND(ROUND(G2*1440,0)>540,E2<45),", Break too short",IF(AND(ROUND(G2*1440,0)>360,E2<30),", Break too short",""))&` +
		`IF(WEEKDAY(A2)=1,", Sunday work not allowed",""),3,1000))`
	if got := WarningsFormula(c); got != want {
		t.Errorf("WarningsFormula() =\n%s\nwant\n%s", got, want)
	}
}

func TestSummaryFormulas(t *testing.T) {
	if got := WorkedFormula("G2:G32"); got != "SUM(G2:G32)" {
		t.Errorf("WorkedFormula() = %s", got)
	}
	if got := WorkedDaysFormula("G2:G32"); got != "COUNT(G2:G32)" {
		t.Errorf("WorkedDaysFormula() = %s", got)
	}
	if got := OvertimeFormula("B34", "B35", 420); got != "B34-B35*420/1440" {
		t.Errorf("OvertimeFormula() = %s", got)
	}
}
