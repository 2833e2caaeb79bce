package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"timesheet/internal/domain"
)

func render(t *testing.T, opts Options) *excelize.File {
	t.Helper()
	feb := BuildMonth(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), februaryEntries(), 480, domain.HolidayMap{"2024-02-05": "Test Day"})
	mar := BuildMonth(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), februaryEntries(), 480, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Workbook{UserID: "bob", UserName: "Bob", Months: []Month{feb, mar}}, opts))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteXLSXValues(t *testing.T) {
	f := render(t, Options{})

	require.Equal(t, []string{"2024-02", "2024-03"}, f.GetSheetList())

	props, err := f.GetWorkbookProps()
	require.NoError(t, err)
	require.NotNil(t, props.Date1904)
	require.True(t, *props.Date1904)

	head, err := f.GetCellValue("2024-02", "J1")
	require.NoError(t, err)
	require.Equal(t, "Warnings", head)

	wd, err := f.GetCellValue("2024-02", "B2")
	require.NoError(t, err)
	require.Equal(t, "Thu", wd)

	warn, err := f.GetCellValue("2024-02", "J5")
	require.NoError(t, err)
	require.Equal(t, "Sunday work not allowed", warn)

	status, err := f.GetCellValue("2024-02", "C6")
	require.NoError(t, err)
	require.Equal(t, StatusHoliday, status)

	comment, err := f.GetCellValue("2024-02", "I6")
	require.NoError(t, err)
	require.Equal(t, "Test Day", comment)

	label, err := f.GetCellValue("2024-02", "A32")
	require.NoError(t, err)
	require.Equal(t, "Worked", label)

	days, err := f.GetCellValue("2024-02", "B33")
	require.NoError(t, err)
	require.Equal(t, "3", days)

	formula, err := f.GetCellFormula("2024-02", "G2")
	require.NoError(t, err)
	require.Empty(t, formula)
}

func TestWriteXLSXFormulas(t *testing.T) {
	f := render(t, Options{Formulas: true})

	g2, err := f.GetCellFormula("2024-02", "G2")
	require.NoError(t, err)
	require.Equal(t, `IF(OR(D2="",F2=""),"",MAX(0,F2-D2-E2/1440))`, g2)

	h2, err := f.GetCellFormula("2024-02", "H2")
	require.NoError(t, err)
	require.Equal(t, `IF(G2="","",G2-480/1440)`, h2)

	j2, err := f.GetCellFormula("2024-02", "J2")
	require.NoError(t, err)
	require.Contains(t, j2, `IF(C2="Holiday",", Holiday work not allowed","")`)

	worked, err := f.GetCellFormula("2024-02", "B32")
	require.NoError(t, err)
	require.Equal(t, "SUM(G2:G30)", worked)

	days, err := f.GetCellFormula("2024-02", "B33")
	require.NoError(t, err)
	require.Equal(t, "COUNT(G2:G30)", days)

	overtime, err := f.GetCellFormula("2024-02", "B35")
	require.NoError(t, err)
	require.Equal(t, "B32-B33*480/1440", overtime)

	marWorked, err := f.GetCellFormula("2024-03", "B34")
	require.NoError(t, err)
	require.Equal(t, "SUM(G2:G32)", marWorked)
}

func TestWriteXLSXNoMonths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Workbook{UserID: "bob"}, Options{}))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{"Sheet1"}, f.GetSheetList())
}
