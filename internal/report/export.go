package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/frahmantamala/restaurant-ledger/internal/core/money"
	"github.com/xuri/excelize/v2"
)

const (
	reportTitle   = "Restaurant Income Report"
	CSVMediaType  = "text/csv;charset=utf-8"
	XLSXMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// CSV renders the fixed report layout. The output has no timestamps and no
// trailing newline, so equal summaries give equal bytes.
func (s *Summary) CSV() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", reportTitle)
	fmt.Fprintf(&b, "Date Range: %s to %s\n", s.From, s.To)
	b.WriteString("\nSummary:\n")
	for _, l := range s.summaryLines() {
		fmt.Fprintf(&b, "%s,%s\n", l.Label, money.Format(l.Value))
	}
	b.WriteString("\nIncome Breakdown:\n")
	for _, l := range s.breakdownLines() {
		fmt.Fprintf(&b, "%s,%s\n", l.Label, money.Format(l.Value))
	}
	return []byte(strings.TrimSpace(b.String()))
}

// WriteXLSX writes the same two sections as a styled single sheet workbook.
func (s *Summary) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return fmt.Errorf("title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return fmt.Errorf("data style: %w", err)
	}

	_ = f.SetColWidth(sheet, "A", "A", 26)
	_ = f.SetColWidth(sheet, "B", "B", 16)

	_ = f.SetCellValue(sheet, "A1", reportTitle)
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	_ = f.SetCellValue(sheet, "A2", fmt.Sprintf("Date Range: %s to %s", s.From, s.To))

	row := 4
	writeSection := func(title string, lines []line) {
		header := fmt.Sprintf("A%d", row)
		_ = f.SetCellValue(sheet, header, title)
		_ = f.MergeCell(sheet, header, fmt.Sprintf("B%d", row))
		_ = f.SetCellStyle(sheet, header, fmt.Sprintf("B%d", row), headerStyle)
		row++
		for _, l := range lines {
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), l.Label)
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), l.Value)
			_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), dataStyle)
			row++
		}
		row++
	}
	writeSection("Summary", s.summaryLines())
	writeSection("Income Breakdown", s.breakdownLines())

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
