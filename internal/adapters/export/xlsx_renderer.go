// Package export renders completed activity reports into downloadable documents.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the worksheet holding the report.
const SheetName = "Activity"

// entries start below the header block
const firstEntryRow = 8

type xlsxRenderer struct{}

// NewXLSXRenderer returns a renderer producing one-sheet excel workbooks.
func NewXLSXRenderer() portssvc.ReportRenderer {
	return &xlsxRenderer{}
}

var _ portssvc.ReportRenderer = (*xlsxRenderer)(nil)

func (r *xlsxRenderer) FileExtension() string { return "xlsx" }

func (r *xlsxRenderer) Render(ctx context.Context, doc portssvc.ExportDocument, w io.Writer) error {
	if doc.Report == nil {
		return fmt.Errorf("render report: missing report")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	report := doc.Report
	header := [][2]string{
		{"Period", report.PeriodStart().Format("January 2006")},
		{"Company", companyName(doc.Company)},
		{"Client", clientName(doc.Client)},
		{"Mission", missionName(doc.Mission)},
		{"Status", string(report.Status)},
	}
	for i, kv := range header {
		row := i + 1
		f.SetCellValue(SheetName, fmt.Sprintf("A%d", row), kv[0])
		f.SetCellValue(SheetName, fmt.Sprintf("B%d", row), kv[1])
	}
	if err := f.SetCellStyle(SheetName, "A1", fmt.Sprintf("A%d", len(header)), bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	columns := []string{"Date", "Day", "Days worked", "Holiday", "Note"}
	headRow := firstEntryRow - 1
	for i, title := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headRow)
		f.SetCellValue(SheetName, cell, title)
	}
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", headRow), fmt.Sprintf("E%d", headRow), bold); err != nil {
		return fmt.Errorf("style columns: %w", err)
	}

	row := firstEntryRow
	for _, e := range report.Entries {
		f.SetCellValue(SheetName, fmt.Sprintf("A%d", row), e.Date.Format("2006-01-02"))
		f.SetCellValue(SheetName, fmt.Sprintf("B%d", row), e.Date.Weekday().String())
		f.SetCellValue(SheetName, fmt.Sprintf("C%d", row), e.Value.InexactFloat64())
		if e.HolidayName != nil {
			f.SetCellValue(SheetName, fmt.Sprintf("D%d", row), *e.HolidayName)
		}
		if e.Note != nil {
			f.SetCellValue(SheetName, fmt.Sprintf("E%d", row), *e.Note)
		}
		row++
	}

	row++
	f.SetCellValue(SheetName, fmt.Sprintf("B%d", row), "Total days")
	f.SetCellValue(SheetName, fmt.Sprintf("C%d", row), report.TotalDays.InexactFloat64())
	totalRow := row
	if report.DailyRate != nil {
		currency := ""
		if doc.Client != nil {
			currency = doc.Client.Currency
		}
		row++
		f.SetCellValue(SheetName, fmt.Sprintf("B%d", row), "Daily rate "+currency)
		f.SetCellValue(SheetName, fmt.Sprintf("C%d", row), report.DailyRate.InexactFloat64())
		row++
		f.SetCellValue(SheetName, fmt.Sprintf("B%d", row), "Amount "+currency)
		f.SetCellValue(SheetName, fmt.Sprintf("C%d", row), report.TotalDays.Mul(*report.DailyRate).InexactFloat64())
	}
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("B%d", totalRow), fmt.Sprintf("B%d", row), bold); err != nil {
		return fmt.Errorf("style totals: %w", err)
	}
	if report.Note != nil {
		row += 2
		f.SetCellValue(SheetName, fmt.Sprintf("A%d", row), "Note")
		f.SetCellValue(SheetName, fmt.Sprintf("B%d", row), *report.Note)
	}

	f.SetColWidth(SheetName, "A", "A", 12)
	f.SetColWidth(SheetName, "B", "B", 22)
	f.SetColWidth(SheetName, "C", "C", 12)
	f.SetColWidth(SheetName, "D", "D", 24)
	f.SetColWidth(SheetName, "E", "E", 40)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func companyName(c *domain.Company) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func clientName(c *domain.Client) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func missionName(m *domain.Mission) string {
	if m == nil {
		return ""
	}
	return m.Name
}
