// Package export renders user data into downloadable files: an xlsx
// spreadsheet of entries, a CSV of the symptom log and PNG charts.
package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/stats"
)

// SpreadsheetSheet is the name of the single worksheet.
const SpreadsheetSheet = "Budget"

var spreadsheetColumns = []struct {
	header string
	col    string
	width  float64
}{
	{"Date", "A", 12},
	{"Category", "B", 15},
	{"Subcategory", "C", 15},
	{"Amount", "D", 12},
	{"Note", "E", 30},
}

// WriteSpreadsheet writes entries as an xlsx workbook, newest first, followed
// by an empty row and a TOTAL row. Entries of unknown categories are listed
// under "Unknown".
func WriteSpreadsheet(w io.Writer, categories []models.Category, entries []models.Entry) error {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SpreadsheetSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(spreadsheetColumns))
	for i, c := range spreadsheetColumns {
		header[i] = c.header
		if err := f.SetColWidth(SpreadsheetSheet, c.col, c.col, c.width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	if err := f.SetSheetRow(SpreadsheetSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(SpreadsheetSheet, "A1", "E1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	row := 2
	total := decimal.Zero
	for _, e := range stats.NewestFirst(entries) {
		name, ok := names[e.CategoryID]
		if !ok {
			name = "Unknown"
		}
		cells := []any{e.Date.String(), name, e.Subcategory, e.Amount.InexactFloat64(), e.Note}
		if err := f.SetSheetRow(SpreadsheetSheet, cell("A", row), &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		total = total.Add(e.Amount)
		row++
	}

	amountFormat := "0.00"
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFormat})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if row > 2 {
		if err := f.SetCellStyle(SpreadsheetSheet, "D2", cell("D", row-1), money); err != nil {
			return fmt.Errorf("failed to style amounts: %w", err)
		}
	}

	// One empty row before the total.
	row++
	totalRow := []any{"", "", "TOTAL", total.InexactFloat64(), ""}
	if err := f.SetSheetRow(SpreadsheetSheet, cell("A", row), &totalRow); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}
	if err := f.SetCellStyle(SpreadsheetSheet, cell("C", row), cell("D", row), bold); err != nil {
		return fmt.Errorf("failed to style total: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SpreadsheetName is the download file name for a month, or for all entries
// when m is nil.
func SpreadsheetName(m *stats.Month, today models.Date) string {
	if m == nil {
		return fmt.Sprintf("Budget_All_%s.xlsx", today)
	}
	return fmt.Sprintf("Budget_%s_%d.xlsx", m.Month, m.Year)
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
