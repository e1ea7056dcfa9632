package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/stats"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func mustDate(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testBudget() ([]models.Category, []models.Entry) {
	categories := []models.Category{
		{ID: "c1", Name: "Food", Subcategories: []string{"Groceries"}},
		{ID: "c2", Name: "Transport", Order: 1},
	}
	entries := []models.Entry{
		{ID: "e1", CategoryID: "c1", Subcategory: "Groceries", Amount: decimal.RequireFromString("12.50"), Date: mustDate("2024-03-01"), Note: "milk"},
		{ID: "e2", CategoryID: "c2", Subcategory: "General", Amount: decimal.RequireFromString("30"), Date: mustDate("2024-03-15")},
		{ID: "e3", CategoryID: "gone", Subcategory: "General", Amount: decimal.RequireFromString("5"), Date: mustDate("2024-02-10")},
	}
	return categories, entries
}

func TestWriteSpreadsheet(t *testing.T) {
	categories, entries := testBudget()

	var buf bytes.Buffer
	if err := WriteSpreadsheet(&buf, categories, entries); err != nil {
		t.Fatalf("WriteSpreadsheet failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SpreadsheetSheet)
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows (header, 3 entries, blank, total), got %d: %v", len(rows), rows)
	}

	header := []string{"Date", "Category", "Subcategory", "Amount", "Note"}
	for i, h := range header {
		if rows[0][i] != h {
			t.Errorf("header[%d]: expected %q, got %q", i, h, rows[0][i])
		}
	}

	if rows[1][0] != "2024-03-15" || rows[1][1] != "Transport" {
		t.Errorf("expected newest entry first, got %v", rows[1])
	}
	if rows[2][4] != "milk" {
		t.Errorf("expected note on second entry, got %v", rows[2])
	}
	if rows[3][1] != "Unknown" {
		t.Errorf("expected orphan entry under Unknown, got %v", rows[3])
	}
	if len(rows[4]) != 0 {
		t.Errorf("expected blank row before total, got %v", rows[4])
	}
	if rows[5][2] != "TOTAL" {
		t.Errorf("expected TOTAL label, got %v", rows[5])
	}

	total, err := f.GetCellValue(SpreadsheetSheet, "D6", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("failed to read total: %v", err)
	}
	if total != "47.5" {
		t.Errorf("expected total 47.5, got %s", total)
	}

	width, err := f.GetColWidth(SpreadsheetSheet, "E")
	if err != nil {
		t.Fatalf("failed to read width: %v", err)
	}
	if width != 30 {
		t.Errorf("expected note column width 30, got %v", width)
	}
}

func TestSpreadsheetName(t *testing.T) {
	today := mustDate("2024-04-02")
	m := stats.Month{Year: 2024, Month: 3}

	if got := SpreadsheetName(&m, today); got != "Budget_March_2024.xlsx" {
		t.Errorf("unexpected month name %q", got)
	}
	if got := SpreadsheetName(nil, today); got != "Budget_All_2024-04-02.xlsx" {
		t.Errorf("unexpected all-time name %q", got)
	}
}

func TestWriteSymptomCSV(t *testing.T) {
	symptoms := []models.Symptom{
		{ID: "s1", Name: "Headache"},
		{ID: "s2", Name: "Nausea, mild"},
	}
	entries := []models.SymptomEntry{
		{SymptomID: "s1", Date: mustDate("2024-03-02"), Severity: models.SeverityStrong},
		{SymptomID: "s2", Date: mustDate("2024-03-01"), Severity: models.SeverityMild},
		{SymptomID: "gone", Date: mustDate("2024-03-01"), Severity: models.SeverityMid},
		{SymptomID: "s2", Date: mustDate("2024-03-02"), Severity: models.SeverityMid},
	}
	notes := []models.DailyNote{
		{Date: mustDate("2024-03-02"), Note: "slept badly"},
	}

	var buf bytes.Buffer
	if err := WriteSymptomCSV(&buf, symptoms, entries, notes); err != nil {
		t.Fatalf("WriteSymptomCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}

	expected := [][]string{
		{"Date", "Symptom", "Severity", "Daily Note"},
		{"2024-03-01", "Nausea, mild", "Mild", ""},
		{"2024-03-02", "Headache", "Strong", "slept badly"},
		{"2024-03-02", "Nausea, mild", "Mid", ""},
	}
	if len(records) != len(expected) {
		t.Fatalf("expected %d records, got %d: %v", len(expected), len(records), records)
	}
	for i := range expected {
		for j := range expected[i] {
			if records[i][j] != expected[i][j] {
				t.Errorf("record[%d][%d]: expected %q, got %q", i, j, expected[i][j], records[i][j])
			}
		}
	}
}

func TestWriteCharts(t *testing.T) {
	categories, entries := testBudget()

	tests := []struct {
		name    string
		render  func(*bytes.Buffer) error
		wantErr error
	}{
		{
			name: "breakdown",
			render: func(buf *bytes.Buffer) error {
				return WriteBreakdownChart(buf, stats.CategoryBreakdown(categories, entries))
			},
		},
		{
			name: "bars",
			render: func(buf *bytes.Buffer) error {
				return WriteBarChart(buf, stats.BarChart(categories, entries, ""))
			},
		},
		{
			name: "empty breakdown",
			render: func(buf *bytes.Buffer) error {
				return WriteBreakdownChart(buf, stats.BreakdownView{})
			},
			wantErr: ErrNoData,
		},
		{
			name: "empty bars",
			render: func(buf *bytes.Buffer) error {
				return WriteBarChart(buf, nil)
			},
			wantErr: ErrNoData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := tt.render(&buf)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), pngSignature) {
				t.Errorf("output is not a PNG")
			}
		})
	}
}
