package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"

	"github.com/mmynk/pocketbook/internal/models"
)

var symptomHeader = []string{"Date", "Symptom", "Severity", "Daily Note"}

// WriteSymptomCSV writes the symptom log sorted by date. Entries of deleted
// symptoms are skipped. A day's note is written on the first row of that day
// only.
func WriteSymptomCSV(w io.Writer, symptoms []models.Symptom, entries []models.SymptomEntry, notes []models.DailyNote) error {
	names := make(map[string]string, len(symptoms))
	for _, s := range symptoms {
		names[s.ID] = s.Name
	}
	noteByDate := make(map[models.Date]string, len(notes))
	for _, n := range notes {
		noteByDate[n.Date] = n.Note
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b models.SymptomEntry) int {
		return a.Date.Compare(b.Date)
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(symptomHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	written := make(map[models.Date]bool)
	for _, e := range sorted {
		name, ok := names[e.SymptomID]
		if !ok {
			continue
		}
		note := ""
		if !written[e.Date] {
			note = noteByDate[e.Date]
			written[e.Date] = true
		}
		if err := cw.Write([]string{e.Date.String(), name, e.Severity.Label(), note}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// SymptomCSVName is the download file name for the symptom log.
func SymptomCSVName(today models.Date) string {
	return fmt.Sprintf("symptom-tracker-export-%s.csv", today)
}
