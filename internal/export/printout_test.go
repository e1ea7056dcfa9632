package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mmynk/pocketbook/internal/health"
	"github.com/mmynk/pocketbook/internal/models"
)

func TestWriteProviderPrintout(t *testing.T) {
	p := &health.Printout{
		Provider:   "Dr. Smith",
		Subtitle:   "Annual check-up",
		Date:       mustDate("2024-03-10"),
		Summary:    "Sleep got worse <since> January",
		VisitNotes: "Ask about dosage",
		Columns:    health.Columns[:3],
		Rows:       [][]string{{"Ibuprofen", "200mg", "-"}},
		Diagnoses:  []models.Diagnosis{{Name: "Migraine", Status: "active", DiagnosedDate: "2019"}},
		Facts:      []models.Explainer{{Title: "Allergy", Content: "Penicillin"}},
	}

	var buf bytes.Buffer
	if err := WriteProviderPrintout(&buf, p); err != nil {
		t.Fatalf("WriteProviderPrintout failed: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"Patient Health Overview - Dr. Smith",
		"Updated: March 10, 2024",
		`<div class="subtitle">Annual check-up</div>`,
		"<th>Medication</th><th>Dose</th><th>For</th>",
		"<td>Ibuprofen</td><td>200mg</td><td>-</td>",
		"<strong>Migraine</strong> (active) - 2019",
		"<strong>Allergy:</strong> Penicillin",
		"For This Visit:",
		"Sleep got worse &lt;since&gt; January",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("printout missing %q", want)
		}
	}
	if strings.Contains(html, "Clinical Context") {
		t.Error("empty sections should be left out")
	}
}
