package health

import (
	"regexp"
	"slices"
	"strings"

	"github.com/mmynk/pocketbook/internal/models"
)

// Column is a medication table column.
type Column struct {
	Key   string
	Label string
	// Always columns print regardless of the options.
	Always bool
}

// Columns lists every medication column in print order.
var Columns = []Column{
	{Key: "name", Label: "Medication", Always: true},
	{Key: "dose", Label: "Dose", Always: true},
	{Key: "purpose", Label: "For", Always: true},
	{Key: "started", Label: "Started"},
	{Key: "concerns", Label: "Concerns"},
	{Key: "notes", Label: "Notes"},
}

// PrintOptions selects what goes into a printout.
type PrintOptions struct {
	Subtitle       string
	IncludeSummary bool
	IncludeNotes   bool
	// Columns names the optional columns to print. Nil prints all of them.
	Columns      []string
	ExplainerIDs []string
}

// Printout is the data of a provider printout, ready to render.
type Printout struct {
	Provider   string
	Subtitle   string
	Date       models.Date
	Summary    string
	VisitNotes string
	Columns    []Column
	Rows       [][]string
	Diagnoses  []models.Diagnosis
	// Context holds long explainers, Facts short ones.
	Context []models.Explainer
	Facts   []models.Explainer
}

// BuildPrintout selects the medications, diagnoses and explainers for
// provider. Medications print unless they exclude the provider; diagnoses
// print when they share a concern tag with the provider, or always when the
// provider has no tags.
func BuildPrintout(record *models.HealthRecord, provider models.Provider, opts PrintOptions, today models.Date) (*Printout, error) {
	columns, err := selectColumns(opts.Columns)
	if err != nil {
		return nil, err
	}

	p := &Printout{
		Provider: provider.Name,
		Subtitle: opts.Subtitle,
		Date:     today,
		Columns:  columns,
	}
	if opts.IncludeSummary {
		p.Summary = provider.ExecutiveSummary
	}
	if opts.IncludeNotes {
		p.VisitNotes = provider.VisitNotes
	}

	for _, m := range record.Medications {
		if slices.Contains(m.ExcludeProviders, provider.ID) {
			continue
		}
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = cellValue(m, c.Key)
		}
		p.Rows = append(p.Rows, row)
	}

	for _, d := range record.Diagnoses {
		if len(provider.ConcernTags) == 0 || sharesTag(d.ConcernTags, provider.ConcernTags) {
			p.Diagnoses = append(p.Diagnoses, d)
		}
	}

	for _, e := range record.Explainers {
		if !slices.Contains(opts.ExplainerIDs, e.ID) {
			continue
		}
		if e.Long {
			p.Context = append(p.Context, e)
		} else {
			p.Facts = append(p.Facts, e)
		}
	}
	return p, nil
}

func selectColumns(keys []string) ([]Column, error) {
	for _, k := range keys {
		if !slices.ContainsFunc(Columns, func(c Column) bool { return c.Key == k }) {
			return nil, invalid("unknown column %q", k)
		}
	}
	var out []Column
	for _, c := range Columns {
		if c.Always || keys == nil || slices.Contains(keys, c.Key) {
			out = append(out, c)
		}
	}
	return out, nil
}

func cellValue(m models.Medication, key string) string {
	var v string
	switch key {
	case "name":
		v = m.Name
	case "dose":
		v = m.Dose
	case "purpose":
		v = m.Purpose
	case "started":
		v = m.StartDate
		if v != "" && m.DateApproximate {
			v = "~" + v
		}
	case "concerns":
		v = strings.Join(m.ConcernTags, ", ")
	case "notes":
		v = m.Notes
	}
	if v == "" {
		return "-"
	}
	return v
}

func sharesTag(a, b []string) bool {
	return slices.ContainsFunc(a, func(t string) bool { return slices.Contains(b, t) })
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// PrintoutName is the download file name, e.g. "Dr__Smith_2024-03-10.html".
func PrintoutName(provider string, today models.Date) string {
	return unsafeFileChars.ReplaceAllString(provider, "_") + "_" + today.String() + ".html"
}
