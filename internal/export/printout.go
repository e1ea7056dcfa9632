package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/mmynk/pocketbook/internal/health"
	"github.com/mmynk/pocketbook/internal/models"
)

// printoutTemplate is a standalone, printable page; styles are inline so the
// file opens the same anywhere.
const printoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Provider}} - {{longDate .Date}}</title>
<style>
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body { font-family: 'Segoe UI', Arial, sans-serif; font-size: 11pt; color: #1a1a1a; line-height: 1.45; padding: 0.5in; max-width: 8.5in; }
  h1 { font-size: 16pt; margin-bottom: 2pt; }
  h2 { font-size: 12pt; color: #1B3A5C; border-bottom: 1.5px solid #1B3A5C; padding-bottom: 3pt; margin: 14pt 0 8pt 0; }
  .subtitle { font-size: 11pt; color: #555; margin-bottom: 4pt; }
  .date { font-size: 9pt; color: #888; margin-bottom: 14pt; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 10pt; font-size: 10pt; }
  th { background: #1B3A5C; color: white; text-align: left; padding: 5pt 6pt; font-weight: 600; }
  td { padding: 4pt 6pt; border-bottom: 1px solid #ddd; vertical-align: top; }
  tr:nth-child(even) td { background: #f5f8fc; }
  .key-box { background: #FFF8E7; border-left: 4px solid #B8860B; padding: 8pt 12pt; margin: 8pt 0; font-size: 10pt; }
  .key-label { font-weight: 700; color: #B8860B; }
  .explainer { margin: 6pt 0; font-size: 10pt; }
  .explainer-title { font-weight: 600; }
  .short-fact { background: #f0f4f8; padding: 4pt 8pt; margin: 3pt 0; border-radius: 3pt; font-size: 9.5pt; }
  .short-fact strong { color: #1B3A5C; }
  ul { margin: 4pt 0 8pt 18pt; font-size: 10pt; }
  li { margin-bottom: 3pt; }
  .visit-notes { background: #fffde7; border: 1px solid #e6c94a; padding: 8pt 12pt; margin: 8pt 0; border-radius: 4pt; }
  .visit-notes-label { font-weight: 700; color: #8a6a10; font-size: 10pt; }
  .footer { margin-top: 16pt; padding-top: 8pt; border-top: 1px solid #ccc; font-size: 8pt; color: #999; text-align: center; }
  @media print { body { padding: 0; } }
</style>
</head>
<body>
<h1>Patient Health Overview - {{.Provider}}</h1>
{{if .Subtitle}}<div class="subtitle">{{.Subtitle}}</div>{{end}}
<div class="date">Updated: {{longDate .Date}}</div>
{{if .Summary}}<h2>Summary</h2>
<div class="key-box"><span class="key-label">KEY: </span>{{.Summary}}</div>
{{end}}
<h2>Current Medications</h2>
<table>
<thead><tr>{{range .Columns}}<th>{{.Label}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{if .Diagnoses}}<h2>Relevant Diagnoses</h2>
<ul>
{{range .Diagnoses}}<li><strong>{{.Name}}</strong>{{if .Status}} ({{.Status}}){{end}}{{if .DiagnosedDate}} - {{.DiagnosedDate}}{{end}}{{if .Notes}}<br><em>{{.Notes}}</em>{{end}}</li>
{{end}}</ul>
{{end}}
{{if .Context}}<h2>Clinical Context</h2>
{{range .Context}}<div class="explainer"><div class="explainer-title">{{.Title}}</div><p>{{.Content}}</p></div>
{{end}}{{end}}
{{if .Facts}}<h2>Key Facts</h2>
<div class="short-facts">
{{range .Facts}}<div class="short-fact"><strong>{{.Title}}:</strong> {{.Content}}</div>
{{end}}</div>
{{end}}
{{if .VisitNotes}}<div class="visit-notes"><div class="visit-notes-label">For This Visit:</div><p>{{.VisitNotes}}</p></div>
{{end}}
<div class="footer">Patient Health Overview - Generated {{longDate .Date}} - Confidential</div>
</body>
</html>
`

var printout = template.Must(template.New("printout").Funcs(template.FuncMap{
	"longDate": func(d models.Date) string { return d.Time().Format("January 2, 2006") },
}).Parse(printoutTemplate))

// WriteProviderPrintout renders p as a standalone HTML document.
func WriteProviderPrintout(w io.Writer, p *health.Printout) error {
	if err := printout.Execute(w, p); err != nil {
		return fmt.Errorf("failed to render printout: %w", err)
	}
	return nil
}
