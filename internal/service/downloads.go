package service

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/pocketbook/internal/backup"
	"github.com/mmynk/pocketbook/internal/budget"
	"github.com/mmynk/pocketbook/internal/export"
	"github.com/mmynk/pocketbook/internal/health"
	"github.com/mmynk/pocketbook/internal/middleware"
	"github.com/mmynk/pocketbook/internal/stats"
	"github.com/mmynk/pocketbook/internal/symptom"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeJSON = "application/json"
	contentTypePNG  = "image/png"
	contentTypeHTML = "text/html; charset=utf-8"
)

// Downloads serves the file exports and chart images over plain HTTP.
// Every handler expects the user ID in the request context.
type Downloads struct {
	budget *budget.Service
	diary  *symptom.Service
	health *health.Service
}

// NewDownloads creates the download handlers.
func NewDownloads(budgetSvc *budget.Service, diarySvc *symptom.Service, healthSvc *health.Service) *Downloads {
	return &Downloads{budget: budgetSvc, diary: diarySvc, health: healthSvc}
}

// Register mounts the handlers on mux, each wrapped by protect.
func (d *Downloads) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.Handle("GET /export/budget.xlsx", protect(http.HandlerFunc(d.Spreadsheet)))
	mux.Handle("GET /export/symptoms.csv", protect(http.HandlerFunc(d.SymptomCSV)))
	mux.Handle("GET /export/backup.json", protect(http.HandlerFunc(d.Backup)))
	mux.Handle("GET /export/provider.html", protect(http.HandlerFunc(d.ProviderPrintout)))
	mux.Handle("GET /charts/breakdown.png", protect(http.HandlerFunc(d.BreakdownChart)))
	mux.Handle("GET /charts/bars.png", protect(http.HandlerFunc(d.BarChart)))
}

// Spreadsheet downloads entries as xlsx: one month with ?year=&month=,
// otherwise everything.
func (d *Downloads) Spreadsheet(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	slog.Info("Spreadsheet export requested", "user_id", userID, "query", r.URL.RawQuery)

	year, month, err := monthQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	snap, err := d.budget.Snapshot(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	entries := snap.Entries
	var period *stats.Month
	if month > 0 {
		period = &stats.Month{Year: year, Month: time.Month(month)}
		entries = stats.EntriesForMonth(entries, year, period.Month)
	}

	var buf bytes.Buffer
	if err := export.WriteSpreadsheet(&buf, snap.Categories, entries); err != nil {
		writeError(w, err)
		return
	}
	serveFile(w, contentTypeXLSX, export.SpreadsheetName(period, d.budget.Today()), buf.Bytes())
}

// SymptomCSV downloads the symptom log.
func (d *Downloads) SymptomCSV(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	slog.Info("Symptom CSV export requested", "user_id", userID)

	diary, err := d.diary.Snapshot(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteSymptomCSV(&buf, diary.Symptoms, diary.Entries, diary.Notes); err != nil {
		writeError(w, err)
		return
	}
	serveFile(w, contentTypeCSV, export.SymptomCSVName(d.budget.Today()), buf.Bytes())
}

// Backup downloads the JSON backup document.
func (d *Downloads) Backup(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	slog.Info("Backup export requested", "user_id", userID)

	env, err := d.budget.Export(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := backup.Encode(&buf, env); err != nil {
		writeError(w, err)
		return
	}
	serveFile(w, contentTypeJSON, backupFileName(d.budget.Today()), buf.Bytes())
}

// ProviderPrintout downloads the HTML printout for ?provider=. Optional
// parameters: subtitle, summary=1, notes=1, columns and explainers (comma
// separated lists).
func (d *Downloads) ProviderPrintout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	q := r.URL.Query()
	slog.Info("Provider printout requested", "user_id", userID, "provider_id", q.Get("provider"))

	providerID := q.Get("provider")
	if providerID == "" {
		writeError(w, badRequest("provider is required"))
		return
	}
	opts := health.PrintOptions{
		Subtitle:       q.Get("subtitle"),
		IncludeSummary: q.Get("summary") == "1",
		IncludeNotes:   q.Get("notes") == "1",
		ExplainerIDs:   splitList(q.Get("explainers")),
	}
	if q.Has("columns") {
		opts.Columns = splitList(q.Get("columns"))
		if opts.Columns == nil {
			opts.Columns = []string{}
		}
	}

	p, err := d.health.Printout(r.Context(), userID, providerID, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteProviderPrintout(&buf, p); err != nil {
		writeError(w, err)
		return
	}
	serveFile(w, contentTypeHTML, health.PrintoutName(p.Provider, p.Date), buf.Bytes())
}

// BreakdownChart renders the pie chart. Query parameters match
// GetBreakdown: year, month and category.
func (d *Downloads) BreakdownChart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	year, month, err := monthQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	snap, err := d.budget.Snapshot(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := breakdown(snap, year, month, r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteBreakdownChart(&buf, view); err != nil {
		writeError(w, err)
		return
	}
	servePNG(w, buf.Bytes())
}

// BarChart renders the monthly stacked bars, optionally for one ?category=.
func (d *Downloads) BarChart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	snap, err := d.budget.Snapshot(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	rows, err := barChart(snap, r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteBarChart(&buf, rows); err != nil {
		writeError(w, err)
		return
	}
	servePNG(w, buf.Bytes())
}

// monthQuery reads optional year and month query parameters. Month needs a
// year; a year alone selects the whole year.
func monthQuery(r *http.Request) (year, month int, err error) {
	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil || year <= 0 {
			return 0, 0, badRequest("invalid year %q", v)
		}
	}
	if v := q.Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil || month < 1 || month > 12 {
			return 0, 0, badRequest("invalid month %q", v)
		}
		if year == 0 {
			return 0, 0, badRequest("month requires a year")
		}
	}
	return year, month, nil
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func serveFile(w http.ResponseWriter, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if _, err := w.Write(body); err != nil {
		slog.Warn("Failed to write download", "file", name, "error", err)
	}
}

func servePNG(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", contentTypePNG)
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(body); err != nil {
		slog.Warn("Failed to write chart", "error", err)
	}
}

// writeError maps err to an HTTP status the same way RPC errors map to codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, export.ErrNoData):
		status = http.StatusNotFound
	default:
		switch connectCode(err) {
		case connect.CodeInvalidArgument:
			status = http.StatusBadRequest
		case connect.CodeNotFound:
			status = http.StatusNotFound
		case connect.CodeUnauthenticated:
			status = http.StatusUnauthorized
		}
	}
	if status == http.StatusInternalServerError {
		slog.Error("Download failed", "error", err)
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}
