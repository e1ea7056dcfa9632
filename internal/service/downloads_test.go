package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/gorilla/websocket"
	"github.com/xuri/excelize/v2"

	"github.com/mmynk/pocketbook/internal/events"
	"github.com/mmynk/pocketbook/pkg/api"
)

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp, body
}

func TestDownloads(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	food := createCategory(t, ts, "Food", "Groceries")
	addEntry(t, ts, food.Id, "Groceries", "12.50", "2024-03-01")
	addEntry(t, ts, food.Id, "", "7", "2024-02-01")

	sym, err := ts.symptom.CreateSymptom(ctx, connect.NewRequest(&api.CreateSymptomRequest{Name: "Headache"}))
	if err != nil {
		t.Fatalf("CreateSymptom failed: %v", err)
	}
	if _, err := ts.symptom.LogSymptom(ctx, connect.NewRequest(&api.LogSymptomRequest{
		SymptomId: sym.Msg.Symptom.Id, Date: "2024-03-01", Severity: "strong",
	})); err != nil {
		t.Fatalf("LogSymptom failed: %v", err)
	}

	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantType     string
		validateFunc func(*testing.T, *http.Response, []byte)
	}{
		{
			name:       "month spreadsheet",
			path:       "/export/budget.xlsx?year=2024&month=3",
			wantStatus: http.StatusOK,
			wantType:   contentTypeXLSX,
			validateFunc: func(t *testing.T, resp *http.Response, body []byte) {
				if !strings.Contains(resp.Header.Get("Content-Disposition"), "Budget_March_2024.xlsx") {
					t.Errorf("unexpected disposition %q", resp.Header.Get("Content-Disposition"))
				}
				f, err := excelize.OpenReader(bytes.NewReader(body))
				if err != nil {
					t.Fatalf("not a workbook: %v", err)
				}
				defer f.Close()
				rows, err := f.GetRows("Budget")
				if err != nil {
					t.Fatalf("failed to read rows: %v", err)
				}
				// header, one March entry, blank, total
				if len(rows) != 4 {
					t.Errorf("expected 4 rows, got %d", len(rows))
				}
			},
		},
		{
			name:       "all-time spreadsheet",
			path:       "/export/budget.xlsx",
			wantStatus: http.StatusOK,
			wantType:   contentTypeXLSX,
			validateFunc: func(t *testing.T, resp *http.Response, body []byte) {
				if !strings.Contains(resp.Header.Get("Content-Disposition"), "Budget_All_2024-03-10.xlsx") {
					t.Errorf("unexpected disposition %q", resp.Header.Get("Content-Disposition"))
				}
			},
		},
		{
			name:       "month without year",
			path:       "/export/budget.xlsx?month=3",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "symptom csv",
			path:       "/export/symptoms.csv",
			wantStatus: http.StatusOK,
			wantType:   contentTypeCSV,
			validateFunc: func(t *testing.T, resp *http.Response, body []byte) {
				records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
				if err != nil {
					t.Fatalf("invalid csv: %v", err)
				}
				if len(records) != 2 || records[1][1] != "Headache" || records[1][2] != "Strong" {
					t.Errorf("unexpected records: %v", records)
				}
			},
		},
		{
			name:       "backup",
			path:       "/export/backup.json",
			wantStatus: http.StatusOK,
			wantType:   contentTypeJSON,
			validateFunc: func(t *testing.T, resp *http.Response, body []byte) {
				if !bytes.Contains(body, []byte(`"version": 1`)) {
					t.Errorf("expected version 1 envelope, got %s", body)
				}
			},
		},
		{
			name:       "breakdown chart",
			path:       "/charts/breakdown.png?year=2024",
			wantStatus: http.StatusOK,
			wantType:   contentTypePNG,
			validateFunc: func(t *testing.T, resp *http.Response, body []byte) {
				if !bytes.HasPrefix(body, []byte("\x89PNG")) {
					t.Error("expected PNG body")
				}
			},
		},
		{
			name:       "empty breakdown",
			path:       "/charts/breakdown.png?year=2023",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "bar chart",
			path:       "/charts/bars.png?category=" + food.Id,
			wantStatus: http.StatusOK,
			wantType:   contentTypePNG,
		},
		{
			name:       "bar chart unknown category",
			path:       "/charts/bars.png?category=missing",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "health",
			path:       "/healthz",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.server.URL+tt.path)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, resp.StatusCode, body)
			}
			if tt.wantType != "" && resp.Header.Get("Content-Type") != tt.wantType {
				t.Errorf("expected content type %q, got %q", tt.wantType, resp.Header.Get("Content-Type"))
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, resp, body)
			}
		})
	}
}

func TestChangeFeed(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	wsURL := "ws" + strings.TrimPrefix(ts.server.URL, "http") + "/ws/changes"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial change feed: %v", err)
	}
	defer conn.Close()

	// The subscription is registered after the upgrade completes.
	deadline := time.Now().Add(2 * time.Second)
	for ts.hub.Subscribers(testUser) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	createCategory(t, ts, "Food")

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("failed to set deadline: %v", err)
	}
	var change events.Change
	if err := conn.ReadJSON(&change); err != nil {
		t.Fatalf("failed to read change: %v", err)
	}
	if change.Kind != events.KindCategories {
		t.Errorf("expected categories change, got %q", change.Kind)
	}
}
