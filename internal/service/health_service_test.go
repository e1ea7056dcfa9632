package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/pocketbook/pkg/api"
)

func TestHealthRecord(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	empty, err := ts.health.GetHealthRecord(ctx, connect.NewRequest(&api.GetHealthRecordRequest{}))
	if err != nil {
		t.Fatalf("GetHealthRecord failed: %v", err)
	}
	if len(empty.Msg.Record.Medications) != 0 || len(empty.Msg.Record.Providers) != 0 {
		t.Errorf("new user record = %+v, want empty", empty.Msg.Record)
	}

	_, err = ts.health.SaveHealthRecord(ctx, connect.NewRequest(&api.SaveHealthRecordRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = ts.health.SaveHealthRecord(ctx, connect.NewRequest(&api.SaveHealthRecordRequest{
		Record: &api.HealthRecord{Providers: []*api.Provider{{Name: ""}}},
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	saved, err := ts.health.SaveHealthRecord(ctx, connect.NewRequest(&api.SaveHealthRecordRequest{
		Record: &api.HealthRecord{
			Medications: []*api.Medication{
				{Name: "Ibuprofen", Dose: "200mg", StartDate: "2019", DateApproximate: true},
				{Name: "Melatonin", ExcludeProviders: []string{"gp"}},
			},
			Diagnoses: []*api.Diagnosis{
				{Name: "Insomnia", ConcernTags: []string{"Sleep"}},
				{Name: "Tendinitis", ConcernTags: []string{"Joints"}},
			},
			Providers: []*api.Provider{
				{Id: "gp", Name: "Dr. Smith", ConcernTags: []string{"Sleep"}, ExecutiveSummary: "Can't sleep <at all>"},
			},
			Explainers: []*api.Explainer{{Id: "x1", Title: "Allergy", Content: "Penicillin"}},
		},
	}))
	if err != nil {
		t.Fatalf("SaveHealthRecord failed: %v", err)
	}
	for _, m := range saved.Msg.Record.Medications {
		if m.Id == "" {
			t.Errorf("medication %s was not given an id", m.Name)
		}
	}

	got, err := ts.health.GetHealthRecord(ctx, connect.NewRequest(&api.GetHealthRecordRequest{}))
	if err != nil {
		t.Fatalf("GetHealthRecord failed: %v", err)
	}
	if len(got.Msg.Record.Medications) != 2 || got.Msg.Record.UpdatedAt == 0 {
		t.Errorf("stored record = %+v", got.Msg.Record)
	}

	tests := []struct {
		name         string
		query        string
		wantStatus   int
		validateFunc func(*testing.T, *http.Response, string)
	}{
		{
			name:       "printout",
			query:      "?provider=gp&summary=1&columns=started&explainers=x1",
			wantStatus: http.StatusOK,
			validateFunc: func(t *testing.T, resp *http.Response, body string) {
				if ct := resp.Header.Get("Content-Type"); ct != contentTypeHTML {
					t.Errorf("Content-Type = %q", ct)
				}
				if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "Dr__Smith_2024-03-10.html") {
					t.Errorf("Content-Disposition = %q", cd)
				}
				for _, want := range []string{"Patient Health Overview - Dr. Smith", "Ibuprofen", "~2019", "Insomnia", "Penicillin", "&lt;at all&gt;"} {
					if !strings.Contains(body, want) {
						t.Errorf("printout missing %q", want)
					}
				}
				for _, unwanted := range []string{"Melatonin", "Tendinitis", "<th>Notes</th>"} {
					if strings.Contains(body, unwanted) {
						t.Errorf("printout should not contain %q", unwanted)
					}
				}
			},
		},
		{name: "missing provider", query: "", wantStatus: http.StatusBadRequest},
		{name: "unknown provider", query: "?provider=nope", wantStatus: http.StatusNotFound},
		{name: "unknown column", query: "?provider=gp&columns=price", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.server.URL+"/export/provider.html"+tt.query)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.wantStatus, body)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, resp, string(body))
			}
		})
	}
}
