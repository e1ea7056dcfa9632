package symptom

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/pocketbook/internal/events"
	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
	"github.com/mmynk/pocketbook/internal/storage/sqlite"
)

func setupTestService(t *testing.T) (*Service, *events.Hub) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	hub := events.NewHub(16)
	t.Cleanup(func() {
		hub.Close()
		store.Close()
	})
	return NewService(store, hub), hub
}

func TestLog(t *testing.T) {
	svc, hub := setupTestService(t)
	ctx := context.Background()
	changes, cancel := hub.Subscribe("u1")
	defer cancel()

	headache, err := svc.CreateSymptom(ctx, "u1", "Headache")
	if err != nil {
		t.Fatalf("CreateSymptom failed: %v", err)
	}
	<-changes
	day := models.NewDate(2024, time.March, 5)

	tests := []struct {
		name      string
		symptomID string
		date      models.Date
		severity  string
		wantErr   error
	}{
		{name: "valid", symptomID: headache.ID, date: day, severity: "mild"},
		{name: "case insensitive", symptomID: headache.ID, date: day, severity: " Strong "},
		{name: "unknown severity", symptomID: headache.ID, date: day, severity: "severe", wantErr: ErrInvalid},
		{name: "missing date", symptomID: headache.ID, severity: "mid", wantErr: ErrInvalid},
		{name: "unknown symptom", symptomID: "nope", date: day, severity: "mid", wantErr: storage.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Log(ctx, "u1", tt.symptomID, tt.date, tt.severity)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Log failed: %v", err)
			}
			if c := <-changes; c.Kind != events.KindSymptoms {
				t.Errorf("change kind = %s", c.Kind)
			}
		})
	}

	diary, err := svc.Snapshot(ctx, "u1")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(diary.Entries) != 1 || diary.Entries[0].Severity != models.SeverityStrong {
		t.Errorf("entries = %+v, want one strong entry", diary.Entries)
	}

	if err := svc.Clear(ctx, "u1", headache.ID, day); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	diary, _ = svc.Snapshot(ctx, "u1")
	if len(diary.Entries) != 0 {
		t.Errorf("entries after clear = %+v", diary.Entries)
	}
}

func TestNotesAndSymptomNames(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	day := models.NewDate(2024, time.March, 5)

	sym, _ := svc.CreateSymptom(ctx, "u1", "Nausea")
	if err := svc.SetNote(ctx, "u1", day, "  long day  "); err != nil {
		t.Fatalf("SetNote failed: %v", err)
	}

	diary, _ := svc.Snapshot(ctx, "u1")
	if diary.Note(day) != "long day" {
		t.Errorf("Note() = %q, want trimmed note", diary.Note(day))
	}
	if diary.SymptomName(sym.ID) != "Nausea" || diary.SymptomName("gone") != "Unknown" {
		t.Error("SymptomName mismatch")
	}

	if err := svc.SetNote(ctx, "u1", day, "   "); err != nil {
		t.Fatalf("SetNote(blank) failed: %v", err)
	}
	diary, _ = svc.Snapshot(ctx, "u1")
	if len(diary.Notes) != 0 {
		t.Errorf("blank note should delete, got %+v", diary.Notes)
	}

	if _, err := svc.CreateSymptom(ctx, "u1", ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty name err = %v, want ErrInvalid", err)
	}
}

func TestReorderSymptoms(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	a, _ := svc.CreateSymptom(ctx, "u1", "A")
	b, _ := svc.CreateSymptom(ctx, "u1", "B")

	if err := svc.ReorderSymptoms(ctx, "u1", []string{b.ID}); !errors.Is(err, ErrInvalid) {
		t.Errorf("partial reorder err = %v, want ErrInvalid", err)
	}
	if err := svc.ReorderSymptoms(ctx, "u1", []string{b.ID, a.ID}); err != nil {
		t.Fatalf("ReorderSymptoms failed: %v", err)
	}
	diary, _ := svc.Snapshot(ctx, "u1")
	if diary.Symptoms[0].Name != "B" {
		t.Errorf("first symptom = %s, want B", diary.Symptoms[0].Name)
	}

	if err := svc.DeleteSymptom(ctx, "u1", b.ID); err != nil {
		t.Fatalf("DeleteSymptom failed: %v", err)
	}
	diary, _ = svc.Snapshot(ctx, "u1")
	if len(diary.Symptoms) != 1 || diary.Symptoms[0].Order != 0 {
		t.Errorf("symptoms after delete = %+v", diary.Symptoms)
	}
}
