package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "pocketbook-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCategories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	const user = "user-1"

	food := &models.Category{UserID: user, Name: "Food", Subcategories: []string{"Groceries"}}
	transport := &models.Category{UserID: user, Name: "Transport"}
	fun := &models.Category{UserID: user, Name: "Fun"}
	for _, c := range []*models.Category{food, transport, fun} {
		if err := store.CreateCategory(ctx, c); err != nil {
			t.Fatalf("CreateCategory failed: %v", err)
		}
	}

	t.Run("CreateCategory assigns ID and order", func(t *testing.T) {
		if food.ID == "" || food.CreatedAt == 0 {
			t.Error("Expected ID and CreatedAt to be generated")
		}
		if food.Order != 0 || transport.Order != 1 || fun.Order != 2 {
			t.Errorf("orders = %d,%d,%d, want 0,1,2", food.Order, transport.Order, fun.Order)
		}
	})

	t.Run("GetCategory is scoped to the user", func(t *testing.T) {
		got, err := store.GetCategory(ctx, user, food.ID)
		if err != nil {
			t.Fatalf("GetCategory failed: %v", err)
		}
		if got.Name != "Food" || len(got.Subcategories) != 1 || got.Subcategories[0] != "Groceries" {
			t.Errorf("got %+v", got)
		}

		_, err = store.GetCategory(ctx, "someone-else", food.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("other user's category: err = %v, want ErrNotFound", err)
		}
	})

	t.Run("subcategory add rename delete", func(t *testing.T) {
		if err := store.AddSubcategory(ctx, user, food.ID, "Dining"); err != nil {
			t.Fatalf("AddSubcategory failed: %v", err)
		}
		if err := store.AddSubcategory(ctx, user, food.ID, "Dining"); !errors.Is(err, storage.ErrAlreadyExists) {
			t.Errorf("duplicate AddSubcategory err = %v, want ErrAlreadyExists", err)
		}
		if err := store.AddSubcategory(ctx, user, food.ID, "General"); !errors.Is(err, storage.ErrAlreadyExists) {
			t.Errorf("AddSubcategory(General) err = %v, want ErrAlreadyExists", err)
		}

		e := &models.Entry{UserID: user, CategoryID: food.ID, Subcategory: "Dining", Amount: decimal.NewFromInt(12), Date: models.NewDate(2024, time.March, 5)}
		if err := store.CreateEntry(ctx, e); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}

		if err := store.RenameSubcategory(ctx, user, food.ID, "Dining", "Restaurants"); err != nil {
			t.Fatalf("RenameSubcategory failed: %v", err)
		}
		got, _ := store.GetEntry(ctx, user, e.ID)
		if got.Subcategory != "Restaurants" {
			t.Errorf("entry subcategory after rename = %q, want Restaurants", got.Subcategory)
		}

		if err := store.DeleteSubcategory(ctx, user, food.ID, "Restaurants"); err != nil {
			t.Fatalf("DeleteSubcategory failed: %v", err)
		}
		got, _ = store.GetEntry(ctx, user, e.ID)
		if got.Subcategory != models.GeneralSubcategory {
			t.Errorf("entry subcategory after delete = %q, want General", got.Subcategory)
		}

		cat, _ := store.GetCategory(ctx, user, food.ID)
		if len(cat.Subcategories) != 1 || cat.Subcategories[0] != "Groceries" {
			t.Errorf("subcategories = %v, want [Groceries]", cat.Subcategories)
		}
	})

	t.Run("ReorderCategories", func(t *testing.T) {
		if err := store.ReorderCategories(ctx, user, []string{fun.ID, food.ID, transport.ID}); err != nil {
			t.Fatalf("ReorderCategories failed: %v", err)
		}
		list, err := store.ListCategories(ctx, user)
		if err != nil {
			t.Fatalf("ListCategories failed: %v", err)
		}
		want := []string{"Fun", "Food", "Transport"}
		for i, name := range want {
			if list[i].Name != name || list[i].Order != i {
				t.Errorf("list[%d] = %s/%d, want %s/%d", i, list[i].Name, list[i].Order, name, i)
			}
		}
	})

	t.Run("DeleteCategory cascades and renumbers", func(t *testing.T) {
		if err := store.DeleteCategory(ctx, user, food.ID); err != nil {
			t.Fatalf("DeleteCategory failed: %v", err)
		}
		entries, err := store.ListEntries(ctx, user)
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		for _, e := range entries {
			if e.CategoryID == food.ID {
				t.Errorf("entry %s of deleted category survived", e.ID)
			}
		}

		list, _ := store.ListCategories(ctx, user)
		if len(list) != 2 {
			t.Fatalf("got %d categories, want 2", len(list))
		}
		for i, c := range list {
			if c.Order != i {
				t.Errorf("%s order = %d, want %d", c.Name, c.Order, i)
			}
		}

		if err := store.DeleteCategory(ctx, user, food.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second delete err = %v, want ErrNotFound", err)
		}
	})
}

func TestEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	const user = "user-1"

	cat := &models.Category{UserID: user, Name: "Food"}
	if err := store.CreateCategory(ctx, cat); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	older := &models.Entry{UserID: user, CategoryID: cat.ID, Amount: decimal.RequireFromString("42.50"), Note: "lunch", Date: models.NewDate(2024, time.March, 5)}
	newer := &models.Entry{UserID: user, CategoryID: cat.ID, Amount: decimal.RequireFromString("0.10"), Date: models.NewDate(2024, time.April, 1)}
	for _, e := range []*models.Entry{older, newer} {
		if err := store.CreateEntry(ctx, e); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
	}

	t.Run("round trip keeps exact amount and date", func(t *testing.T) {
		got, err := store.GetEntry(ctx, user, older.ID)
		if err != nil {
			t.Fatalf("GetEntry failed: %v", err)
		}
		if !got.Amount.Equal(decimal.RequireFromString("42.5")) {
			t.Errorf("amount = %v, want 42.50", got.Amount)
		}
		if got.Date != older.Date || got.Subcategory != models.GeneralSubcategory || got.Note != "lunch" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("ListEntries newest first", func(t *testing.T) {
		list, err := store.ListEntries(ctx, user)
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(list) != 2 || list[0].ID != newer.ID {
			t.Errorf("unexpected order: %+v", list)
		}
	})

	t.Run("UpdateEntry", func(t *testing.T) {
		older.Amount = decimal.NewFromInt(50)
		older.Note = "dinner"
		if err := store.UpdateEntry(ctx, older); err != nil {
			t.Fatalf("UpdateEntry failed: %v", err)
		}
		got, _ := store.GetEntry(ctx, user, older.ID)
		if !got.Amount.Equal(decimal.NewFromInt(50)) || got.Note != "dinner" {
			t.Errorf("got %+v", got)
		}

		missing := &models.Entry{ID: "nope", UserID: user, CategoryID: cat.ID}
		if err := store.UpdateEntry(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateEntry(missing) err = %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteEntry", func(t *testing.T) {
		if err := store.DeleteEntry(ctx, user, newer.ID); err != nil {
			t.Fatalf("DeleteEntry failed: %v", err)
		}
		if _, err := store.GetEntry(ctx, user, newer.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetEntry after delete err = %v, want ErrNotFound", err)
		}
	})

	t.Run("ClearBudget", func(t *testing.T) {
		if err := store.ClearBudget(ctx, user); err != nil {
			t.Fatalf("ClearBudget failed: %v", err)
		}
		cats, _ := store.ListCategories(ctx, user)
		entries, _ := store.ListEntries(ctx, user)
		if len(cats) != 0 || len(entries) != 0 {
			t.Errorf("after clear: %d categories, %d entries", len(cats), len(entries))
		}
	})
}

func TestSymptoms(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	const user = "user-1"

	headache := &models.Symptom{UserID: user, Name: "Headache"}
	nausea := &models.Symptom{UserID: user, Name: "Nausea"}
	for _, s := range []*models.Symptom{headache, nausea} {
		if err := store.CreateSymptom(ctx, s); err != nil {
			t.Fatalf("CreateSymptom failed: %v", err)
		}
	}
	day := models.NewDate(2024, time.March, 5)

	t.Run("LogSymptom upserts by symptom and date", func(t *testing.T) {
		first := &models.SymptomEntry{UserID: user, SymptomID: headache.ID, Date: day, Severity: models.SeverityMild}
		if err := store.LogSymptom(ctx, first); err != nil {
			t.Fatalf("LogSymptom failed: %v", err)
		}
		second := &models.SymptomEntry{UserID: user, SymptomID: headache.ID, Date: day, Severity: models.SeverityStrong}
		if err := store.LogSymptom(ctx, second); err != nil {
			t.Fatalf("LogSymptom failed: %v", err)
		}
		if second.ID != first.ID {
			t.Errorf("upsert should keep the original ID")
		}

		entries, err := store.ListSymptomEntries(ctx, user)
		if err != nil {
			t.Fatalf("ListSymptomEntries failed: %v", err)
		}
		if len(entries) != 1 || entries[0].Severity != models.SeverityStrong {
			t.Errorf("entries = %+v", entries)
		}
	})

	t.Run("LogSymptom for unknown symptom", func(t *testing.T) {
		err := store.LogSymptom(ctx, &models.SymptomEntry{UserID: user, SymptomID: "nope", Date: day, Severity: models.SeverityMid})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("daily notes", func(t *testing.T) {
		if err := store.SetDailyNote(ctx, models.DailyNote{UserID: user, Date: day, Note: "slept badly"}); err != nil {
			t.Fatalf("SetDailyNote failed: %v", err)
		}
		if err := store.SetDailyNote(ctx, models.DailyNote{UserID: user, Date: day, Note: "slept well"}); err != nil {
			t.Fatalf("SetDailyNote failed: %v", err)
		}
		notes, _ := store.ListDailyNotes(ctx, user)
		if len(notes) != 1 || notes[0].Note != "slept well" {
			t.Errorf("notes = %+v", notes)
		}

		if err := store.SetDailyNote(ctx, models.DailyNote{UserID: user, Date: day}); err != nil {
			t.Fatalf("SetDailyNote(empty) failed: %v", err)
		}
		notes, _ = store.ListDailyNotes(ctx, user)
		if len(notes) != 0 {
			t.Errorf("empty note should delete, got %+v", notes)
		}
	})

	t.Run("DeleteSymptom cascades and renumbers", func(t *testing.T) {
		if err := store.DeleteSymptom(ctx, user, headache.ID); err != nil {
			t.Fatalf("DeleteSymptom failed: %v", err)
		}
		entries, _ := store.ListSymptomEntries(ctx, user)
		if len(entries) != 0 {
			t.Errorf("log entries survived: %+v", entries)
		}
		list, _ := store.ListSymptoms(ctx, user)
		if len(list) != 1 || list[0].Order != 0 {
			t.Errorf("symptoms = %+v", list)
		}
	})
}

func TestHealthRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	empty, err := store.GetHealthRecord(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetHealthRecord failed: %v", err)
	}
	if empty.UserID != "user-1" || len(empty.Providers) != 0 || empty.UpdatedAt != 0 {
		t.Errorf("expected an empty record, got %+v", empty)
	}

	record := &models.HealthRecord{
		UserID:      "user-1",
		Medications: []models.Medication{{ID: "m1", Name: "Ibuprofen", Dose: "200mg", ExcludeProviders: []string{"p2"}}},
		Providers:   []models.Provider{{ID: "p1", Name: "Dr. Smith", ConcernTags: []string{"Sleep"}}},
	}
	if err := store.SaveHealthRecord(ctx, record); err != nil {
		t.Fatalf("SaveHealthRecord failed: %v", err)
	}
	record.Providers = append(record.Providers, models.Provider{ID: "p2", Name: "PA Jones"})
	if err := store.SaveHealthRecord(ctx, record); err != nil {
		t.Fatalf("SaveHealthRecord (replace) failed: %v", err)
	}

	got, err := store.GetHealthRecord(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetHealthRecord failed: %v", err)
	}
	if len(got.Providers) != 2 || got.Medications[0].ExcludeProviders[0] != "p2" {
		t.Errorf("record not replaced: %+v", got)
	}
	if got.UpdatedAt == 0 {
		t.Error("UpdatedAt should be set")
	}

	other, _ := store.GetHealthRecord(ctx, "user-2")
	if len(other.Providers) != 0 {
		t.Errorf("records leak between users: %+v", other)
	}
}
