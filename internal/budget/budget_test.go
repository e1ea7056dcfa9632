package budget

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/backup"
	"github.com/mmynk/pocketbook/internal/events"
	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
	"github.com/mmynk/pocketbook/internal/storage/sqlite"
)

// setupTestService creates a service over a temporary SQLite database.
func setupTestService(t *testing.T) (*Service, *events.Hub, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	hub := events.NewHub(16)
	svc := NewServiceWithClock(store, hub, func() time.Time { return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local) })

	cleanup := func() {
		hub.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return svc, hub, cleanup
}

func TestCreateCategoryValidation(t *testing.T) {
	svc, _, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name    string
		catName string
		subs    []string
		wantErr error
	}{
		{name: "valid", catName: "  Food ", subs: []string{"Groceries"}},
		{name: "empty name", catName: "   ", wantErr: ErrInvalid},
		{name: "empty subcategory", catName: "Rent", subs: []string{""}, wantErr: ErrInvalid},
		{name: "duplicate subcategory", catName: "Fun", subs: []string{"Games", "Games"}, wantErr: storage.ErrAlreadyExists},
		{name: "general is implicit", catName: "Misc", subs: []string{"General"}, wantErr: storage.ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := svc.CreateCategory(ctx, "u1", tt.catName, tt.subs)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateCategory failed: %v", err)
			}
			if c.Name != "Food" {
				t.Errorf("name = %q, want trimmed Food", c.Name)
			}
		})
	}
}

func TestEntryValidationAndNotifications(t *testing.T) {
	svc, hub, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	changes, cancel := hub.Subscribe("u1")
	defer cancel()

	food, err := svc.CreateCategory(ctx, "u1", "Food", []string{"Groceries"})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if c := <-changes; c.Kind != events.KindCategories {
		t.Errorf("change kind = %s, want categories", c.Kind)
	}

	tests := []struct {
		name    string
		in      EntryInput
		wantErr bool
	}{
		{name: "defaults", in: EntryInput{CategoryID: food.ID, Amount: decimal.RequireFromString("42.50")}},
		{name: "known subcategory", in: EntryInput{CategoryID: food.ID, Subcategory: "Groceries", Amount: decimal.NewFromInt(1)}},
		{name: "zero amount allowed", in: EntryInput{CategoryID: food.ID, Amount: decimal.Zero}},
		{name: "negative amount", in: EntryInput{CategoryID: food.ID, Amount: decimal.NewFromInt(-1)}, wantErr: true},
		{name: "unknown subcategory", in: EntryInput{CategoryID: food.ID, Subcategory: "Dining", Amount: decimal.NewFromInt(1)}, wantErr: true},
		{name: "unknown category", in: EntryInput{CategoryID: "nope", Amount: decimal.NewFromInt(1)}, wantErr: true},
		{name: "missing category", in: EntryInput{Amount: decimal.NewFromInt(1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := svc.AddEntry(ctx, "u1", tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Fatalf("err = %v, want ErrInvalid", err)
				}
				if len(changes) != 0 {
					t.Error("rejected write must not notify")
				}
				return
			}
			if err != nil {
				t.Fatalf("AddEntry failed: %v", err)
			}
			if tt.in.Subcategory == "" && e.Subcategory != models.GeneralSubcategory {
				t.Errorf("subcategory = %q, want General", e.Subcategory)
			}
			if e.Date != models.NewDate(2024, time.March, 10) {
				t.Errorf("date = %v, want today", e.Date)
			}
			if c := <-changes; c.Kind != events.KindEntries {
				t.Errorf("change kind = %s, want entries", c.Kind)
			}
		})
	}

	snap, err := svc.Snapshot(ctx, "u1")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.Categories) != 1 || len(snap.Entries) != 3 {
		t.Errorf("snapshot has %d categories, %d entries", len(snap.Categories), len(snap.Entries))
	}
}

func TestUpdateAndDeleteEntry(t *testing.T) {
	svc, _, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	food, _ := svc.CreateCategory(ctx, "u1", "Food", nil)
	rent, _ := svc.CreateCategory(ctx, "u1", "Rent", nil)
	e, err := svc.AddEntry(ctx, "u1", EntryInput{CategoryID: food.ID, Amount: decimal.NewFromInt(5)})
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	updated, err := svc.UpdateEntry(ctx, "u1", e.ID, EntryInput{
		CategoryID: rent.ID,
		Amount:     decimal.NewFromInt(900),
		Note:       " march ",
		Date:       models.NewDate(2024, time.March, 1),
	})
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if updated.CategoryID != rent.ID || updated.Note != "march" || !updated.Amount.Equal(decimal.NewFromInt(900)) {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := svc.UpdateEntry(ctx, "u2", e.ID, EntryInput{CategoryID: rent.ID}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("other user's update err = %v, want ErrNotFound", err)
	}

	if err := svc.DeleteEntry(ctx, "u1", e.ID); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if err := svc.DeleteEntry(ctx, "u1", e.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestSubcategoryRules(t *testing.T) {
	svc, _, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	food, _ := svc.CreateCategory(ctx, "u1", "Food", []string{"Dining"})

	if err := svc.DeleteSubcategory(ctx, "u1", food.ID, "General"); !errors.Is(err, ErrInvalid) {
		t.Errorf("deleting General err = %v, want ErrInvalid", err)
	}
	if err := svc.RenameSubcategory(ctx, "u1", food.ID, "General", "Other"); !errors.Is(err, ErrInvalid) {
		t.Errorf("renaming General err = %v, want ErrInvalid", err)
	}
	if err := svc.AddSubcategory(ctx, "u1", food.ID, "Dining"); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("duplicate add err = %v, want ErrAlreadyExists", err)
	}
	if err := svc.RenameSubcategory(ctx, "u1", food.ID, "Dining", "Restaurants"); err != nil {
		t.Fatalf("RenameSubcategory failed: %v", err)
	}
	if err := svc.DeleteSubcategory(ctx, "u1", food.ID, "Dining"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("deleting renamed subcategory err = %v, want ErrNotFound", err)
	}
}

func TestReorderCategories(t *testing.T) {
	svc, _, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	a, _ := svc.CreateCategory(ctx, "u1", "A", nil)
	b, _ := svc.CreateCategory(ctx, "u1", "B", nil)

	tests := []struct {
		name    string
		ids     []string
		wantErr bool
	}{
		{name: "missing id", ids: []string{a.ID}, wantErr: true},
		{name: "repeated id", ids: []string{a.ID, a.ID}, wantErr: true},
		{name: "unknown id", ids: []string{a.ID, "x"}, wantErr: true},
		{name: "valid", ids: []string{b.ID, a.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ReorderCategories(ctx, "u1", tt.ids)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReorderCategories() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	snap, _ := svc.Snapshot(ctx, "u1")
	if snap.Categories[0].Name != "B" {
		t.Errorf("first category = %s, want B", snap.Categories[0].Name)
	}
}

func TestExportImport(t *testing.T) {
	svc, _, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	food, _ := svc.CreateCategory(ctx, "u1", "Food", []string{"Groceries"})
	if _, err := svc.AddEntry(ctx, "u1", EntryInput{
		CategoryID:  food.ID,
		Subcategory: "Groceries",
		Amount:      decimal.RequireFromString("42.50"),
		Date:        models.NewDate(2024, time.March, 5),
	}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	env, err := svc.Export(ctx, "u1")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if env.Version != backup.Version || len(env.Categories) != 1 || len(env.Entries) != 1 {
		t.Fatalf("envelope = %+v", env)
	}

	// Existing data of the target user is replaced.
	if _, err := svc.CreateCategory(ctx, "u2", "Old", nil); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	res, err := svc.Import(ctx, "u2", env, nil)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if res.Written() != 2 {
		t.Errorf("written = %d, want 2", res.Written())
	}

	snap, _ := svc.Snapshot(ctx, "u2")
	if len(snap.Categories) != 1 || snap.Categories[0].Name != "Food" {
		t.Fatalf("categories after import = %+v", snap.Categories)
	}
	if len(snap.Entries) != 1 || snap.Entries[0].CategoryID != snap.Categories[0].ID {
		t.Errorf("entries after import = %+v", snap.Entries)
	}
}
