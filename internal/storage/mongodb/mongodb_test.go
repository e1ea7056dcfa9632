package mongodb

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
)

func TestEntryDocKeepsExactAmount(t *testing.T) {
	e := &models.Entry{
		ID:         "e1",
		CategoryID: "c1",
		Amount:     decimal.RequireFromString("0.10"),
		Date:       models.NewDate(2024, time.March, 5),
	}
	got, err := newEntryDoc(e).model()
	if err != nil {
		t.Fatalf("model() failed: %v", err)
	}
	if !got.Amount.Equal(e.Amount) || got.Date != e.Date {
		t.Errorf("got %+v", got)
	}

	bad := entryDoc{ID: "e2", Amount: "ten", Date: "2024-03-05"}
	if _, err := bad.model(); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}

func TestHasTransactions(t *testing.T) {
	tests := []struct {
		name    string
		setName string
		msg     string
		want    bool
	}{
		{name: "standalone", want: false},
		{name: "replica set", setName: "rs0", want: true},
		{name: "mongos", msg: "isdbgrid", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasTransactions(tt.setName, tt.msg); got != tt.want {
				t.Errorf("hasTransactions(%q, %q) = %v, want %v", tt.setName, tt.msg, got, tt.want)
			}
		})
	}
}

// TestMongoStore runs against a live server when MONGO_TEST_URI is set.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	store, err := New(ctx, uri, "pocketbook_test_"+uuid.New().String()[:8])
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer func() {
		store.db.Drop(ctx)
		store.Close()
	}()

	const user = "user-1"
	food := &models.Category{UserID: user, Name: "Food"}
	fun := &models.Category{UserID: user, Name: "Fun"}
	for _, c := range []*models.Category{food, fun} {
		if err := store.CreateCategory(ctx, c); err != nil {
			t.Fatalf("CreateCategory failed: %v", err)
		}
	}
	if err := store.AddSubcategory(ctx, user, food.ID, "Dining"); err != nil {
		t.Fatalf("AddSubcategory failed: %v", err)
	}

	e := &models.Entry{UserID: user, CategoryID: food.ID, Subcategory: "Dining", Amount: decimal.NewFromInt(5), Date: models.NewDate(2024, time.March, 5)}
	if err := store.CreateEntry(ctx, e); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	if err := store.DeleteSubcategory(ctx, user, food.ID, "Dining"); err != nil {
		t.Fatalf("DeleteSubcategory failed: %v", err)
	}
	got, err := store.GetEntry(ctx, user, e.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Subcategory != models.GeneralSubcategory {
		t.Errorf("subcategory = %q, want General", got.Subcategory)
	}

	if err := store.DeleteCategory(ctx, user, food.ID); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if _, err := store.GetEntry(ctx, user, e.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("entry survived category delete: %v", err)
	}
	list, _ := store.ListCategories(ctx, user)
	if len(list) != 1 || list[0].Order != 0 {
		t.Errorf("categories = %+v", list)
	}
}

func TestMongoHealthRecord(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	store, err := New(ctx, uri, "pocketbook_test_"+uuid.New().String()[:8])
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer func() {
		store.db.Drop(ctx)
		store.Close()
	}()

	record := &models.HealthRecord{
		UserID:    "user-1",
		Diagnoses: []models.Diagnosis{{ID: "d1", Name: "Migraine", ConcernTags: []string{"Neuro"}}},
	}
	if err := store.SaveHealthRecord(ctx, record); err != nil {
		t.Fatalf("SaveHealthRecord failed: %v", err)
	}
	got, err := store.GetHealthRecord(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetHealthRecord failed: %v", err)
	}
	if len(got.Diagnoses) != 1 || got.Diagnoses[0].ConcernTags[0] != "Neuro" {
		t.Errorf("record = %+v", got)
	}
}
