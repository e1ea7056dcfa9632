package supabase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
)

func TestDecodeEntryRows(t *testing.T) {
	// PostgREST returns numeric columns as JSON numbers.
	data := []byte(`[{"id":"e1","user_id":"u1","category_id":"c1","subcategory":"General","amount":42.50,"note":"","date":"2024-03-05","created_at":1709600000}]`)

	rows, err := decodeRows[entryRow](data, "entries")
	if err != nil {
		t.Fatalf("decodeRows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	e := rows[0].model()
	if !e.Amount.Equal(decimal.RequireFromString("42.5")) {
		t.Errorf("amount = %v, want 42.5", e.Amount)
	}
	if e.Date != models.NewDate(2024, time.March, 5) {
		t.Errorf("date = %v", e.Date)
	}
}

func TestRequireRows(t *testing.T) {
	if err := requireRows([]byte(`[]`), "entry", "e1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("empty response err = %v, want ErrNotFound", err)
	}
	if err := requireRows([]byte(`[{"id":"e1"}]`), "entry", "e1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := requireRows([]byte(`{`), "entry", "e1"); err == nil {
		t.Error("expected parse error")
	}
}

func TestDecodeHealthRows(t *testing.T) {
	data := []byte(`[{"user_id":"u1","data":{"providers":[{"id":"p1","name":"Dr. Smith","concernTags":["Sleep"]}],"medications":[],"diagnoses":null,"explainers":[]},"updated_at":1709600000}]`)

	rows, err := decodeRows[healthRow](data, "health record")
	if err != nil {
		t.Fatalf("decodeRows failed: %v", err)
	}
	if len(rows) != 1 || rows[0].UpdatedAt != 1709600000 {
		t.Fatalf("rows = %+v", rows)
	}
	p, ok := rows[0].Data.Provider("p1")
	if !ok || p.Name != "Dr. Smith" || p.ConcernTags[0] != "Sleep" {
		t.Errorf("provider = %+v, %v", p, ok)
	}
}
