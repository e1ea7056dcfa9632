// Package supabase provides a storage.Store backed by a Supabase project
// through its PostgREST interface. The expected tables are in schema.sql.
//
// PostgREST offers no multi-statement transactions. Deleting a category or a
// symptom removes its entries through the schema's cascading foreign keys;
// other compound operations run as a sequence of requests.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"github.com/mmynk/pocketbook/internal/storage"
)

const (
	categoryTable     = "categories"
	entryTable        = "entries"
	symptomTable      = "symptoms"
	symptomEntryTable = "symptom_entries"
	dailyNoteTable    = "daily_notes"
	healthTable       = "health_records"
)

// Ensure SupabaseStore implements storage.Store
var _ storage.Store = (*SupabaseStore)(nil)

// SupabaseStore implements storage.Store on Supabase tables.
type SupabaseStore struct {
	client *supabase.Client
}

// New creates a client for the project at url using the service key.
func New(url, key string) (*SupabaseStore, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &SupabaseStore{client: client}, nil
}

// Close is a no-op; the client holds no persistent connection.
func (s *SupabaseStore) Close() error {
	return nil
}

// ClearBudget deletes all categories and entries of a user.
func (s *SupabaseStore) ClearBudget(ctx context.Context, userID string) error {
	if _, _, err := s.client.From(entryTable).Delete("", "").Eq("user_id", userID).Execute(); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	if _, _, err := s.client.From(categoryTable).Delete("", "").Eq("user_id", userID).Execute(); err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}
	return nil
}

var ascending = &postgrest.OrderOpts{Ascending: true}

// decodeRows unmarshals a PostgREST JSON array response.
func decodeRows[T any](data []byte, what string) ([]T, error) {
	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", what, err)
	}
	return rows, nil
}

// requireRows reports storage.ErrNotFound when a returning write touched nothing.
func requireRows(data []byte, what, id string) error {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", what, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
	}
	return nil
}

type idRow struct {
	ID string `json:"id"`
}

// setPositions assigns position i to ids[i] in table.
func (s *SupabaseStore) setPositions(table, userID string, ids []string) error {
	for i, id := range ids {
		data, _, err := s.client.From(table).
			Update(map[string]any{"position": i}, "", "").
			Eq("id", id).
			Eq("user_id", userID).
			Execute()
		if err != nil {
			return fmt.Errorf("failed to update %s position: %w", table, err)
		}
		if err := requireRows(data, table, id); err != nil {
			return err
		}
	}
	return nil
}

// renumber rewrites positions to 0..n-1 in current order.
func (s *SupabaseStore) renumber(table, userID string) error {
	data, _, err := s.client.From(table).
		Select("id", "", false).
		Eq("user_id", userID).
		Order("position", ascending).
		Order("created_at", ascending).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", table, err)
	}
	rows, err := decodeRows[idRow](data, table)
	if err != nil {
		return err
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return s.setPositions(table, userID, ids)
}

func (s *SupabaseStore) count(table, userID string) (int, error) {
	_, n, err := s.client.From(table).Select("id", "exact", true).Eq("user_id", userID).Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return int(n), nil
}
