package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
)

var descending = &postgrest.OrderOpts{Ascending: false}

func (s *SupabaseStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	if entry.Subcategory == "" {
		entry.Subcategory = models.GeneralSubcategory
	}

	if _, _, err := s.client.From(entryTable).Insert(newEntryRow(entry), false, "", "", "").Execute(); err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

func (s *SupabaseStore) GetEntry(ctx context.Context, userID, entryID string) (*models.Entry, error) {
	data, _, err := s.client.From(entryTable).
		Select("*", "", false).
		Eq("id", entryID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	rows, err := decodeRows[entryRow](data, "entry")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("entry %s: %w", entryID, storage.ErrNotFound)
	}
	e := rows[0].model()
	return &e, nil
}

func (s *SupabaseStore) UpdateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.Subcategory == "" {
		entry.Subcategory = models.GeneralSubcategory
	}
	data, _, err := s.client.From(entryTable).
		Update(map[string]any{
			"category_id": entry.CategoryID,
			"subcategory": entry.Subcategory,
			"amount":      entry.Amount,
			"note":        entry.Note,
			"date":        entry.Date,
		}, "", "").
		Eq("id", entry.ID).
		Eq("user_id", entry.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return requireRows(data, "entry", entry.ID)
}

func (s *SupabaseStore) DeleteEntry(ctx context.Context, userID, entryID string) error {
	data, _, err := s.client.From(entryTable).
		Delete("", "").
		Eq("id", entryID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return requireRows(data, "entry", entryID)
}

func (s *SupabaseStore) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	data, _, err := s.client.From(entryTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("date", descending).
		Order("created_at", descending).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	rows, err := decodeRows[entryRow](data, "entries")
	if err != nil {
		return nil, err
	}

	entries := make([]models.Entry, len(rows))
	for i, r := range rows {
		entries[i] = r.model()
	}
	return entries, nil
}
