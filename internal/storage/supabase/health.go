package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/pocketbook/internal/models"
)

// healthRow stores the record in a jsonb column.
type healthRow struct {
	UserID    string              `json:"user_id"`
	Data      models.HealthRecord `json:"data"`
	UpdatedAt int64               `json:"updated_at"`
}

// GetHealthRecord loads the user's health record document.
func (s *SupabaseStore) GetHealthRecord(ctx context.Context, userID string) (*models.HealthRecord, error) {
	data, _, err := s.client.From(healthTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get health record: %w", err)
	}
	rows, err := decodeRows[healthRow](data, "health record")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &models.HealthRecord{UserID: userID}, nil
	}

	record := rows[0].Data
	record.UserID = userID
	record.UpdatedAt = rows[0].UpdatedAt
	return &record, nil
}

// SaveHealthRecord replaces the user's health record document.
func (s *SupabaseStore) SaveHealthRecord(ctx context.Context, record *models.HealthRecord) error {
	record.UpdatedAt = time.Now().Unix()
	row := healthRow{UserID: record.UserID, Data: *record, UpdatedAt: record.UpdatedAt}
	if _, _, err := s.client.From(healthTable).Insert(row, true, "user_id", "", "").Execute(); err != nil {
		return fmt.Errorf("failed to save health record: %w", err)
	}
	return nil
}
