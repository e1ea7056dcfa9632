package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/pocketbook/internal/models"
)

// GetHealthRecord loads the user's health record document.
func (s *SQLiteStore) GetHealthRecord(ctx context.Context, userID string) (*models.HealthRecord, error) {
	var data string
	var updatedAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT data, updated_at FROM health_records WHERE user_id = ?", userID,
	).Scan(&data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.HealthRecord{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get health record: %w", err)
	}

	record := &models.HealthRecord{}
	if err := json.Unmarshal([]byte(data), record); err != nil {
		return nil, fmt.Errorf("failed to decode health record: %w", err)
	}
	record.UserID = userID
	record.UpdatedAt = updatedAt
	return record, nil
}

// SaveHealthRecord replaces the user's health record document.
func (s *SQLiteStore) SaveHealthRecord(ctx context.Context, record *models.HealthRecord) error {
	record.UpdatedAt = time.Now().Unix()
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode health record: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO health_records (user_id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		record.UserID, string(data), record.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to save health record: %w", err)
	}
	return nil
}
