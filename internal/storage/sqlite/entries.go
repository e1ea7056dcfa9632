package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/pocketbook/internal/models"
)

const entryColumns = "id, user_id, category_id, subcategory, amount, note, date, created_at"

// CreateEntry persists a new entry.
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	if entry.Subcategory == "" {
		entry.Subcategory = models.GeneralSubcategory
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO entries ("+entryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.UserID, entry.CategoryID, entry.Subcategory,
		entry.Amount, entry.Note, entry.Date, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// GetEntry retrieves an entry by ID.
func (s *SQLiteStore) GetEntry(ctx context.Context, userID, entryID string) (*models.Entry, error) {
	var e models.Entry
	err := s.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE id = ? AND user_id = ?",
		entryID, userID,
	).Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Subcategory, &e.Amount, &e.Note, &e.Date, &e.CreatedAt)
	if err != nil {
		return nil, notFound(err, "entry", entryID)
	}
	return &e, nil
}

// UpdateEntry overwrites category, subcategory, amount, note and date.
func (s *SQLiteStore) UpdateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.Subcategory == "" {
		entry.Subcategory = models.GeneralSubcategory
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE entries SET category_id = ?, subcategory = ?, amount = ?, note = ?, date = ?
		 WHERE id = ? AND user_id = ?`,
		entry.CategoryID, entry.Subcategory, entry.Amount, entry.Note, entry.Date,
		entry.ID, entry.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return requireAffected(res, "entry", entry.ID)
}

// DeleteEntry removes an entry.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, userID, entryID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM entries WHERE id = ? AND user_id = ?", entryID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return requireAffected(res, "entry", entryID)
}

// ListEntries returns a user's entries, newest first.
func (s *SQLiteStore) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE user_id = ? ORDER BY date DESC, created_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Subcategory, &e.Amount, &e.Note, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}
