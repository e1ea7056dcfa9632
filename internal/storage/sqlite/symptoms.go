package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/pocketbook/internal/models"
)

// CreateSymptom persists a new symptom after the user's existing ones.
func (s *SQLiteStore) CreateSymptom(ctx context.Context, symptom *models.Symptom) error {
	if symptom.ID == "" {
		symptom.ID = uuid.New().String()
	}
	if symptom.CreatedAt == 0 {
		symptom.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	pos, err := nextPosition(ctx, tx, "symptoms", symptom.UserID)
	if err != nil {
		return err
	}
	symptom.Order = pos

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO symptoms (id, user_id, name, position, created_at) VALUES (?, ?, ?, ?, ?)",
		symptom.ID, symptom.UserID, symptom.Name, symptom.Order, symptom.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert symptom: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListSymptoms returns a user's symptoms in display order.
func (s *SQLiteStore) ListSymptoms(ctx context.Context, userID string) ([]models.Symptom, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, position, created_at FROM symptoms WHERE user_id = ? ORDER BY position, created_at",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list symptoms: %w", err)
	}
	defer rows.Close()

	var symptoms []models.Symptom
	for rows.Next() {
		var sym models.Symptom
		if err := rows.Scan(&sym.ID, &sym.UserID, &sym.Name, &sym.Order, &sym.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan symptom: %w", err)
		}
		symptoms = append(symptoms, sym)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate symptoms: %w", err)
	}
	return symptoms, nil
}

// RenameSymptom updates a symptom's name.
func (s *SQLiteStore) RenameSymptom(ctx context.Context, userID, symptomID, name string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE symptoms SET name = ? WHERE id = ? AND user_id = ?", name, symptomID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename symptom: %w", err)
	}
	return requireAffected(res, "symptom", symptomID)
}

// DeleteSymptom deletes a symptom and its log, then renumbers the rest.
func (s *SQLiteStore) DeleteSymptom(ctx context.Context, userID, symptomID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM symptom_entries WHERE symptom_id = ? AND user_id = ?", symptomID, userID,
	); err != nil {
		return fmt.Errorf("failed to delete symptom entries: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM symptoms WHERE id = ? AND user_id = ?", symptomID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete symptom: %w", err)
	}
	if err := requireAffected(res, "symptom", symptomID); err != nil {
		return err
	}

	if err := renumber(ctx, tx, "symptoms", userID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReorderSymptoms assigns positions following ids.
func (s *SQLiteStore) ReorderSymptoms(ctx context.Context, userID string, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := setPositions(ctx, tx, "symptoms", userID, ids); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LogSymptom inserts or replaces the severity for a symptom on a date.
func (s *SQLiteStore) LogSymptom(ctx context.Context, entry *models.SymptomEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var owner string
	if err := tx.QueryRowContext(ctx,
		"SELECT user_id FROM symptoms WHERE id = ? AND user_id = ?", entry.SymptomID, entry.UserID,
	).Scan(&owner); err != nil {
		return notFound(err, "symptom", entry.SymptomID)
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO symptom_entries (id, user_id, symptom_id, date, severity, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (symptom_id, date) DO UPDATE SET severity = excluded.severity
		 RETURNING id, created_at`,
		entry.ID, entry.UserID, entry.SymptomID, entry.Date, string(entry.Severity), entry.CreatedAt,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to log symptom: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ClearSymptom removes the log entry for a symptom on a date.
func (s *SQLiteStore) ClearSymptom(ctx context.Context, userID, symptomID string, date models.Date) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM symptom_entries WHERE symptom_id = ? AND user_id = ? AND date = ?",
		symptomID, userID, date,
	)
	if err != nil {
		return fmt.Errorf("failed to clear symptom: %w", err)
	}
	return nil
}

// ListSymptomEntries returns a user's symptom log ordered by date.
func (s *SQLiteStore) ListSymptomEntries(ctx context.Context, userID string) ([]models.SymptomEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.user_id, e.symptom_id, e.date, e.severity, e.created_at
		 FROM symptom_entries e JOIN symptoms s ON s.id = e.symptom_id
		 WHERE e.user_id = ? ORDER BY e.date, s.position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list symptom entries: %w", err)
	}
	defer rows.Close()

	var entries []models.SymptomEntry
	for rows.Next() {
		var e models.SymptomEntry
		var severity string
		if err := rows.Scan(&e.ID, &e.UserID, &e.SymptomID, &e.Date, &severity, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan symptom entry: %w", err)
		}
		e.Severity = models.Severity(severity)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate symptom entries: %w", err)
	}
	return entries, nil
}

// SetDailyNote upserts the note for a day, or deletes it when empty.
func (s *SQLiteStore) SetDailyNote(ctx context.Context, note models.DailyNote) error {
	if note.Note == "" {
		if _, err := s.db.ExecContext(ctx,
			"DELETE FROM daily_notes WHERE user_id = ? AND date = ?", note.UserID, note.Date,
		); err != nil {
			return fmt.Errorf("failed to delete daily note: %w", err)
		}
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_notes (user_id, date, note) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, date) DO UPDATE SET note = excluded.note`,
		note.UserID, note.Date, note.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to save daily note: %w", err)
	}
	return nil
}

// ListDailyNotes returns a user's notes ordered by date.
func (s *SQLiteStore) ListDailyNotes(ctx context.Context, userID string) ([]models.DailyNote, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, date, note FROM daily_notes WHERE user_id = ? ORDER BY date", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily notes: %w", err)
	}
	defer rows.Close()

	var notes []models.DailyNote
	for rows.Next() {
		var n models.DailyNote
		if err := rows.Scan(&n.UserID, &n.Date, &n.Note); err != nil {
			return nil, fmt.Errorf("failed to scan daily note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily notes: %w", err)
	}
	return notes, nil
}
