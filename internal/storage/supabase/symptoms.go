package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
)

func (s *SupabaseStore) CreateSymptom(ctx context.Context, symptom *models.Symptom) error {
	if symptom.ID == "" {
		symptom.ID = uuid.New().String()
	}
	if symptom.CreatedAt == 0 {
		symptom.CreatedAt = time.Now().Unix()
	}
	pos, err := s.count(symptomTable, symptom.UserID)
	if err != nil {
		return err
	}
	symptom.Order = pos

	row := symptomRow{
		ID:        symptom.ID,
		UserID:    symptom.UserID,
		Name:      symptom.Name,
		Position:  symptom.Order,
		CreatedAt: symptom.CreatedAt,
	}
	if _, _, err := s.client.From(symptomTable).Insert(row, false, "", "", "").Execute(); err != nil {
		return fmt.Errorf("failed to create symptom: %w", err)
	}
	return nil
}

func (s *SupabaseStore) ListSymptoms(ctx context.Context, userID string) ([]models.Symptom, error) {
	data, _, err := s.client.From(symptomTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("position", ascending).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list symptoms: %w", err)
	}
	rows, err := decodeRows[symptomRow](data, "symptoms")
	if err != nil {
		return nil, err
	}

	symptoms := make([]models.Symptom, len(rows))
	for i, r := range rows {
		symptoms[i] = models.Symptom{ID: r.ID, UserID: r.UserID, Name: r.Name, Order: r.Position, CreatedAt: r.CreatedAt}
	}
	return symptoms, nil
}

func (s *SupabaseStore) RenameSymptom(ctx context.Context, userID, symptomID, name string) error {
	data, _, err := s.client.From(symptomTable).
		Update(map[string]any{"name": name}, "", "").
		Eq("id", symptomID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to rename symptom: %w", err)
	}
	return requireRows(data, "symptom", symptomID)
}

// DeleteSymptom relies on the foreign key cascade for the symptom's log.
func (s *SupabaseStore) DeleteSymptom(ctx context.Context, userID, symptomID string) error {
	data, _, err := s.client.From(symptomTable).
		Delete("", "").
		Eq("id", symptomID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete symptom: %w", err)
	}
	if err := requireRows(data, "symptom", symptomID); err != nil {
		return err
	}
	return s.renumber(symptomTable, userID)
}

func (s *SupabaseStore) ReorderSymptoms(ctx context.Context, userID string, ids []string) error {
	return s.setPositions(symptomTable, userID, ids)
}

func (s *SupabaseStore) LogSymptom(ctx context.Context, entry *models.SymptomEntry) error {
	_, n, err := s.client.From(symptomTable).
		Select("id", "exact", true).
		Eq("id", entry.SymptomID).
		Eq("user_id", entry.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to check symptom: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("symptom %s: %w", entry.SymptomID, storage.ErrNotFound)
	}

	row := symptomEntryRow{
		UserID:    entry.UserID,
		SymptomID: entry.SymptomID,
		Date:      entry.Date,
		Severity:  string(entry.Severity),
	}
	data, _, err := s.client.From(symptomEntryTable).
		Insert(row, true, "symptom_id,date", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to log symptom: %w", err)
	}
	rows, err := decodeRows[symptomEntryRow](data, "symptom entry")
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		entry.ID = rows[0].ID
		entry.CreatedAt = rows[0].CreatedAt
	}
	return nil
}

func (s *SupabaseStore) ClearSymptom(ctx context.Context, userID, symptomID string, date models.Date) error {
	_, _, err := s.client.From(symptomEntryTable).
		Delete("", "").
		Eq("user_id", userID).
		Eq("symptom_id", symptomID).
		Eq("date", date.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to clear symptom: %w", err)
	}
	return nil
}

func (s *SupabaseStore) ListSymptomEntries(ctx context.Context, userID string) ([]models.SymptomEntry, error) {
	data, _, err := s.client.From(symptomEntryTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("date", ascending).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list symptom entries: %w", err)
	}
	rows, err := decodeRows[symptomEntryRow](data, "symptom entries")
	if err != nil {
		return nil, err
	}

	entries := make([]models.SymptomEntry, len(rows))
	for i, r := range rows {
		entries[i] = models.SymptomEntry{
			ID:        r.ID,
			UserID:    r.UserID,
			SymptomID: r.SymptomID,
			Date:      r.Date,
			Severity:  models.Severity(r.Severity),
			CreatedAt: r.CreatedAt,
		}
	}
	return entries, nil
}

func (s *SupabaseStore) SetDailyNote(ctx context.Context, note models.DailyNote) error {
	if note.Note == "" {
		if _, _, err := s.client.From(dailyNoteTable).
			Delete("", "").
			Eq("user_id", note.UserID).
			Eq("date", note.Date.String()).
			Execute(); err != nil {
			return fmt.Errorf("failed to delete daily note: %w", err)
		}
		return nil
	}

	row := dailyNoteRow{UserID: note.UserID, Date: note.Date, Note: note.Note}
	if _, _, err := s.client.From(dailyNoteTable).Insert(row, true, "user_id,date", "", "").Execute(); err != nil {
		return fmt.Errorf("failed to save daily note: %w", err)
	}
	return nil
}

func (s *SupabaseStore) ListDailyNotes(ctx context.Context, userID string) ([]models.DailyNote, error) {
	data, _, err := s.client.From(dailyNoteTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("date", ascending).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list daily notes: %w", err)
	}
	rows, err := decodeRows[dailyNoteRow](data, "daily notes")
	if err != nil {
		return nil, err
	}

	notes := make([]models.DailyNote, len(rows))
	for i, r := range rows {
		notes[i] = models.DailyNote{UserID: r.UserID, Date: r.Date, Note: r.Note}
	}
	return notes, nil
}
