// Package symptom implements the symptom diary: tracked symptoms, a daily
// severity log and free-text notes per day.
package symptom

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/pocketbook/internal/events"
	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
)

// ErrInvalid marks input rejected before any write.
var ErrInvalid = errors.New("invalid argument")

// Service is the symptom diary domain service.
type Service struct {
	store storage.Store
	hub   *events.Hub
}

// NewService creates a diary service. hub may be nil.
func NewService(store storage.Store, hub *events.Hub) *Service {
	return &Service{store: store, hub: hub}
}

// Diary is a user's complete symptom data.
type Diary struct {
	Symptoms []models.Symptom
	Entries  []models.SymptomEntry
	Notes    []models.DailyNote
}

// SymptomName returns the name of the symptom with id, or "Unknown".
func (d *Diary) SymptomName(id string) string {
	for _, s := range d.Symptoms {
		if s.ID == id {
			return s.Name
		}
	}
	return "Unknown"
}

// Note returns the note for a day, or "".
func (d *Diary) Note(date models.Date) string {
	for _, n := range d.Notes {
		if n.Date == date {
			return n.Note
		}
	}
	return ""
}

// Snapshot loads the whole diary.
func (s *Service) Snapshot(ctx context.Context, userID string) (*Diary, error) {
	symptoms, err := s.store.ListSymptoms(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListSymptomEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	notes, err := s.store.ListDailyNotes(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Diary{Symptoms: symptoms, Entries: entries, Notes: notes}, nil
}

// CreateSymptom starts tracking a symptom.
func (s *Service) CreateSymptom(ctx context.Context, userID, name string) (*models.Symptom, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: symptom name is required", ErrInvalid)
	}
	symptom := &models.Symptom{UserID: userID, Name: name}
	if err := s.store.CreateSymptom(ctx, symptom); err != nil {
		return nil, err
	}
	s.notify(userID, events.KindSymptoms)
	return symptom, nil
}

// RenameSymptom changes a symptom's name.
func (s *Service) RenameSymptom(ctx context.Context, userID, symptomID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: symptom name is required", ErrInvalid)
	}
	if err := s.store.RenameSymptom(ctx, userID, symptomID, name); err != nil {
		return err
	}
	s.notify(userID, events.KindSymptoms)
	return nil
}

// DeleteSymptom stops tracking a symptom and drops its log.
func (s *Service) DeleteSymptom(ctx context.Context, userID, symptomID string) error {
	if err := s.store.DeleteSymptom(ctx, userID, symptomID); err != nil {
		return err
	}
	s.notify(userID, events.KindSymptoms)
	return nil
}

// ReorderSymptoms applies a new display order covering every symptom once.
func (s *Service) ReorderSymptoms(ctx context.Context, userID string, ids []string) error {
	current, err := s.store.ListSymptoms(ctx, userID)
	if err != nil {
		return err
	}
	if len(ids) != len(current) {
		return fmt.Errorf("%w: expected %d symptom ids, got %d", ErrInvalid, len(current), len(ids))
	}
	known := make(map[string]bool, len(current))
	for _, sym := range current {
		known[sym.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("%w: unknown or repeated symptom id %q", ErrInvalid, id)
		}
		delete(known, id)
	}

	if err := s.store.ReorderSymptoms(ctx, userID, ids); err != nil {
		return err
	}
	s.notify(userID, events.KindSymptoms)
	return nil
}

// Log records the severity of a symptom on a day, replacing any earlier value.
func (s *Service) Log(ctx context.Context, userID, symptomID string, date models.Date, severity string) (*models.SymptomEntry, error) {
	sev, err := models.ParseSeverity(strings.ToLower(strings.TrimSpace(severity)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalid)
	}

	entry := &models.SymptomEntry{UserID: userID, SymptomID: symptomID, Date: date, Severity: sev}
	if err := s.store.LogSymptom(ctx, entry); err != nil {
		return nil, err
	}
	s.notify(userID, events.KindSymptoms)
	return entry, nil
}

// Clear removes the severity logged for a symptom on a day.
func (s *Service) Clear(ctx context.Context, userID, symptomID string, date models.Date) error {
	if err := s.store.ClearSymptom(ctx, userID, symptomID, date); err != nil {
		return err
	}
	s.notify(userID, events.KindSymptoms)
	return nil
}

// SetNote stores the note for a day; a blank note removes it.
func (s *Service) SetNote(ctx context.Context, userID string, date models.Date, note string) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalid)
	}
	n := models.DailyNote{UserID: userID, Date: date, Note: strings.TrimSpace(note)}
	if err := s.store.SetDailyNote(ctx, n); err != nil {
		return err
	}
	s.notify(userID, events.KindNotes)
	return nil
}

func (s *Service) notify(userID string, kind events.Kind) {
	if s.hub != nil {
		s.hub.Notify(userID, kind)
	}
}
