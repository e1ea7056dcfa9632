// Package health keeps the user's medication, diagnosis, provider and
// explainer lists and builds the printout handed to a care provider.
package health

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/pocketbook/internal/events"
	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
)

// ErrInvalid marks input rejected before any write.
var ErrInvalid = errors.New("invalid argument")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Service is the health record domain service.
type Service struct {
	store storage.Store
	hub   *events.Hub
	now   func() time.Time
}

// NewService creates a health record service. hub may be nil; a nil clock
// means time.Now.
func NewService(store storage.Store, hub *events.Hub, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, hub: hub, now: now}
}

// Record loads the user's health record.
func (s *Service) Record(ctx context.Context, userID string) (*models.HealthRecord, error) {
	return s.store.GetHealthRecord(ctx, userID)
}

// Save replaces the user's health record. Names are trimmed and required,
// missing IDs are generated and IDs must be unique within each list.
func (s *Service) Save(ctx context.Context, userID string, record *models.HealthRecord) error {
	if err := normalize(record); err != nil {
		return err
	}
	record.UserID = userID
	if err := s.store.SaveHealthRecord(ctx, record); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.Notify(userID, events.KindHealth)
	}
	return nil
}

// Printout builds the printout for one provider.
func (s *Service) Printout(ctx context.Context, userID, providerID string, opts PrintOptions) (*Printout, error) {
	record, err := s.store.GetHealthRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	provider, ok := record.Provider(providerID)
	if !ok {
		return nil, fmt.Errorf("provider %q: %w", providerID, storage.ErrNotFound)
	}
	return BuildPrintout(record, provider, opts, models.DateOf(s.now()))
}

func normalize(r *models.HealthRecord) error {
	ids := idSet{}
	for i := range r.Medications {
		m := &r.Medications[i]
		if err := ids.name("medication", &m.ID, &m.Name); err != nil {
			return err
		}
	}
	for i := range r.Diagnoses {
		d := &r.Diagnoses[i]
		if err := ids.name("diagnosis", &d.ID, &d.Name); err != nil {
			return err
		}
	}
	for i := range r.Providers {
		p := &r.Providers[i]
		if err := ids.name("provider", &p.ID, &p.Name); err != nil {
			return err
		}
	}
	for i := range r.Explainers {
		e := &r.Explainers[i]
		if err := ids.name("explainer", &e.ID, &e.Title); err != nil {
			return err
		}
	}
	return nil
}

// idSet tracks IDs per kind.
type idSet map[string]map[string]bool

func (s idSet) name(kind string, id, name *string) error {
	*name = strings.TrimSpace(*name)
	if *name == "" {
		return invalid("%s name is required", kind)
	}
	*id = strings.TrimSpace(*id)
	if *id == "" {
		*id = uuid.New().String()
	}
	if s[kind] == nil {
		s[kind] = map[string]bool{}
	}
	if s[kind][*id] {
		return invalid("duplicate %s id %q", kind, *id)
	}
	s[kind][*id] = true
	return nil
}
