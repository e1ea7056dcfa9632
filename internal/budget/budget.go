// Package budget implements the budget tracker's write paths on top of a
// storage.Store: validation, persistence and change notification.
package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/backup"
	"github.com/mmynk/pocketbook/internal/events"
	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
)

// ErrInvalid marks input rejected before any write.
var ErrInvalid = errors.New("invalid argument")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Service is the budget domain service.
type Service struct {
	store storage.Store
	hub   *events.Hub
	now   func() time.Time
}

// NewService creates a budget service. hub may be nil.
func NewService(store storage.Store, hub *events.Hub) *Service {
	return NewServiceWithClock(store, hub, time.Now)
}

// NewServiceWithClock is NewService with a custom clock. The clock decides
// the default entry date and the backup timestamp.
func NewServiceWithClock(store storage.Store, hub *events.Hub, now func() time.Time) *Service {
	return &Service{store: store, hub: hub, now: now}
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Today returns the service clock's current date.
func (s *Service) Today() models.Date {
	return models.DateOf(s.now())
}

// Snapshot is everything the statistics layer needs for one user.
type Snapshot struct {
	Categories []models.Category
	Entries    []models.Entry
}

// Category returns the category with id, or false.
func (s *Snapshot) Category(id string) (models.Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// CategoryByName finds a category by case-insensitive name.
func (s *Snapshot) CategoryByName(name string) (models.Category, bool) {
	for _, c := range s.Categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return models.Category{}, false
}

// Snapshot loads the user's categories and entries.
func (s *Service) Snapshot(ctx context.Context, userID string) (*Snapshot, error) {
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Categories: categories, Entries: entries}, nil
}

// CreateCategory adds a category at the end of the display order.
func (s *Service) CreateCategory(ctx context.Context, userID, name string, subcategories []string) (*models.Category, error) {
	name, err := requireName("category name", name)
	if err != nil {
		return nil, err
	}

	var subs []string
	seen := map[string]bool{models.GeneralSubcategory: true}
	for _, sub := range subcategories {
		sub, err := requireName("subcategory name", sub)
		if err != nil {
			return nil, err
		}
		if seen[sub] {
			return nil, fmt.Errorf("subcategory %q: %w", sub, storage.ErrAlreadyExists)
		}
		seen[sub] = true
		subs = append(subs, sub)
	}

	category := &models.Category{UserID: userID, Name: name, Subcategories: subs}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	s.notify(userID, events.KindCategories)
	return category, nil
}

// RenameCategory changes a category's name.
func (s *Service) RenameCategory(ctx context.Context, userID, categoryID, name string) error {
	name, err := requireName("category name", name)
	if err != nil {
		return err
	}
	if err := s.store.RenameCategory(ctx, userID, categoryID, name); err != nil {
		return err
	}
	s.notify(userID, events.KindCategories)
	return nil
}

// DeleteCategory removes a category and all of its entries.
func (s *Service) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if err := s.store.DeleteCategory(ctx, userID, categoryID); err != nil {
		return err
	}
	s.notify(userID, events.KindCategories)
	s.notify(userID, events.KindEntries)
	return nil
}

// ReorderCategories applies a new display order. ids must list every one of
// the user's categories exactly once.
func (s *Service) ReorderCategories(ctx context.Context, userID string, ids []string) error {
	current, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return err
	}
	if len(ids) != len(current) {
		return invalid("expected %d category ids, got %d", len(current), len(ids))
	}
	known := make(map[string]bool, len(current))
	for _, c := range current {
		known[c.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return invalid("unknown or repeated category id %q", id)
		}
		delete(known, id)
	}

	if err := s.store.ReorderCategories(ctx, userID, ids); err != nil {
		return err
	}
	s.notify(userID, events.KindCategories)
	return nil
}

// AddSubcategory appends a subcategory to a category.
func (s *Service) AddSubcategory(ctx context.Context, userID, categoryID, name string) error {
	name, err := requireName("subcategory name", name)
	if err != nil {
		return err
	}
	if err := s.store.AddSubcategory(ctx, userID, categoryID, name); err != nil {
		return err
	}
	s.notify(userID, events.KindCategories)
	return nil
}

// RenameSubcategory renames a subcategory on the category and its entries.
func (s *Service) RenameSubcategory(ctx context.Context, userID, categoryID, oldName, newName string) error {
	if oldName == models.GeneralSubcategory {
		return invalid("%q cannot be renamed", models.GeneralSubcategory)
	}
	newName, err := requireName("subcategory name", newName)
	if err != nil {
		return err
	}
	if newName == oldName {
		return nil
	}
	if err := s.store.RenameSubcategory(ctx, userID, categoryID, oldName, newName); err != nil {
		return err
	}
	s.notify(userID, events.KindCategories)
	s.notify(userID, events.KindEntries)
	return nil
}

// DeleteSubcategory removes a subcategory; its entries move to General.
func (s *Service) DeleteSubcategory(ctx context.Context, userID, categoryID, name string) error {
	if name == models.GeneralSubcategory {
		return invalid("%q cannot be deleted", models.GeneralSubcategory)
	}
	if err := s.store.DeleteSubcategory(ctx, userID, categoryID, name); err != nil {
		return err
	}
	s.notify(userID, events.KindCategories)
	s.notify(userID, events.KindEntries)
	return nil
}

// EntryInput carries the user-editable fields of an entry.
type EntryInput struct {
	CategoryID  string
	Subcategory string
	Amount      decimal.Decimal
	Note        string
	// Date defaults to today when zero.
	Date models.Date
}

// AddEntry records a new expense.
func (s *Service) AddEntry(ctx context.Context, userID string, in EntryInput) (*models.Entry, error) {
	if err := s.checkEntry(ctx, userID, &in); err != nil {
		return nil, err
	}

	entry := &models.Entry{
		UserID:      userID,
		CategoryID:  in.CategoryID,
		Subcategory: in.Subcategory,
		Amount:      in.Amount,
		Note:        in.Note,
		Date:        in.Date,
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	s.notify(userID, events.KindEntries)
	return entry, nil
}

// UpdateEntry replaces an entry's editable fields.
func (s *Service) UpdateEntry(ctx context.Context, userID, entryID string, in EntryInput) (*models.Entry, error) {
	entry, err := s.store.GetEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEntry(ctx, userID, &in); err != nil {
		return nil, err
	}

	entry.CategoryID = in.CategoryID
	entry.Subcategory = in.Subcategory
	entry.Amount = in.Amount
	entry.Note = in.Note
	entry.Date = in.Date
	if err := s.store.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}
	s.notify(userID, events.KindEntries)
	return entry, nil
}

// DeleteEntry removes an entry.
func (s *Service) DeleteEntry(ctx context.Context, userID, entryID string) error {
	if err := s.store.DeleteEntry(ctx, userID, entryID); err != nil {
		return err
	}
	s.notify(userID, events.KindEntries)
	return nil
}

// checkEntry validates in and fills defaults.
func (s *Service) checkEntry(ctx context.Context, userID string, in *EntryInput) error {
	if in.CategoryID == "" {
		return invalid("category is required")
	}
	if in.Amount.IsNegative() {
		return invalid("amount must not be negative")
	}
	in.Note = strings.TrimSpace(in.Note)
	in.Subcategory = strings.TrimSpace(in.Subcategory)
	if in.Subcategory == "" {
		in.Subcategory = models.GeneralSubcategory
	}
	if in.Date.IsZero() {
		in.Date = models.DateOf(s.now())
	}

	category, err := s.store.GetCategory(ctx, userID, in.CategoryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return invalid("category %q does not exist", in.CategoryID)
		}
		return err
	}
	if !category.HasSubcategory(in.Subcategory) {
		return invalid("category %q has no subcategory %q", category.Name, in.Subcategory)
	}
	return nil
}

// Export builds a backup of the user's budget.
func (s *Service) Export(ctx context.Context, userID string) (*backup.Envelope, error) {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return backup.New(snap.Categories, snap.Entries, s.now()), nil
}

// Import replaces the user's budget with env. See backup.Restore for the
// partial-failure behaviour; a change notification is sent even when the
// restore stopped part-way, since some data may have changed.
func (s *Service) Import(ctx context.Context, userID string, env *backup.Envelope, progress backup.Progress) (backup.Result, error) {
	res, err := backup.Restore(ctx, s.store, userID, env, progress)
	if err != nil {
		slog.Warn("Import finished with errors", "user_id", userID, "written", res.Written(), "failed", res.Failed, "error", err)
	}
	s.notify(userID, events.KindCategories)
	s.notify(userID, events.KindEntries)
	return res, err
}

func (s *Service) notify(userID string, kind events.Kind) {
	if s.hub != nil {
		s.hub.Notify(userID, kind)
	}
}

func requireName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("%s is required", field)
	}
	return name, nil
}
