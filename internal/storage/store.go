// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/pocketbook/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist for the user.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a write would duplicate a unique name.
	ErrAlreadyExists = errors.New("already exists")
)

// Store defines the interface for budget and diary storage.
// Every method is scoped to a single user; records of other users are
// invisible and report ErrNotFound.
//
// This abstraction allows swapping storage backends (SQLite, MongoDB,
// Supabase) without changing the service layer.
type Store interface {
	CategoryStore
	EntryStore
	SymptomStore
	HealthStore

	// ClearBudget deletes every category and entry of the user.
	ClearBudget(ctx context.Context, userID string) error

	// Close releases any resources held by the store.
	Close() error
}

// CategoryStore holds categories and their subcategory lists.
type CategoryStore interface {
	// CreateCategory persists a new category at the end of the display order.
	// The ID, Order and CreatedAt fields are populated by the store.
	CreateCategory(ctx context.Context, category *models.Category) error

	// GetCategory retrieves a category by ID.
	GetCategory(ctx context.Context, userID, categoryID string) (*models.Category, error)

	// ListCategories returns the user's categories in display order.
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)

	// RenameCategory changes a category's name.
	RenameCategory(ctx context.Context, userID, categoryID, name string) error

	// DeleteCategory removes a category together with its entries and
	// renumbers the remaining categories 0..n-1.
	DeleteCategory(ctx context.Context, userID, categoryID string) error

	// ReorderCategories sets Order to each ID's index in ids.
	ReorderCategories(ctx context.Context, userID string, ids []string) error

	// AddSubcategory appends name to the category's subcategory list.
	AddSubcategory(ctx context.Context, userID, categoryID, name string) error

	// RenameSubcategory renames a subcategory and every entry that carries it.
	RenameSubcategory(ctx context.Context, userID, categoryID, oldName, newName string) error

	// DeleteSubcategory removes a subcategory and moves its entries to "General".
	DeleteSubcategory(ctx context.Context, userID, categoryID, name string) error
}

// EntryStore holds spending entries.
type EntryStore interface {
	// CreateEntry persists a new entry. ID and CreatedAt are populated by the store.
	CreateEntry(ctx context.Context, entry *models.Entry) error

	// GetEntry retrieves an entry by ID.
	GetEntry(ctx context.Context, userID, entryID string) (*models.Entry, error)

	// UpdateEntry overwrites the mutable fields of an existing entry.
	UpdateEntry(ctx context.Context, entry *models.Entry) error

	// DeleteEntry removes an entry.
	DeleteEntry(ctx context.Context, userID, entryID string) error

	// ListEntries returns all of the user's entries, newest first.
	ListEntries(ctx context.Context, userID string) ([]models.Entry, error)
}

// SymptomStore holds the symptom diary.
type SymptomStore interface {
	CreateSymptom(ctx context.Context, symptom *models.Symptom) error
	ListSymptoms(ctx context.Context, userID string) ([]models.Symptom, error)
	RenameSymptom(ctx context.Context, userID, symptomID, name string) error

	// DeleteSymptom removes a symptom with its log and renumbers the rest.
	DeleteSymptom(ctx context.Context, userID, symptomID string) error
	ReorderSymptoms(ctx context.Context, userID string, ids []string) error

	// LogSymptom records a severity, replacing any entry for the same
	// symptom and date.
	LogSymptom(ctx context.Context, entry *models.SymptomEntry) error

	// ClearSymptom removes the entry for a symptom and date, if any.
	ClearSymptom(ctx context.Context, userID, symptomID string, date models.Date) error
	ListSymptomEntries(ctx context.Context, userID string) ([]models.SymptomEntry, error)

	// SetDailyNote stores the note for a day. An empty note deletes it.
	SetDailyNote(ctx context.Context, note models.DailyNote) error
	ListDailyNotes(ctx context.Context, userID string) ([]models.DailyNote, error)
}

// HealthStore holds the health record document.
type HealthStore interface {
	// GetHealthRecord returns the user's record, or an empty one when none
	// has been saved.
	GetHealthRecord(ctx context.Context, userID string) (*models.HealthRecord, error)

	// SaveHealthRecord replaces the user's record and sets UpdatedAt.
	SaveHealthRecord(ctx context.Context, record *models.HealthRecord) error
}
