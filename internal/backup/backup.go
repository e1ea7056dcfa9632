// Package backup reads and writes the versioned JSON backup of a user's
// budget and restores it into a store.
package backup

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/models"
)

// Version is the only envelope version this package reads and writes.
const Version = 1

// ErrInvalid is returned by Decode for files that cannot be imported.
var ErrInvalid = errors.New("invalid backup")

// Envelope is the top-level backup document.
type Envelope struct {
	Version    int        `json:"version"`
	ExportedAt time.Time  `json:"exportedAt"`
	Categories []Category `json:"categories"`
	Entries    []Entry    `json:"entries"`
}

// Category is a category record in the backup file.
type Category struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Order         int        `json:"order"`
	Subcategories []string   `json:"subcategories"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// Entry is an entry record in the backup file. Amount is written as a
// string; numbers are accepted on read.
type Entry struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"categoryId"`
	Subcategory string          `json:"subcategory"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note"`
	Date        models.Date     `json:"date"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
}

// New builds an envelope from a user's data.
func New(categories []models.Category, entries []models.Entry, exportedAt time.Time) *Envelope {
	env := &Envelope{
		Version:    Version,
		ExportedAt: exportedAt.UTC(),
		Categories: make([]Category, 0, len(categories)),
		Entries:    make([]Entry, 0, len(entries)),
	}
	for _, c := range categories {
		subs := c.Subcategories
		if subs == nil {
			subs = []string{}
		}
		env.Categories = append(env.Categories, Category{
			ID:            c.ID,
			Name:          c.Name,
			Order:         c.Order,
			Subcategories: subs,
			CreatedAt:     unixTime(c.CreatedAt),
		})
	}
	for _, e := range entries {
		env.Entries = append(env.Entries, Entry{
			ID:          e.ID,
			CategoryID:  e.CategoryID,
			Subcategory: e.Subcategory,
			Amount:      e.Amount,
			Note:        e.Note,
			Date:        e.Date,
			CreatedAt:   unixTime(e.CreatedAt),
		})
	}
	return env
}

// Encode writes env as indented JSON.
func Encode(w io.Writer, env *Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// Decode parses and validates a backup. Nothing is written anywhere, so a
// rejected file leaves no partial state behind.
func Decode(r io.Reader) (*Envelope, error) {
	var raw struct {
		Version    int         `json:"version"`
		ExportedAt time.Time   `json:"exportedAt"`
		Categories *[]Category `json:"categories"`
		Entries    *[]Entry    `json:"entries"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if raw.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalid, raw.Version)
	}
	if raw.Categories == nil || raw.Entries == nil {
		return nil, fmt.Errorf("%w: categories and entries are required", ErrInvalid)
	}

	env := &Envelope{
		Version:    raw.Version,
		ExportedAt: raw.ExportedAt,
		Categories: *raw.Categories,
		Entries:    *raw.Entries,
	}
	if err := validate(env); err != nil {
		return nil, err
	}
	return env, nil
}

func validate(env *Envelope) error {
	ids := make(map[string]bool, len(env.Categories))
	for i, c := range env.Categories {
		if c.ID == "" {
			return fmt.Errorf("%w: category %d has no id", ErrInvalid, i)
		}
		if ids[c.ID] {
			return fmt.Errorf("%w: duplicate category id %q", ErrInvalid, c.ID)
		}
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: category %q has no name", ErrInvalid, c.ID)
		}
		seen := map[string]bool{models.GeneralSubcategory: true}
		for _, sub := range c.Subcategories {
			name := strings.TrimSpace(sub)
			if name == "" {
				return fmt.Errorf("%w: category %q has a blank subcategory", ErrInvalid, c.ID)
			}
			if seen[name] {
				return fmt.Errorf("%w: category %q lists subcategory %q twice or as %q", ErrInvalid, c.ID, name, models.GeneralSubcategory)
			}
			seen[name] = true
		}
		ids[c.ID] = true
	}

	for i, e := range env.Entries {
		if !ids[e.CategoryID] {
			return fmt.Errorf("%w: entry %d refers to unknown category %q", ErrInvalid, i, e.CategoryID)
		}
		if e.Amount.IsNegative() {
			return fmt.Errorf("%w: entry %d has negative amount", ErrInvalid, i)
		}
		if e.Date.IsZero() {
			return fmt.Errorf("%w: entry %d has no date", ErrInvalid, i)
		}
	}
	return nil
}

// sortedCategories returns the categories in their file display order.
func (env *Envelope) sortedCategories() []Category {
	out := slices.Clone(env.Categories)
	slices.SortStableFunc(out, func(a, b Category) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return out
}

func unixTime(sec int64) *time.Time {
	if sec == 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}

func unixSeconds(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()
}
