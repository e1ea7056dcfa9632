// Package stats derives totals, chart rows and calendar view-models from
// already-loaded categories and entries.
//
// Every function is pure: nothing is cached between calls and inputs are
// never modified. Callers recompute on every render.
package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/models"
)

// EntriesForMonth returns the entries dated inside the given month, newest first.
func EntriesForMonth(entries []models.Entry, year int, month time.Month) []models.Entry {
	var out []models.Entry
	for _, e := range entries {
		if e.Date.Year == year && e.Date.Month == month {
			out = append(out, e)
		}
	}
	sortNewestFirst(out)
	return out
}

// EntriesForYear returns the entries dated inside the given year, newest first.
func EntriesForYear(entries []models.Entry, year int) []models.Entry {
	var out []models.Entry
	for _, e := range entries {
		if e.Date.Year == year {
			out = append(out, e)
		}
	}
	sortNewestFirst(out)
	return out
}

// EntriesForCategory returns the entries of one category, newest first.
func EntriesForCategory(entries []models.Entry, categoryID string) []models.Entry {
	var out []models.Entry
	for _, e := range entries {
		if e.CategoryID == categoryID {
			out = append(out, e)
		}
	}
	sortNewestFirst(out)
	return out
}

// EntriesForDay returns the entries dated on day in their original order.
func EntriesForDay(entries []models.Entry, day models.Date) []models.Entry {
	var out []models.Entry
	for _, e := range entries {
		if e.Date == day {
			out = append(out, e)
		}
	}
	return out
}

// DisplayOrder returns a copy of categories sorted by their Order field.
// Ties keep their input order.
func DisplayOrder(categories []models.Category) []models.Category {
	out := slices.Clone(categories)
	slices.SortStableFunc(out, func(a, b models.Category) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return out
}

// Sum adds up the amounts of entries.
func Sum(entries []models.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

func sortNewestFirst(entries []models.Entry) {
	slices.SortStableFunc(entries, func(a, b models.Entry) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
}

// NewestFirst returns a copy of entries sorted by date, newest first.
// Entries on the same day are ordered by creation time, newest first.
func NewestFirst(entries []models.Entry) []models.Entry {
	out := slices.Clone(entries)
	sortNewestFirst(out)
	return out
}
