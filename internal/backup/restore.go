package backup

import (
	"context"
	"fmt"

	"github.com/mmynk/pocketbook/internal/models"
)

// Writer is the subset of storage.Store that Restore needs.
type Writer interface {
	ClearBudget(ctx context.Context, userID string) error
	CreateCategory(ctx context.Context, category *models.Category) error
	CreateEntry(ctx context.Context, entry *models.Entry) error
}

// Progress receives the running number of records written out of total.
type Progress func(written, total int)

// Result summarises a restore.
type Result struct {
	Categories int
	Entries    int
	Failed     int
}

// Written is the number of records successfully stored.
func (r Result) Written() int {
	return r.Categories + r.Entries
}

// Restore replaces the user's budget with the envelope's contents.
//
// Existing data is cleared first. Categories get new IDs and entries are
// re-pointed at them; an entry whose subcategory its category does not list
// is filed under General. The restore is best effort: after a failed write it
// carries on with the remaining records, keeps the first error and does not
// undo earlier writes. Entries of a category that failed to restore are
// counted as failed.
func Restore(ctx context.Context, w Writer, userID string, env *Envelope, progress Progress) (Result, error) {
	var res Result
	total := len(env.Categories) + len(env.Entries)
	report := func() {
		if progress != nil {
			progress(res.Written(), total)
		}
	}

	if err := w.ClearBudget(ctx, userID); err != nil {
		return res, fmt.Errorf("failed to clear existing data: %w", err)
	}

	var firstErr error
	keep := func(err error) {
		res.Failed++
		if firstErr == nil {
			firstErr = err
		}
	}

	restored := make(map[string]*models.Category, len(env.Categories))
	for _, c := range env.sortedCategories() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		category := &models.Category{
			UserID:        userID,
			Name:          c.Name,
			Subcategories: c.Subcategories,
			CreatedAt:     unixSeconds(c.CreatedAt),
		}
		if err := w.CreateCategory(ctx, category); err != nil {
			keep(fmt.Errorf("category %q: %w", c.Name, err))
			continue
		}
		restored[c.ID] = category
		res.Categories++
		report()
	}

	for _, e := range env.Entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		category, ok := restored[e.CategoryID]
		if !ok {
			keep(fmt.Errorf("entry %s: category %s was not restored", e.ID, e.CategoryID))
			continue
		}
		sub := e.Subcategory
		if !category.HasSubcategory(sub) {
			sub = models.GeneralSubcategory
		}
		entry := &models.Entry{
			UserID:      userID,
			CategoryID:  category.ID,
			Subcategory: sub,
			Amount:      e.Amount,
			Note:        e.Note,
			Date:        e.Date,
			CreatedAt:   unixSeconds(e.CreatedAt),
		}
		if err := w.CreateEntry(ctx, entry); err != nil {
			keep(fmt.Errorf("entry %s: %w", e.ID, err))
			continue
		}
		res.Entries++
		report()
	}

	return res, firstErr
}
