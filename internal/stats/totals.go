package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/models"
)

// CategoryTotal is the amount spent in one category over a period.
type CategoryTotal struct {
	CategoryID string
	Name       string
	Color      string
	Total      decimal.Decimal
}

// SubcategoryTotal is the amount spent in one subcategory of a category.
type SubcategoryTotal struct {
	Name  string
	Color string
	Total decimal.Decimal
}

// MonthlyTotal sums every entry dated inside the month.
func MonthlyTotal(entries []models.Entry, year int, month time.Month) decimal.Decimal {
	return Sum(EntriesForMonth(entries, year, month))
}

// CategoryTotals returns one total per configured category for the month,
// keyed by category ID. Categories without entries are present with a zero
// total so callers can render a complete legend. Entries pointing at an
// unknown category contribute nothing.
func CategoryTotals(categories []models.Category, entries []models.Entry, year int, month time.Month) map[string]CategoryTotal {
	ordered := OrderedCategoryTotals(categories, entries, year, month)
	totals := make(map[string]CategoryTotal, len(ordered))
	for _, t := range ordered {
		totals[t.CategoryID] = t
	}
	return totals
}

// OrderedCategoryTotals is CategoryTotals as a slice in category display order.
func OrderedCategoryTotals(categories []models.Category, entries []models.Entry, year int, month time.Month) []CategoryTotal {
	return categoryTotals(categories, EntriesForMonth(entries, year, month))
}

// AllTimeCategoryTotals totals every entry per category in display order.
func AllTimeCategoryTotals(categories []models.Category, entries []models.Entry) []CategoryTotal {
	return categoryTotals(categories, entries)
}

func categoryTotals(categories []models.Category, entries []models.Entry) []CategoryTotal {
	ordered := DisplayOrder(categories)
	totals := make([]CategoryTotal, len(ordered))
	index := make(map[string]int, len(ordered))
	for i, c := range ordered {
		totals[i] = CategoryTotal{
			CategoryID: c.ID,
			Name:       c.Name,
			Color:      CategoryColor(i),
			Total:      decimal.Zero,
		}
		index[c.ID] = i
	}

	for _, e := range entries {
		i, ok := index[e.CategoryID]
		if !ok {
			continue
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
	}
	return totals
}

// YearlyTotals sums the year's entries by month; index 0 is January.
func YearlyTotals(entries []models.Entry, year int) [12]decimal.Decimal {
	var totals [12]decimal.Decimal
	for i := range totals {
		totals[i] = decimal.Zero
	}
	for _, e := range entries {
		if e.Date.Year != year {
			continue
		}
		m := int(e.Date.Month) - 1
		totals[m] = totals[m].Add(e.Amount)
	}
	return totals
}

// SubcategoryTotals totals the category's entries per subcategory, following
// the fixed ["General", ...subcategories] order. Entries whose subcategory is
// no longer listed are counted under "General". Entries of other categories
// are ignored, so callers may pass an unfiltered slice.
func SubcategoryTotals(category models.Category, entries []models.Entry) []SubcategoryTotal {
	names := category.SubcategoryNames()
	totals := make([]SubcategoryTotal, len(names))
	index := make(map[string]int, len(names))
	for i, name := range names {
		totals[i] = SubcategoryTotal{Name: name, Color: SubcategoryColor(i), Total: decimal.Zero}
		index[name] = i
	}

	for _, e := range entries {
		if e.CategoryID != category.ID {
			continue
		}
		i, ok := index[e.Subcategory]
		if !ok {
			i = 0
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
	}
	return totals
}
