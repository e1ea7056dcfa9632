package stats

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/models"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// BarSegment is one coloured slice of a monthly bar.
type BarSegment struct {
	Name  string
	Color string
	Total decimal.Decimal
	// Width is the segment length as a percentage of the widest bar.
	Width float64
}

// BarRow is one month of the stacked bar chart.
type BarRow struct {
	Month    Month
	Total    decimal.Decimal
	Width    float64
	Segments []BarSegment
}

// BarChart builds one row per month of MonthRange over all entries, newest
// first, so a single category is charted against the full history.
//
// With an empty categoryID the segments are the categories in display order.
// Otherwise only that category's entries are charted and the segments are its
// subcategories; a category without subcategories yields a single segment in
// the category colour. Segments with a zero total are omitted, so months
// without entries become rows with no segments. An unknown categoryID gives nil.
func BarChart(categories []models.Category, entries []models.Entry, categoryID string) []BarRow {
	months := MonthRange(entries)
	var series func(month []models.Entry) []BarSegment

	if categoryID == "" {
		series = func(month []models.Entry) []BarSegment {
			var segs []BarSegment
			for _, t := range categoryTotals(categories, month) {
				segs = append(segs, BarSegment{Name: t.Name, Color: t.Color, Total: t.Total})
			}
			return segs
		}
	} else {
		ordered := DisplayOrder(categories)
		pos := -1
		for i, c := range ordered {
			if c.ID == categoryID {
				pos = i
				break
			}
		}
		if pos < 0 {
			return nil
		}
		category := ordered[pos]
		entries = EntriesForCategory(entries, categoryID)

		if len(category.Subcategories) == 0 {
			series = func(month []models.Entry) []BarSegment {
				return []BarSegment{{Name: category.Name, Color: CategoryColor(pos), Total: Sum(month)}}
			}
		} else {
			series = func(month []models.Entry) []BarSegment {
				var segs []BarSegment
				for _, t := range SubcategoryTotals(category, month) {
					segs = append(segs, BarSegment{Name: t.Name, Color: t.Color, Total: t.Total})
				}
				return segs
			}
		}
	}

	rows := make([]BarRow, 0, len(months))
	peak := one
	for _, m := range months {
		row := BarRow{Month: m, Total: decimal.Zero}
		for _, seg := range series(EntriesForMonth(entries, m.Year, m.Month)) {
			if !seg.Total.IsPositive() {
				continue
			}
			row.Total = row.Total.Add(seg.Total)
			row.Segments = append(row.Segments, seg)
		}
		if row.Total.GreaterThan(peak) {
			peak = row.Total
		}
		rows = append(rows, row)
	}

	for i := range rows {
		rows[i].Width = percentOf(rows[i].Total, peak)
		for j := range rows[i].Segments {
			rows[i].Segments[j].Width = percentOf(rows[i].Segments[j].Total, peak)
		}
	}
	return rows
}

// BreakdownItem is one labelled slice of a pie or legend.
type BreakdownItem struct {
	Name    string
	Color   string
	Total   decimal.Decimal
	Percent decimal.Decimal
}

// BreakdownView is a pie/legend with its grand total.
type BreakdownView struct {
	Total decimal.Decimal
	Items []BreakdownItem
}

// Breakdown drops zero items and fills in percentages of the grand total,
// rounded to one decimal place.
func Breakdown(items []BreakdownItem) BreakdownView {
	view := BreakdownView{Total: decimal.Zero}
	for _, item := range items {
		if !item.Total.IsPositive() {
			continue
		}
		view.Total = view.Total.Add(item.Total)
		view.Items = append(view.Items, item)
	}
	for i := range view.Items {
		view.Items[i].Percent = view.Items[i].Total.Div(view.Total).Mul(hundred).Round(1)
	}
	return view
}

// CategoryBreakdown is the breakdown of entries across categories.
func CategoryBreakdown(categories []models.Category, entries []models.Entry) BreakdownView {
	totals := categoryTotals(categories, entries)
	items := make([]BreakdownItem, 0, len(totals))
	for _, t := range totals {
		items = append(items, BreakdownItem{Name: t.Name, Color: t.Color, Total: t.Total})
	}
	return Breakdown(items)
}

// SubcategoryBreakdown is the breakdown of one category's entries across its
// subcategories.
func SubcategoryBreakdown(category models.Category, entries []models.Entry) BreakdownView {
	totals := SubcategoryTotals(category, entries)
	items := make([]BreakdownItem, 0, len(totals))
	for _, t := range totals {
		items = append(items, BreakdownItem{Name: t.Name, Color: t.Color, Total: t.Total})
	}
	return Breakdown(items)
}

func percentOf(v, of decimal.Decimal) float64 {
	f, _ := v.Div(of).Mul(hundred).Float64()
	return f
}
