package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/stats"
	"github.com/mmynk/pocketbook/pkg/api"
)

func dateString(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// toAPICategories converts categories in display order, with palette colours.
func toAPICategories(categories []models.Category) []*api.Category {
	ordered := stats.DisplayOrder(categories)
	out := make([]*api.Category, len(ordered))
	for i, c := range ordered {
		out[i] = toAPICategory(c, stats.CategoryColor(i))
	}
	return out
}

func toAPICategory(c models.Category, color string) *api.Category {
	subs := c.Subcategories
	if subs == nil {
		subs = []string{}
	}
	return &api.Category{
		Id:            c.ID,
		Name:          c.Name,
		Order:         c.Order,
		Color:         color,
		Subcategories: subs,
		CreatedAt:     c.CreatedAt,
	}
}

func toAPIEntry(e models.Entry) *api.Entry {
	return &api.Entry{
		Id:          e.ID,
		CategoryId:  e.CategoryID,
		Subcategory: e.Subcategory,
		Amount:      e.Amount,
		Note:        e.Note,
		Date:        dateString(e.Date),
		CreatedAt:   e.CreatedAt,
	}
}

func toAPIEntries(entries []models.Entry) []*api.Entry {
	out := make([]*api.Entry, len(entries))
	for i, e := range entries {
		out[i] = toAPIEntry(e)
	}
	return out
}

func toAPICategoryTotals(totals []stats.CategoryTotal) []*api.CategoryTotal {
	out := make([]*api.CategoryTotal, len(totals))
	for i, t := range totals {
		out[i] = &api.CategoryTotal{CategoryId: t.CategoryID, Name: t.Name, Color: t.Color, Total: t.Total}
	}
	return out
}

func toAPICalendar(cal stats.Calendar) *api.GetCalendarResponse {
	resp := &api.GetCalendarResponse{
		Label:    cal.Month.Label(),
		Weekdays: stats.Weekdays,
		Total:    cal.Total,
		Cells:    make([]*api.CalendarCell, len(cal.Cells)),
	}
	for i, c := range cal.Cells {
		resp.Cells[i] = &api.CalendarCell{
			Day:        c.Day,
			Date:       dateString(c.Date),
			Total:      c.Total,
			Dots:       c.Dots,
			HasEntries: c.HasEntries,
			Today:      c.Today,
			Selected:   c.Selected,
		}
	}
	if cal.Detail != nil {
		resp.Detail = toAPIDayDetail(cal.Detail)
	}
	return resp
}

func toAPIDayDetail(d *stats.DayDetail) *api.DayDetail {
	out := &api.DayDetail{
		Date:   d.Date.String(),
		Total:  d.Total,
		Groups: make([]*api.DayGroup, len(d.Groups)),
	}
	for i, g := range d.Groups {
		group := &api.DayGroup{
			CategoryId: g.CategoryID,
			Name:       g.Name,
			Color:      g.Color,
			Total:      g.Total,
			Lines:      make([]*api.DayLine, len(g.Lines)),
		}
		for j, l := range g.Lines {
			group.Lines[j] = &api.DayLine{EntryId: l.EntryID, Subcategory: l.Subcategory, Amount: l.Amount, Note: l.Note}
		}
		out.Groups[i] = group
	}
	return out
}

func toAPIBarRows(rows []stats.BarRow) []*api.BarRow {
	out := make([]*api.BarRow, len(rows))
	for i, r := range rows {
		row := &api.BarRow{
			Label:    r.Month.ShortLabel(),
			Year:     r.Month.Year,
			Month:    int(r.Month.Month),
			Total:    r.Total,
			Width:    r.Width,
			Segments: make([]*api.BarSegment, len(r.Segments)),
		}
		for j, s := range r.Segments {
			row.Segments[j] = &api.BarSegment{Name: s.Name, Color: s.Color, Total: s.Total, Width: s.Width}
		}
		out[i] = row
	}
	return out
}

func toAPIBreakdown(view stats.BreakdownView) *api.GetBreakdownResponse {
	resp := &api.GetBreakdownResponse{
		Total: view.Total,
		Items: make([]*api.BreakdownItem, len(view.Items)),
	}
	for i, item := range view.Items {
		resp.Items[i] = &api.BreakdownItem{Name: item.Name, Color: item.Color, Total: item.Total, Percent: item.Percent}
	}
	return resp
}

func decimals(values [12]decimal.Decimal) []decimal.Decimal {
	return values[:]
}

func toAPISymptom(s models.Symptom) *api.Symptom {
	return &api.Symptom{Id: s.ID, Name: s.Name, Order: s.Order, CreatedAt: s.CreatedAt}
}

func toAPISymptomEntry(e models.SymptomEntry) *api.SymptomEntry {
	return &api.SymptomEntry{Id: e.ID, SymptomId: e.SymptomID, Date: dateString(e.Date), Severity: string(e.Severity)}
}
