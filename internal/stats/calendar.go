package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/models"
)

// MaxDots caps the category dots drawn in one calendar cell.
const MaxDots = 4

// Weekdays are the column headings of the calendar grid.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// CalendarCell is one square of the month grid. Padding cells have Day == 0.
type CalendarCell struct {
	Day        int
	Date       models.Date
	Total      decimal.Decimal
	Dots       []string
	HasEntries bool
	Today      bool
	Selected   bool
}

// IsPadding reports whether the cell lies outside the month.
func (c CalendarCell) IsPadding() bool {
	return c.Day == 0
}

// Calendar is the month grid view-model.
type Calendar struct {
	Month Month
	Total decimal.Decimal
	Cells []CalendarCell

	// Detail is set when the selected day has entries.
	Detail *DayDetail
}

// Weeks splits the cells into rows of seven.
func (c Calendar) Weeks() [][]CalendarCell {
	weeks := make([][]CalendarCell, 0, len(c.Cells)/7)
	for i := 0; i < len(c.Cells); i += 7 {
		weeks = append(weeks, c.Cells[i:i+7])
	}
	return weeks
}

// DayLine is a single entry in the day detail.
type DayLine struct {
	EntryID     string
	Subcategory string
	Amount      decimal.Decimal
	Note        string
}

// DayGroup is the entries of one category on a given day.
type DayGroup struct {
	CategoryID string
	Name       string
	Color      string
	Total      decimal.Decimal
	Lines      []DayLine
}

// DayDetail lists a day's entries grouped by category.
type DayDetail struct {
	Date   models.Date
	Total  decimal.Decimal
	Groups []DayGroup
}

// BuildCalendar lays out the month as a Sunday-first grid padded to whole
// weeks. selected is a day of the month or 0; a selection on a day without
// entries is ignored. today marks the matching cell when it falls in the month.
func BuildCalendar(categories []models.Category, entries []models.Entry, year int, month time.Month, selected int, today models.Date) Calendar {
	m := Month{Year: year, Month: month}
	monthEntries := EntriesForMonth(entries, year, month)
	ordered := DisplayOrder(categories)

	byDay := make(map[int][]models.Entry)
	for _, e := range monthEntries {
		byDay[e.Date.Day] = append(byDay[e.Date.Day], e)
	}

	cal := Calendar{Month: m, Total: Sum(monthEntries)}

	lead := int(models.NewDate(year, month, 1).Weekday())
	for range lead {
		cal.Cells = append(cal.Cells, CalendarCell{Total: decimal.Zero})
	}

	for day := 1; day <= m.Days(); day++ {
		date := models.NewDate(year, month, day)
		dayEntries := byDay[day]
		cell := CalendarCell{
			Day:        day,
			Date:       date,
			Total:      Sum(dayEntries),
			Dots:       dots(ordered, dayEntries),
			HasEntries: len(dayEntries) > 0,
			Today:      date == today,
		}
		if cell.HasEntries && day == selected {
			cell.Selected = true
			cal.Detail = BuildDayDetail(ordered, dayEntries, date)
		}
		cal.Cells = append(cal.Cells, cell)
	}

	for len(cal.Cells)%7 != 0 {
		cal.Cells = append(cal.Cells, CalendarCell{Total: decimal.Zero})
	}
	return cal
}

// BuildDayDetail groups the day's entries by category in display order.
// Entries of unknown categories are left out of the groups but still count
// towards the day total. It returns nil when the day has no entries.
func BuildDayDetail(categories []models.Category, entries []models.Entry, day models.Date) *DayDetail {
	dayEntries := EntriesForDay(entries, day)
	if len(dayEntries) == 0 {
		return nil
	}

	detail := &DayDetail{Date: day, Total: Sum(dayEntries)}
	for i, c := range DisplayOrder(categories) {
		group := DayGroup{CategoryID: c.ID, Name: c.Name, Color: CategoryColor(i), Total: decimal.Zero}
		for _, e := range dayEntries {
			if e.CategoryID != c.ID {
				continue
			}
			group.Total = group.Total.Add(e.Amount)
			group.Lines = append(group.Lines, DayLine{
				EntryID:     e.ID,
				Subcategory: e.Subcategory,
				Amount:      e.Amount,
				Note:        e.Note,
			})
		}
		if len(group.Lines) > 0 {
			detail.Groups = append(detail.Groups, group)
		}
	}
	return detail
}

func dots(ordered []models.Category, entries []models.Entry) []string {
	if len(entries) == 0 {
		return nil
	}
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.CategoryID] = true
	}

	var out []string
	for i, c := range ordered {
		if !present[c.ID] {
			continue
		}
		out = append(out, CategoryColor(i))
		if len(out) == MaxDots {
			break
		}
	}
	return out
}
