package stats

import (
	"cmp"
	"fmt"
	"time"

	"github.com/mmynk/pocketbook/internal/models"
)

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d models.Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// Next returns the following month.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Compare orders months chronologically.
func (m Month) Compare(o Month) int {
	if c := cmp.Compare(m.Year, o.Year); c != 0 {
		return c
	}
	return cmp.Compare(m.Month, o.Month)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Label is the human form, e.g. "March 2024".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// ShortLabel is the axis form, e.g. "Mar 24".
func (m Month) ShortLabel() string {
	return fmt.Sprintf("%s %02d", m.Month.String()[:3], m.Year%100)
}

// MonthRange lists every month from the newest entry back to the oldest,
// inclusive. Months without entries are included. Empty input gives nil.
func MonthRange(entries []models.Entry) []Month {
	if len(entries) == 0 {
		return nil
	}

	oldest, newest := entries[0].Date, entries[0].Date
	for _, e := range entries[1:] {
		if e.Date.Before(oldest) {
			oldest = e.Date
		}
		if newest.Before(e.Date) {
			newest = e.Date
		}
	}

	start := MonthOf(oldest)
	var months []Month
	for m := MonthOf(newest); m.Compare(start) >= 0; m = m.Prev() {
		months = append(months, m)
	}
	return months
}
