package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Category struct {
	Id            string   `json:"id"`
	Name          string   `json:"name"`
	Order         int      `json:"order"`
	Color         string   `json:"color"`
	Subcategories []string `json:"subcategories"`
	CreatedAt     int64    `json:"createdAt"`
}

type Entry struct {
	Id          string          `json:"id"`
	CategoryId  string          `json:"categoryId"`
	Subcategory string          `json:"subcategory"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note,omitempty"`
	Date        string          `json:"date"`
	CreatedAt   int64           `json:"createdAt"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
}

type CreateCategoryRequest struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories,omitempty"`
}

type CreateCategoryResponse struct {
	Category *Category `json:"category"`
}

type RenameCategoryRequest struct {
	CategoryId string `json:"categoryId"`
	Name       string `json:"name"`
}

type DeleteCategoryRequest struct {
	CategoryId string `json:"categoryId"`
}

// ReorderCategoriesRequest carries every category ID in the new display order.
type ReorderCategoriesRequest struct {
	CategoryIds []string `json:"categoryIds"`
}

type AddSubcategoryRequest struct {
	CategoryId string `json:"categoryId"`
	Name       string `json:"name"`
}

type RenameSubcategoryRequest struct {
	CategoryId string `json:"categoryId"`
	OldName    string `json:"oldName"`
	NewName    string `json:"newName"`
}

type DeleteSubcategoryRequest struct {
	CategoryId string `json:"categoryId"`
	Name       string `json:"name"`
}

// AddEntryRequest creates an entry. An empty subcategory means "General" and
// an empty date means today.
type AddEntryRequest struct {
	CategoryId  string          `json:"categoryId"`
	Subcategory string          `json:"subcategory,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note,omitempty"`
	Date        string          `json:"date,omitempty"`
}

type UpdateEntryRequest struct {
	EntryId     string          `json:"entryId"`
	CategoryId  string          `json:"categoryId"`
	Subcategory string          `json:"subcategory,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note,omitempty"`
	Date        string          `json:"date,omitempty"`
}

type EntryResponse struct {
	Entry *Entry `json:"entry"`
}

type DeleteEntryRequest struct {
	EntryId string `json:"entryId"`
}

// ListEntriesRequest filters entries. Year 0 lists every year, Month 0 the
// whole year and an empty CategoryId every category.
type ListEntriesRequest struct {
	Year       int    `json:"year,omitempty"`
	Month      int    `json:"month,omitempty"`
	CategoryId string `json:"categoryId,omitempty"`
}

type ListEntriesResponse struct {
	Entries []*Entry        `json:"entries"`
	Total   decimal.Decimal `json:"total"`
}

type CategoryTotal struct {
	CategoryId string          `json:"categoryId"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Total      decimal.Decimal `json:"total"`
}

type GetSummaryRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type GetSummaryResponse struct {
	Total      decimal.Decimal   `json:"total"`
	Categories []*CategoryTotal  `json:"categories"`
	Yearly     []decimal.Decimal `json:"yearly"`
}

type GetCalendarRequest struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	SelectedDay int `json:"selectedDay,omitempty"`
}

type CalendarCell struct {
	Day        int             `json:"day"`
	Date       string          `json:"date,omitempty"`
	Total      decimal.Decimal `json:"total"`
	Dots       []string        `json:"dots,omitempty"`
	HasEntries bool            `json:"hasEntries,omitempty"`
	Today      bool            `json:"today,omitempty"`
	Selected   bool            `json:"selected,omitempty"`
}

type DayLine struct {
	EntryId     string          `json:"entryId"`
	Subcategory string          `json:"subcategory"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note,omitempty"`
}

type DayGroup struct {
	CategoryId string          `json:"categoryId"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Total      decimal.Decimal `json:"total"`
	Lines      []*DayLine      `json:"lines"`
}

type DayDetail struct {
	Date   string          `json:"date"`
	Total  decimal.Decimal `json:"total"`
	Groups []*DayGroup     `json:"groups"`
}

type GetCalendarResponse struct {
	Label    string          `json:"label"`
	Weekdays []string        `json:"weekdays"`
	Total    decimal.Decimal `json:"total"`
	Cells    []*CalendarCell `json:"cells"`
	Detail   *DayDetail      `json:"detail,omitempty"`
}

// GetBarChartRequest charts every category, or the subcategories of
// CategoryId when set.
type GetBarChartRequest struct {
	CategoryId string `json:"categoryId,omitempty"`
}

type BarSegment struct {
	Name  string          `json:"name"`
	Color string          `json:"color"`
	Total decimal.Decimal `json:"total"`
	Width float64         `json:"width"`
}

type BarRow struct {
	Label    string          `json:"label"`
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Total    decimal.Decimal `json:"total"`
	Width    float64         `json:"width"`
	Segments []*BarSegment   `json:"segments"`
}

type GetBarChartResponse struct {
	Rows []*BarRow `json:"rows"`
}

// GetBreakdownRequest selects the pie data. An empty CategoryId splits
// across categories, otherwise across that category's subcategories.
// Year and Month narrow the entries the same way ListEntriesRequest does.
type GetBreakdownRequest struct {
	Year       int    `json:"year,omitempty"`
	Month      int    `json:"month,omitempty"`
	CategoryId string `json:"categoryId,omitempty"`
}

type BreakdownItem struct {
	Name    string          `json:"name"`
	Color   string          `json:"color"`
	Total   decimal.Decimal `json:"total"`
	Percent decimal.Decimal `json:"percent"`
}

type GetBreakdownResponse struct {
	Total decimal.Decimal  `json:"total"`
	Items []*BreakdownItem `json:"items"`
}

type ExportBackupRequest struct{}

type ExportBackupResponse struct {
	FileName string          `json:"fileName"`
	Backup   json.RawMessage `json:"backup"`
}

type ImportBackupRequest struct {
	Backup json.RawMessage `json:"backup"`
}

// ImportBackupResponse reports what was written. Error holds the first
// failure of a partial import.
type ImportBackupResponse struct {
	Categories int    `json:"categories"`
	Entries    int    `json:"entries"`
	Failed     int    `json:"failed"`
	Error      string `json:"error,omitempty"`
}
