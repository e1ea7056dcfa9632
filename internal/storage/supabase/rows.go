package supabase

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/models"
)

type categoryRow struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	Name          string   `json:"name"`
	Position      int      `json:"position"`
	Subcategories []string `json:"subcategories"`
	CreatedAt     int64    `json:"created_at"`
}

func (r categoryRow) model() models.Category {
	return models.Category{
		ID:            r.ID,
		UserID:        r.UserID,
		Name:          r.Name,
		Order:         r.Position,
		Subcategories: r.Subcategories,
		CreatedAt:     r.CreatedAt,
	}
}

type entryRow struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CategoryID  string          `json:"category_id"`
	Subcategory string          `json:"subcategory"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note"`
	Date        models.Date     `json:"date"`
	CreatedAt   int64           `json:"created_at"`
}

func newEntryRow(e *models.Entry) entryRow {
	return entryRow{
		ID:          e.ID,
		UserID:      e.UserID,
		CategoryID:  e.CategoryID,
		Subcategory: e.Subcategory,
		Amount:      e.Amount,
		Note:        e.Note,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}

func (r entryRow) model() models.Entry {
	return models.Entry{
		ID:          r.ID,
		UserID:      r.UserID,
		CategoryID:  r.CategoryID,
		Subcategory: r.Subcategory,
		Amount:      r.Amount,
		Note:        r.Note,
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
	}
}

type symptomRow struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
	CreatedAt int64  `json:"created_at"`
}

// symptomEntryRow omits id and created_at on write so upserts keep the
// values of the existing row.
type symptomEntryRow struct {
	ID        string      `json:"id,omitempty"`
	UserID    string      `json:"user_id"`
	SymptomID string      `json:"symptom_id"`
	Date      models.Date `json:"date"`
	Severity  string      `json:"severity"`
	CreatedAt int64       `json:"created_at,omitempty"`
}

type dailyNoteRow struct {
	UserID string      `json:"user_id"`
	Date   models.Date `json:"date"`
	Note   string      `json:"note"`
}
