package mongodb

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketbook/internal/models"
)

type categoryDoc struct {
	ID            string   `bson:"_id"`
	UserID        string   `bson:"user_id"`
	Name          string   `bson:"name"`
	Position      int      `bson:"position"`
	Subcategories []string `bson:"subcategories"`
	CreatedAt     int64    `bson:"created_at"`
}

func (d categoryDoc) model() models.Category {
	return models.Category{
		ID:            d.ID,
		UserID:        d.UserID,
		Name:          d.Name,
		Order:         d.Position,
		Subcategories: d.Subcategories,
		CreatedAt:     d.CreatedAt,
	}
}

// entryDoc keeps amount and date as strings so values survive exactly.
type entryDoc struct {
	ID          string `bson:"_id"`
	UserID      string `bson:"user_id"`
	CategoryID  string `bson:"category_id"`
	Subcategory string `bson:"subcategory"`
	Amount      string `bson:"amount"`
	Note        string `bson:"note"`
	Date        string `bson:"date"`
	CreatedAt   int64  `bson:"created_at"`
}

func newEntryDoc(e *models.Entry) entryDoc {
	return entryDoc{
		ID:          e.ID,
		UserID:      e.UserID,
		CategoryID:  e.CategoryID,
		Subcategory: e.Subcategory,
		Amount:      e.Amount.String(),
		Note:        e.Note,
		Date:        e.Date.String(),
		CreatedAt:   e.CreatedAt,
	}
}

func (d entryDoc) model() (models.Entry, error) {
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return models.Entry{}, fmt.Errorf("entry %s has invalid amount: %w", d.ID, err)
	}
	date, err := models.ParseDate(d.Date)
	if err != nil {
		return models.Entry{}, fmt.Errorf("entry %s: %w", d.ID, err)
	}
	return models.Entry{
		ID:          d.ID,
		UserID:      d.UserID,
		CategoryID:  d.CategoryID,
		Subcategory: d.Subcategory,
		Amount:      amount,
		Note:        d.Note,
		Date:        date,
		CreatedAt:   d.CreatedAt,
	}, nil
}

type symptomDoc struct {
	ID        string `bson:"_id"`
	UserID    string `bson:"user_id"`
	Name      string `bson:"name"`
	Position  int    `bson:"position"`
	CreatedAt int64  `bson:"created_at"`
}

type symptomEntryDoc struct {
	ID        string `bson:"_id"`
	UserID    string `bson:"user_id"`
	SymptomID string `bson:"symptom_id"`
	Date      string `bson:"date"`
	Severity  string `bson:"severity"`
	CreatedAt int64  `bson:"created_at"`
}

type dailyNoteDoc struct {
	UserID string `bson:"user_id"`
	Date   string `bson:"date"`
	Note   string `bson:"note"`
}
