package models

import "github.com/shopspring/decimal"

// Entry is a single recorded expense tied to a category and subcategory.
type Entry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string

	// UserID is the owner of the entry.
	UserID string

	// CategoryID references a live Category owned by the same user.
	CategoryID string

	// Subcategory is "General" or one of the category's subcategories.
	Subcategory string

	// Amount is the non-negative expense amount.
	Amount decimal.Decimal

	// Note is optional free text.
	Note string

	// Date is the day the expense happened.
	Date Date

	// CreatedAt is the Unix timestamp when the entry was recorded.
	CreatedAt int64
}
