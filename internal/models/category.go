package models

import "slices"

// GeneralSubcategory is the implicit subcategory every category has.
// Entries whose subcategory is deleted fall back to it.
const GeneralSubcategory = "General"

// Category is a top-level budget grouping owned by one user.
type Category struct {
	// ID is the unique identifier for the category (UUID format).
	ID string

	// UserID is the owner of the category.
	UserID string

	// Name is the display name (e.g., "Food", "Transport").
	Name string

	// Order is the position in the user's category list.
	// Orders form a dense 0..n-1 sequence; stores renumber on delete and reorder.
	Order int

	// Subcategories are the user-defined subdivisions, in insertion order.
	// "General" is implicit and never stored here.
	Subcategories []string

	// CreatedAt is the Unix timestamp when the category was created.
	CreatedAt int64
}

// SubcategoryNames returns the full list used for display and totals:
// "General" followed by the category's own subcategories.
func (c Category) SubcategoryNames() []string {
	names := make([]string, 0, len(c.Subcategories)+1)
	names = append(names, GeneralSubcategory)
	return append(names, c.Subcategories...)
}

// HasSubcategory reports whether name is a valid subcategory of c.
func (c Category) HasSubcategory(name string) bool {
	return name == GeneralSubcategory || slices.Contains(c.Subcategories, name)
}
