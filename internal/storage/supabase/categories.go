package supabase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
)

func (s *SupabaseStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt == 0 {
		category.CreatedAt = time.Now().Unix()
	}
	pos, err := s.count(categoryTable, category.UserID)
	if err != nil {
		return err
	}
	category.Order = pos

	subs := category.Subcategories
	if subs == nil {
		subs = []string{}
	}
	row := categoryRow{
		ID:            category.ID,
		UserID:        category.UserID,
		Name:          category.Name,
		Position:      category.Order,
		Subcategories: subs,
		CreatedAt:     category.CreatedAt,
	}
	if _, _, err := s.client.From(categoryTable).Insert(row, false, "", "", "").Execute(); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (s *SupabaseStore) GetCategory(ctx context.Context, userID, categoryID string) (*models.Category, error) {
	data, _, err := s.client.From(categoryTable).
		Select("*", "", false).
		Eq("id", categoryID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	rows, err := decodeRows[categoryRow](data, "category")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("category %s: %w", categoryID, storage.ErrNotFound)
	}
	c := rows[0].model()
	return &c, nil
}

func (s *SupabaseStore) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	data, _, err := s.client.From(categoryTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("position", ascending).
		Order("created_at", ascending).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	rows, err := decodeRows[categoryRow](data, "categories")
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, len(rows))
	for i, r := range rows {
		categories[i] = r.model()
	}
	return categories, nil
}

func (s *SupabaseStore) RenameCategory(ctx context.Context, userID, categoryID, name string) error {
	data, _, err := s.client.From(categoryTable).
		Update(map[string]any{"name": name}, "", "").
		Eq("id", categoryID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to rename category: %w", err)
	}
	return requireRows(data, "category", categoryID)
}

func (s *SupabaseStore) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	data, _, err := s.client.From(categoryTable).
		Delete("", "").
		Eq("id", categoryID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if err := requireRows(data, "category", categoryID); err != nil {
		return err
	}
	return s.renumber(categoryTable, userID)
}

func (s *SupabaseStore) ReorderCategories(ctx context.Context, userID string, ids []string) error {
	return s.setPositions(categoryTable, userID, ids)
}

func (s *SupabaseStore) AddSubcategory(ctx context.Context, userID, categoryID, name string) error {
	category, err := s.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if category.HasSubcategory(name) {
		return fmt.Errorf("subcategory %q: %w", name, storage.ErrAlreadyExists)
	}
	return s.setSubcategories(category, append(category.Subcategories, name))
}

func (s *SupabaseStore) RenameSubcategory(ctx context.Context, userID, categoryID, oldName, newName string) error {
	category, err := s.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	i := slices.Index(category.Subcategories, oldName)
	if i < 0 {
		return fmt.Errorf("subcategory %s: %w", oldName, storage.ErrNotFound)
	}
	if category.HasSubcategory(newName) {
		return fmt.Errorf("subcategory %q: %w", newName, storage.ErrAlreadyExists)
	}

	subs := slices.Clone(category.Subcategories)
	subs[i] = newName
	if err := s.setSubcategories(category, subs); err != nil {
		return err
	}
	return s.moveEntries(userID, categoryID, oldName, newName)
}

func (s *SupabaseStore) DeleteSubcategory(ctx context.Context, userID, categoryID, name string) error {
	category, err := s.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	i := slices.Index(category.Subcategories, name)
	if i < 0 {
		return fmt.Errorf("subcategory %s: %w", name, storage.ErrNotFound)
	}

	subs := slices.Delete(slices.Clone(category.Subcategories), i, i+1)
	if err := s.setSubcategories(category, subs); err != nil {
		return err
	}
	return s.moveEntries(userID, categoryID, name, models.GeneralSubcategory)
}

func (s *SupabaseStore) setSubcategories(category *models.Category, subs []string) error {
	_, _, err := s.client.From(categoryTable).
		Update(map[string]any{"subcategories": subs}, "", "").
		Eq("id", category.ID).
		Eq("user_id", category.UserID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update subcategories: %w", err)
	}
	return nil
}

func (s *SupabaseStore) moveEntries(userID, categoryID, from, to string) error {
	_, _, err := s.client.From(entryTable).
		Update(map[string]any{"subcategory": to}, "", "").
		Eq("user_id", userID).
		Eq("category_id", categoryID).
		Eq("subcategory", from).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update entries: %w", err)
	}
	return nil
}
