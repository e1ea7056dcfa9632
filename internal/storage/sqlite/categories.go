package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
)

// CreateCategory persists a new category after the user's existing ones.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt == 0 {
		category.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	pos, err := nextPosition(ctx, tx, "categories", category.UserID)
	if err != nil {
		return err
	}
	category.Order = pos

	_, err = tx.ExecContext(ctx,
		"INSERT INTO categories (id, user_id, name, position, created_at) VALUES (?, ?, ?, ?, ?)",
		category.ID, category.UserID, category.Name, category.Order, category.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	for i, name := range category.Subcategories {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO subcategories (category_id, name, position) VALUES (?, ?, ?)",
			category.ID, name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert subcategory: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetCategory retrieves a category with its subcategories.
func (s *SQLiteStore) GetCategory(ctx context.Context, userID, categoryID string) (*models.Category, error) {
	category := &models.Category{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, position, created_at FROM categories WHERE id = ? AND user_id = ?",
		categoryID, userID,
	).Scan(&category.ID, &category.UserID, &category.Name, &category.Order, &category.CreatedAt)
	if err != nil {
		return nil, notFound(err, "category", categoryID)
	}

	subs, err := s.subcategories(ctx, "WHERE category_id = ?", categoryID)
	if err != nil {
		return nil, err
	}
	category.Subcategories = subs[categoryID]
	return category, nil
}

// ListCategories returns a user's categories in display order.
func (s *SQLiteStore) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, position, created_at FROM categories WHERE user_id = ? ORDER BY position, created_at",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Order, &c.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	subs, err := s.subcategories(ctx,
		"JOIN categories c ON c.id = s.category_id WHERE c.user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		categories[i].Subcategories = subs[categories[i].ID]
	}
	return categories, nil
}

// subcategories loads subcategory names grouped by category ID.
func (s *SQLiteStore) subcategories(ctx context.Context, where string, args ...any) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT s.category_id, s.name FROM subcategories s "+where+" ORDER BY s.position",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get subcategories: %w", err)
	}
	defer rows.Close()

	subs := make(map[string][]string)
	for rows.Next() {
		var categoryID, name string
		if err := rows.Scan(&categoryID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		subs[categoryID] = append(subs[categoryID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subcategories: %w", err)
	}
	return subs, nil
}

// RenameCategory updates a category's name.
func (s *SQLiteStore) RenameCategory(ctx context.Context, userID, categoryID, name string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = ? WHERE id = ? AND user_id = ?",
		name, categoryID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename category: %w", err)
	}
	return requireAffected(res, "category", categoryID)
}

// DeleteCategory deletes a category, its subcategories and entries, then
// renumbers the remaining categories.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM entries WHERE category_id = ? AND user_id = ?", categoryID, userID,
	); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM categories WHERE id = ? AND user_id = ?", categoryID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if err := requireAffected(res, "category", categoryID); err != nil {
		return err
	}

	if err := renumber(ctx, tx, "categories", userID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReorderCategories assigns positions following ids.
func (s *SQLiteStore) ReorderCategories(ctx context.Context, userID string, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := setPositions(ctx, tx, "categories", userID, ids); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AddSubcategory appends a subcategory to a category.
func (s *SQLiteStore) AddSubcategory(ctx context.Context, userID, categoryID, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ownsCategory(ctx, tx, userID, categoryID); err != nil {
		return err
	}
	if err := subcategoryAbsent(ctx, tx, categoryID, name); err != nil {
		return err
	}

	var pos int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subcategories WHERE category_id = ?", categoryID,
	).Scan(&pos); err != nil {
		return fmt.Errorf("failed to count subcategories: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO subcategories (category_id, name, position) VALUES (?, ?, ?)",
		categoryID, name, pos,
	); err != nil {
		return fmt.Errorf("failed to insert subcategory: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RenameSubcategory renames a subcategory and rewrites the entries using it.
func (s *SQLiteStore) RenameSubcategory(ctx context.Context, userID, categoryID, oldName, newName string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ownsCategory(ctx, tx, userID, categoryID); err != nil {
		return err
	}
	if err := subcategoryAbsent(ctx, tx, categoryID, newName); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE subcategories SET name = ? WHERE category_id = ? AND name = ?",
		newName, categoryID, oldName,
	)
	if err != nil {
		return fmt.Errorf("failed to rename subcategory: %w", err)
	}
	if err := requireAffected(res, "subcategory", oldName); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE entries SET subcategory = ? WHERE category_id = ? AND subcategory = ?",
		newName, categoryID, oldName,
	); err != nil {
		return fmt.Errorf("failed to update entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteSubcategory removes a subcategory and moves its entries to General.
func (s *SQLiteStore) DeleteSubcategory(ctx context.Context, userID, categoryID, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ownsCategory(ctx, tx, userID, categoryID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM subcategories WHERE category_id = ? AND name = ?", categoryID, name,
	)
	if err != nil {
		return fmt.Errorf("failed to delete subcategory: %w", err)
	}
	if err := requireAffected(res, "subcategory", name); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE entries SET subcategory = ? WHERE category_id = ? AND subcategory = ?",
		models.GeneralSubcategory, categoryID, name,
	); err != nil {
		return fmt.Errorf("failed to reassign entries: %w", err)
	}

	// Keep positions dense.
	rows, err := tx.QueryContext(ctx,
		"SELECT name FROM subcategories WHERE category_id = ? ORDER BY position", categoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to list subcategories: %w", err)
	}
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan subcategory: %w", err)
		}
		names = append(names, n)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate subcategories: %w", err)
	}
	for i, n := range names {
		if _, err := tx.ExecContext(ctx,
			"UPDATE subcategories SET position = ? WHERE category_id = ? AND name = ?", i, categoryID, n,
		); err != nil {
			return fmt.Errorf("failed to update subcategory position: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func ownsCategory(ctx context.Context, q execer, userID, categoryID string) error {
	var id string
	err := q.QueryRowContext(ctx,
		"SELECT id FROM categories WHERE id = ? AND user_id = ?", categoryID, userID,
	).Scan(&id)
	if err != nil {
		return notFound(err, "category", categoryID)
	}
	return nil
}

func subcategoryAbsent(ctx context.Context, q execer, categoryID, name string) error {
	if name == models.GeneralSubcategory {
		return fmt.Errorf("subcategory %q: %w", name, storage.ErrAlreadyExists)
	}
	var n int
	if err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subcategories WHERE category_id = ? AND name = ?", categoryID, name,
	).Scan(&n); err != nil {
		return fmt.Errorf("failed to check subcategory: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("subcategory %q: %w", name, storage.ErrAlreadyExists)
	}
	return nil
}
