package mongodb

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
)

func (s *MongoStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt == 0 {
		category.CreatedAt = time.Now().Unix()
	}
	pos, err := s.count(ctx, categoryCollection, category.UserID)
	if err != nil {
		return err
	}
	category.Order = pos

	subs := category.Subcategories
	if subs == nil {
		subs = []string{}
	}
	doc := categoryDoc{
		ID:            category.ID,
		UserID:        category.UserID,
		Name:          category.Name,
		Position:      category.Order,
		Subcategories: subs,
		CreatedAt:     category.CreatedAt,
	}
	if _, err := s.db.Collection(categoryCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (s *MongoStore) GetCategory(ctx context.Context, userID, categoryID string) (*models.Category, error) {
	var doc categoryDoc
	err := s.db.Collection(categoryCollection).
		FindOne(ctx, bson.M{"_id": categoryID, "user_id": userID}).
		Decode(&doc)
	if err != nil {
		return nil, notFound(err, "category", categoryID)
	}
	c := doc.model()
	return &c, nil
}

func (s *MongoStore) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	cur, err := s.db.Collection(categoryCollection).Find(ctx, bson.M{"user_id": userID}, byPosition())
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	categories := make([]models.Category, len(docs))
	for i, d := range docs {
		categories[i] = d.model()
	}
	return categories, nil
}

func (s *MongoStore) RenameCategory(ctx context.Context, userID, categoryID, name string) error {
	res, err := s.db.Collection(categoryCollection).UpdateOne(ctx,
		bson.M{"_id": categoryID, "user_id": userID},
		bson.M{"$set": bson.M{"name": name}},
	)
	if err != nil {
		return fmt.Errorf("failed to rename category: %w", err)
	}
	return requireMatched(res, "category", categoryID)
}

func (s *MongoStore) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	return s.atomically(ctx, func(ctx context.Context) error {
		res, err := s.db.Collection(categoryCollection).DeleteOne(ctx, bson.M{"_id": categoryID, "user_id": userID})
		if err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		if res.DeletedCount == 0 {
			return fmt.Errorf("category %s: %w", categoryID, storage.ErrNotFound)
		}

		if _, err := s.db.Collection(entryCollection).DeleteMany(ctx,
			bson.M{"category_id": categoryID, "user_id": userID},
		); err != nil {
			return fmt.Errorf("failed to delete entries: %w", err)
		}
		return s.renumber(ctx, categoryCollection, userID)
	})
}

func (s *MongoStore) ReorderCategories(ctx context.Context, userID string, ids []string) error {
	return s.setPositions(ctx, categoryCollection, userID, ids)
}

func (s *MongoStore) AddSubcategory(ctx context.Context, userID, categoryID, name string) error {
	category, err := s.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if category.HasSubcategory(name) {
		return fmt.Errorf("subcategory %q: %w", name, storage.ErrAlreadyExists)
	}
	return s.setSubcategories(ctx, category, append(category.Subcategories, name))
}

func (s *MongoStore) RenameSubcategory(ctx context.Context, userID, categoryID, oldName, newName string) error {
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
	return s.atomically(ctx, func(ctx context.Context) error {
		if err := s.setSubcategories(ctx, category, subs); err != nil {
			return err
		}
		return s.moveEntries(ctx, userID, categoryID, oldName, newName)
	})
}

func (s *MongoStore) DeleteSubcategory(ctx context.Context, userID, categoryID, name string) error {
	category, err := s.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	i := slices.Index(category.Subcategories, name)
	if i < 0 {
		return fmt.Errorf("subcategory %s: %w", name, storage.ErrNotFound)
	}

	subs := slices.Delete(slices.Clone(category.Subcategories), i, i+1)
	return s.atomically(ctx, func(ctx context.Context) error {
		if err := s.setSubcategories(ctx, category, subs); err != nil {
			return err
		}
		return s.moveEntries(ctx, userID, categoryID, name, models.GeneralSubcategory)
	})
}

func (s *MongoStore) setSubcategories(ctx context.Context, category *models.Category, subs []string) error {
	_, err := s.db.Collection(categoryCollection).UpdateOne(ctx,
		bson.M{"_id": category.ID, "user_id": category.UserID},
		bson.M{"$set": bson.M{"subcategories": subs}},
	)
	if err != nil {
		return fmt.Errorf("failed to update subcategories: %w", err)
	}
	return nil
}

func (s *MongoStore) moveEntries(ctx context.Context, userID, categoryID, from, to string) error {
	_, err := s.db.Collection(entryCollection).UpdateMany(ctx,
		bson.M{"user_id": userID, "category_id": categoryID, "subcategory": from},
		bson.M{"$set": bson.M{"subcategory": to}},
	)
	if err != nil {
		return fmt.Errorf("failed to update entries: %w", err)
	}
	return nil
}
