package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mmynk/pocketbook/internal/models"
	"github.com/mmynk/pocketbook/internal/storage"
)

func (s *MongoStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	if entry.Subcategory == "" {
		entry.Subcategory = models.GeneralSubcategory
	}

	if _, err := s.db.Collection(entryCollection).InsertOne(ctx, newEntryDoc(entry)); err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

func (s *MongoStore) GetEntry(ctx context.Context, userID, entryID string) (*models.Entry, error) {
	var doc entryDoc
	err := s.db.Collection(entryCollection).
		FindOne(ctx, bson.M{"_id": entryID, "user_id": userID}).
		Decode(&doc)
	if err != nil {
		return nil, notFound(err, "entry", entryID)
	}
	e, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *MongoStore) UpdateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.Subcategory == "" {
		entry.Subcategory = models.GeneralSubcategory
	}
	res, err := s.db.Collection(entryCollection).UpdateOne(ctx,
		bson.M{"_id": entry.ID, "user_id": entry.UserID},
		bson.M{"$set": bson.M{
			"category_id": entry.CategoryID,
			"subcategory": entry.Subcategory,
			"amount":      entry.Amount.String(),
			"note":        entry.Note,
			"date":        entry.Date.String(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return requireMatched(res, "entry", entry.ID)
}

func (s *MongoStore) DeleteEntry(ctx context.Context, userID, entryID string) error {
	res, err := s.db.Collection(entryCollection).DeleteOne(ctx, bson.M{"_id": entryID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("entry %s: %w", entryID, storage.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	cur, err := s.db.Collection(entryCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	var docs []entryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}

	entries := make([]models.Entry, 0, len(docs))
	for _, d := range docs {
		e, err := d.model()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
