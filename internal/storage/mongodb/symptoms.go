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

func (s *MongoStore) CreateSymptom(ctx context.Context, symptom *models.Symptom) error {
	if symptom.ID == "" {
		symptom.ID = uuid.New().String()
	}
	if symptom.CreatedAt == 0 {
		symptom.CreatedAt = time.Now().Unix()
	}
	pos, err := s.count(ctx, symptomCollection, symptom.UserID)
	if err != nil {
		return err
	}
	symptom.Order = pos

	doc := symptomDoc{
		ID:        symptom.ID,
		UserID:    symptom.UserID,
		Name:      symptom.Name,
		Position:  symptom.Order,
		CreatedAt: symptom.CreatedAt,
	}
	if _, err := s.db.Collection(symptomCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert symptom: %w", err)
	}
	return nil
}

func (s *MongoStore) ListSymptoms(ctx context.Context, userID string) ([]models.Symptom, error) {
	cur, err := s.db.Collection(symptomCollection).Find(ctx, bson.M{"user_id": userID}, byPosition())
	if err != nil {
		return nil, fmt.Errorf("failed to list symptoms: %w", err)
	}
	var docs []symptomDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode symptoms: %w", err)
	}

	symptoms := make([]models.Symptom, len(docs))
	for i, d := range docs {
		symptoms[i] = models.Symptom{ID: d.ID, UserID: d.UserID, Name: d.Name, Order: d.Position, CreatedAt: d.CreatedAt}
	}
	return symptoms, nil
}

func (s *MongoStore) RenameSymptom(ctx context.Context, userID, symptomID, name string) error {
	res, err := s.db.Collection(symptomCollection).UpdateOne(ctx,
		bson.M{"_id": symptomID, "user_id": userID},
		bson.M{"$set": bson.M{"name": name}},
	)
	if err != nil {
		return fmt.Errorf("failed to rename symptom: %w", err)
	}
	return requireMatched(res, "symptom", symptomID)
}

func (s *MongoStore) DeleteSymptom(ctx context.Context, userID, symptomID string) error {
	return s.atomically(ctx, func(ctx context.Context) error {
		res, err := s.db.Collection(symptomCollection).DeleteOne(ctx, bson.M{"_id": symptomID, "user_id": userID})
		if err != nil {
			return fmt.Errorf("failed to delete symptom: %w", err)
		}
		if res.DeletedCount == 0 {
			return fmt.Errorf("symptom %s: %w", symptomID, storage.ErrNotFound)
		}
		if _, err := s.db.Collection(symptomEntryCollection).DeleteMany(ctx,
			bson.M{"symptom_id": symptomID, "user_id": userID},
		); err != nil {
			return fmt.Errorf("failed to delete symptom entries: %w", err)
		}
		return s.renumber(ctx, symptomCollection, userID)
	})
}

func (s *MongoStore) ReorderSymptoms(ctx context.Context, userID string, ids []string) error {
	return s.setPositions(ctx, symptomCollection, userID, ids)
}

func (s *MongoStore) LogSymptom(ctx context.Context, entry *models.SymptomEntry) error {
	n, err := s.db.Collection(symptomCollection).CountDocuments(ctx, bson.M{"_id": entry.SymptomID, "user_id": entry.UserID})
	if err != nil {
		return fmt.Errorf("failed to check symptom: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("symptom %s: %w", entry.SymptomID, storage.ErrNotFound)
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	filter := bson.M{"symptom_id": entry.SymptomID, "date": entry.Date.String()}
	update := bson.M{
		"$set": bson.M{"severity": string(entry.Severity)},
		"$setOnInsert": bson.M{
			"_id":        entry.ID,
			"user_id":    entry.UserID,
			"created_at": entry.CreatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc symptomEntryDoc
	if err := s.db.Collection(symptomEntryCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return fmt.Errorf("failed to log symptom: %w", err)
	}
	entry.ID = doc.ID
	entry.CreatedAt = doc.CreatedAt
	return nil
}

func (s *MongoStore) ClearSymptom(ctx context.Context, userID, symptomID string, date models.Date) error {
	_, err := s.db.Collection(symptomEntryCollection).DeleteOne(ctx,
		bson.M{"user_id": userID, "symptom_id": symptomID, "date": date.String()},
	)
	if err != nil {
		return fmt.Errorf("failed to clear symptom: %w", err)
	}
	return nil
}

func (s *MongoStore) ListSymptomEntries(ctx context.Context, userID string) ([]models.SymptomEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := s.db.Collection(symptomEntryCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list symptom entries: %w", err)
	}
	var docs []symptomEntryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode symptom entries: %w", err)
	}

	entries := make([]models.SymptomEntry, 0, len(docs))
	for _, d := range docs {
		date, err := models.ParseDate(d.Date)
		if err != nil {
			return nil, fmt.Errorf("symptom entry %s: %w", d.ID, err)
		}
		entries = append(entries, models.SymptomEntry{
			ID:        d.ID,
			UserID:    d.UserID,
			SymptomID: d.SymptomID,
			Date:      date,
			Severity:  models.Severity(d.Severity),
			CreatedAt: d.CreatedAt,
		})
	}
	return entries, nil
}

func (s *MongoStore) SetDailyNote(ctx context.Context, note models.DailyNote) error {
	coll := s.db.Collection(dailyNoteCollection)
	filter := bson.M{"user_id": note.UserID, "date": note.Date.String()}

	if note.Note == "" {
		if _, err := coll.DeleteOne(ctx, filter); err != nil {
			return fmt.Errorf("failed to delete daily note: %w", err)
		}
		return nil
	}

	doc := dailyNoteDoc{UserID: note.UserID, Date: note.Date.String(), Note: note.Note}
	if _, err := coll.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to save daily note: %w", err)
	}
	return nil
}

func (s *MongoStore) ListDailyNotes(ctx context.Context, userID string) ([]models.DailyNote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := s.db.Collection(dailyNoteCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily notes: %w", err)
	}
	var docs []dailyNoteDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode daily notes: %w", err)
	}

	notes := make([]models.DailyNote, 0, len(docs))
	for _, d := range docs {
		date, err := models.ParseDate(d.Date)
		if err != nil {
			return nil, fmt.Errorf("daily note: %w", err)
		}
		notes = append(notes, models.DailyNote{UserID: d.UserID, Date: date, Note: d.Note})
	}
	return notes, nil
}
