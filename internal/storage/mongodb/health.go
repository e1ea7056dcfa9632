package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mmynk/pocketbook/internal/models"
)

// healthDoc is keyed by user ID; nested records use the driver's default
// lower-cased field names.
type healthDoc struct {
	UserID      string              `bson:"_id"`
	Medications []models.Medication `bson:"medications"`
	Diagnoses   []models.Diagnosis  `bson:"diagnoses"`
	Providers   []models.Provider   `bson:"providers"`
	Explainers  []models.Explainer  `bson:"explainers"`
	UpdatedAt   int64               `bson:"updated_at"`
}

// GetHealthRecord loads the user's health record document.
func (s *MongoStore) GetHealthRecord(ctx context.Context, userID string) (*models.HealthRecord, error) {
	var doc healthDoc
	err := s.db.Collection(healthCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.HealthRecord{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get health record: %w", err)
	}
	return &models.HealthRecord{
		UserID:      userID,
		Medications: doc.Medications,
		Diagnoses:   doc.Diagnoses,
		Providers:   doc.Providers,
		Explainers:  doc.Explainers,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

// SaveHealthRecord replaces the user's health record document.
func (s *MongoStore) SaveHealthRecord(ctx context.Context, record *models.HealthRecord) error {
	record.UpdatedAt = time.Now().Unix()
	doc := healthDoc{
		UserID:      record.UserID,
		Medications: record.Medications,
		Diagnoses:   record.Diagnoses,
		Providers:   record.Providers,
		Explainers:  record.Explainers,
		UpdatedAt:   record.UpdatedAt,
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(healthCollection).ReplaceOne(ctx, bson.M{"_id": record.UserID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save health record: %w", err)
	}
	return nil
}
