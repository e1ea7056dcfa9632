// Package mongodb provides a MongoDB-backed implementation of the
// storage.Store interface.
//
// Categories embed their subcategory list, mirroring the document layout of
// hosted document stores. Cascading writes run in a session transaction on
// replica sets and sharded clusters. Standalone servers have no transactions,
// so there the writes run in sequence and a failure part-way leaves earlier
// writes in place.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mmynk/pocketbook/internal/storage"
)

const (
	categoryCollection     = "categories"
	entryCollection        = "entries"
	symptomCollection      = "symptoms"
	symptomEntryCollection = "symptom_entries"
	dailyNoteCollection    = "daily_notes"
	healthCollection       = "health_records"
)

// Ensure MongoStore implements storage.Store
var _ storage.Store = (*MongoStore)(nil)

// MongoStore implements storage.Store on a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	// transactions is set when the deployment supports multi-document
	// transactions.
	transactions bool
}

// New connects to uri and uses the named database.
func New(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("mongodb uri is required")
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &MongoStore{client: client, db: client.Database(database)}
	if s.transactions, err = supportsTransactions(ctx, s.db); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	if err := s.ensureIndexes(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	slog.Info("Connected to MongoDB", "database", database, "transactions", s.transactions)
	return s, nil
}

// supportsTransactions asks the server whether it is a replica set member or
// a mongos router.
func supportsTransactions(ctx context.Context, db *mongo.Database) (bool, error) {
	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}
	if err := db.RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return false, fmt.Errorf("failed to query mongodb topology: %w", err)
	}
	return hasTransactions(hello.SetName, hello.Msg), nil
}

func hasTransactions(setName, msg string) bool {
	return setName != "" || msg == "isdbgrid"
}

// atomically runs fn in a session transaction when the deployment supports
// one, and directly otherwise. fn must use the context it is given.
func (s *MongoStore) atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.transactions {
		return fn(ctx)
	}
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	})
	return err
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	byUser := mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}}
	for _, name := range []string{categoryCollection, entryCollection, symptomCollection} {
		if _, err := s.db.Collection(name).Indexes().CreateOne(ctx, byUser); err != nil {
			return fmt.Errorf("failed to create %s index: %w", name, err)
		}
	}

	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "symptom_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.db.Collection(symptomEntryCollection).Indexes().CreateOne(ctx, unique); err != nil {
		return fmt.Errorf("failed to create symptom entry index: %w", err)
	}

	notes := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.db.Collection(dailyNoteCollection).Indexes().CreateOne(ctx, notes); err != nil {
		return fmt.Errorf("failed to create daily note index: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// ClearBudget deletes all categories and entries of a user.
func (s *MongoStore) ClearBudget(ctx context.Context, userID string) error {
	filter := bson.M{"user_id": userID}
	return s.atomically(ctx, func(ctx context.Context) error {
		if _, err := s.db.Collection(entryCollection).DeleteMany(ctx, filter); err != nil {
			return fmt.Errorf("failed to delete entries: %w", err)
		}
		if _, err := s.db.Collection(categoryCollection).DeleteMany(ctx, filter); err != nil {
			return fmt.Errorf("failed to delete categories: %w", err)
		}
		return nil
	})
}

func byPosition() *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "created_at", Value: 1}})
}

func notFound(err error, what, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

func requireMatched(res *mongo.UpdateResult, what, id string) error {
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
	}
	return nil
}

// setPositions assigns position i to ids[i] in collection.
func (s *MongoStore) setPositions(ctx context.Context, collection, userID string, ids []string) error {
	coll := s.db.Collection(collection)
	for i, id := range ids {
		res, err := coll.UpdateOne(ctx,
			bson.M{"_id": id, "user_id": userID},
			bson.M{"$set": bson.M{"position": i}},
		)
		if err != nil {
			return fmt.Errorf("failed to update %s position: %w", collection, err)
		}
		if err := requireMatched(res, collection, id); err != nil {
			return err
		}
	}
	return nil
}

// renumber rewrites positions to 0..n-1 in current order.
func (s *MongoStore) renumber(ctx context.Context, collection, userID string) error {
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{"user_id": userID}, byPosition())
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", collection, err)
	}
	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return fmt.Errorf("failed to decode %s: %w", collection, err)
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return s.setPositions(ctx, collection, userID, ids)
}

func (s *MongoStore) count(ctx context.Context, collection, userID string) (int, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return int(n), nil
}
