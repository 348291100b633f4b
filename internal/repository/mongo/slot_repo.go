// internal/repository/mongo/slot_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"mapty/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const slotCollectionName = "slots"

// slotDocument is one persistence slot. The slot key doubles as _id.
type slotDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoSlotRepository implements repository.SlotRepository
type mongoSlotRepository struct {
	collection *mongo.Collection
}

// NewMongoSlotRepository creates a new slot repository backed by the "slots" collection.
func NewMongoSlotRepository(db *mongo.Database) repository.SlotRepository {
	return &mongoSlotRepository{
		collection: db.Collection(slotCollectionName),
	}
}

// Get retrieves the blob stored under key.
func (r *mongoSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var doc slotDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.Value, nil
}

// Put upserts the blob under key.
func (r *mongoSlotRepository) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.New("slot key is required")
	}
	doc := slotDocument{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts)
	return err
}

// Delete removes the slot. A missing document is fine: reset is idempotent.
func (r *mongoSlotRepository) Delete(ctx context.Context, key string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// EnsureSlotIndexes creates necessary indexes. Call during startup.
func EnsureSlotIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Lets operators find stale slots without a collection scan
			Keys:    bson.D{{Key: "updatedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
