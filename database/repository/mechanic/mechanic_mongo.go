package mechanicRepo

import (
	"context"
	"fmt"
	"time"

	"mechradii/database"
	"mechradii/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMechanicRepo implements MechanicRepository using MongoDB.
type MongoMechanicRepo struct {
	coll *mongo.Collection
}

// NewMongoMechanicRepo creates a new instance of MechanicRepository using MongoDB.
func NewMongoMechanicRepo() MechanicRepository {
	coll := database.Collection("mechanics")
	repo := &MongoMechanicRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoMechanicRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
		{Keys: bson.D{{Key: "services", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a mechanic record by user id. Returns nil, nil when no
// record exists so callers can distinguish "not a mechanic" from a failure.
func (r *MongoMechanicRepo) GetByID(id string) (*models.MechanicRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rec models.MechanicRecord
	if err := r.coll.FindOne(ctx, bson.M{"user_id": id}).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch mechanic with id %s: %w", id, err)
	}
	return &rec, nil
}

// GetAll retrieves mechanic records, optionally filtered to one service and
// ordered by rating or review count.
func (r *MongoMechanicRepo) GetAll(listOpts ListOptions) ([]models.MechanicRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if listOpts.Service != "" {
		filter["services"] = listOpts.Service
	}

	opts := options.Find()
	switch listOpts.SortBy {
	case "rating":
		opts.SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "total_reviews", Value: -1}})
	case "reviews":
		opts.SetSort(bson.D{{Key: "total_reviews", Value: -1}})
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve mechanics: %w", err)
	}
	defer cursor.Close(ctx)

	var recs []models.MechanicRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode mechanics: %w", err)
	}
	return recs, nil
}

// Create inserts a new mechanic record.
func (r *MongoMechanicRepo) Create(rec *models.MechanicRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to create mechanic: %w", err)
	}
	return nil
}

// UpdateFields applies a partial $set update plus an updated_at bump.
func (r *MongoMechanicRepo) UpdateFields(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"user_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update mechanic with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("mechanic with id %s not found", id)
	}
	return nil
}

// SetAvailability flips availability_status, keeping is_available in step for
// listings that only read the boolean.
func (r *MongoMechanicRepo) SetAvailability(id string, status string) error {
	return r.UpdateFields(id, bson.M{
		"availability_status": status,
		"is_available":        status == models.AvailabilityAvailable,
	})
}

// Delete removes a mechanic record by user id.
func (r *MongoMechanicRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"user_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete mechanic with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("mechanic with id %s not found", id)
	}
	return nil
}
