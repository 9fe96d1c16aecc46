package reviewRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mechradii/database"
	"mechradii/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	reviewColl   *mongo.Collection
	mechanicColl *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	repo := &MongoReviewRepo{
		reviewColl:   database.Collection("reviews"),
		mechanicColl: database.Collection("mechanics"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mechanic_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.reviewColl.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// SubmitReview runs the review insert and the mechanic aggregate update in
// one mongo transaction. The mechanic document is re-read inside the
// transaction, so concurrent reviewers against the same mechanic serialize:
// the driver retries the whole callback on transient transaction errors and
// the final total_reviews equals the number of successful submissions.
func (r *MongoReviewRepo) SubmitReview(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()

	client := r.reviewColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var mech models.MechanicRecord
		if err := r.mechanicColl.FindOne(sc, bson.M{"user_id": review.MechanicID}).Decode(&mech); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrMechanicNotFound
			}
			return nil, fmt.Errorf("failed to fetch mechanic: %w", err)
		}

		newAvg, newCount := models.NextAggregate(mech.Rating, mech.TotalReviews, review.Rating)

		if _, err := r.reviewColl.InsertOne(sc, review); err != nil {
			return nil, fmt.Errorf("insert review failed: %w", err)
		}

		update := bson.M{"$set": bson.M{
			"rating":        newAvg,
			"total_reviews": newCount,
			"updated_at":    time.Now(),
		}}
		res, err := r.mechanicColl.UpdateOne(sc, bson.M{"user_id": review.MechanicID}, update)
		if err != nil {
			return nil, fmt.Errorf("update mechanic aggregate failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, ErrMechanicNotFound
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, ErrMechanicNotFound) {
			return ErrMechanicNotFound
		}
		return fmt.Errorf("review transaction failed: %w", err)
	}
	return nil
}

// GetByMechanicID fetches all reviews for a mechanic, newest first.
func (r *MongoReviewRepo) GetByMechanicID(ctx context.Context, mechanicID string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.reviewColl.Find(ctx, bson.M{"mechanic_id": mechanicID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
