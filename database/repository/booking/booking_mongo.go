package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"mechradii/database"
	"mechradii/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll         *mongo.Collection
	mechanicColl *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{
		coll:         database.Collection("bookings"),
		mechanicColl: database.Collection("mechanics"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "mechanic_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking. Independent insert, no concurrency control
// needed; a busy mechanic still receives new requests.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.Status = models.StatusPending
	booking.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by id.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// GetByUserID fetches the requester's full history, newest first. Terminal
// bookings are retained here; "active only" filtering is a view concern.
func (r *MongoBookingRepo) GetByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// GetActiveByMechanicID fetches the mechanic's inbox: everything not yet
// rejected or completed, newest first.
func (r *MongoBookingRepo) GetActiveByMechanicID(ctx context.Context, mechanicID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{
		"mechanic_id": mechanicID,
		"status":      bson.M{"$nin": bson.A{models.StatusRejected, models.StatusCompleted}},
	})
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// Transition applies a booking status change together with its mechanic
// availability side effect as one transaction, so the pair lands together or
// not at all. The legality of the edge is checked here at the data layer, not
// just in whatever UI exposed the action. The booking write is conditional on
// the expected current status, which also guards against a concurrent
// transition racing this one.
func (r *MongoBookingRepo) Transition(ctx context.Context, bookingID, from, to, mechanicID, availabilityStatus string) error {
	if !models.CanTransition(from, to) {
		return ErrIllegalTransition
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.coll.UpdateOne(sc,
			bson.M{"id": bookingID, "status": from},
			bson.M{"$set": bson.M{"status": to}},
		)
		if err != nil {
			return fmt.Errorf("update booking status failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStatusConflict
		}

		if availabilityStatus != "" {
			update := bson.M{"$set": bson.M{
				"availability_status": availabilityStatus,
				"is_available":        availabilityStatus == models.AvailabilityAvailable,
				"updated_at":          time.Now(),
			}}
			res, err := r.mechanicColl.UpdateOne(sc, bson.M{"user_id": mechanicID}, update)
			if err != nil {
				return fmt.Errorf("update mechanic availability failed: %w", err)
			}
			if res.MatchedCount == 0 {
				return fmt.Errorf("mechanic %s not found for availability update", mechanicID)
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrStatusConflict {
			return err
		}
		return fmt.Errorf("booking transition failed: %w", err)
	}

	return nil
}

// AppendReply appends one reply entry to mechanic_reply and stamps
// mechanic_reply_at. The concatenation happens inside the update itself, so
// two concurrent replies both land instead of the later read clobbering the
// earlier write. The status is untouched; terminal-state checks are the
// caller's responsibility.
func (r *MongoBookingRepo) AppendReply(ctx context.Context, bookingID, entry string) error {
	hasReply := bson.M{"$gt": bson.A{
		bson.M{"$strLenCP": bson.M{"$ifNull": bson.A{"$mechanic_reply", ""}}}, 0,
	}}
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{
			"mechanic_reply": bson.M{"$cond": bson.A{
				hasReply,
				bson.M{"$concat": bson.A{"$mechanic_reply", "\n\n", entry}},
				entry,
			}},
			"mechanic_reply_at": time.Now(),
		}}},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("failed to append reply to booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// changeEvent is the decoded shape of a bookings change stream document.
type changeEvent struct {
	FullDocument      models.Booking `bson:"fullDocument"`
	UpdateDescription struct {
		UpdatedFields bson.M `bson:"updatedFields"`
	} `bson:"updateDescription"`
}

// WatchStatusChanges opens a change stream over booking updates whose status
// field changed. Inserts (creation) and the pre-existing snapshot produce no
// events, so each status transition is observed exactly once. The stream is
// closed when the context is cancelled.
func (r *MongoBookingRepo) WatchStatusChanges(ctx context.Context) (<-chan models.BookingEvent, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"operationType": "update",
			"updateDescription.updatedFields.status": bson.M{"$exists": true},
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := r.coll.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open bookings change stream: %w", err)
	}

	events := make(chan models.BookingEvent)
	go func() {
		defer close(events)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var ev changeEvent
			if err := stream.Decode(&ev); err != nil {
				continue
			}
			status, _ := ev.UpdateDescription.UpdatedFields["status"].(string)
			if status == "" {
				continue
			}
			select {
			case events <- models.BookingEvent{
				BookingID:    ev.FullDocument.ID,
				UserID:       ev.FullDocument.UserID,
				MechanicID:   ev.FullDocument.MechanicID,
				MechanicName: ev.FullDocument.MechanicName,
				Status:       status,
				OccurredAt:   time.Now(),
			}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}
