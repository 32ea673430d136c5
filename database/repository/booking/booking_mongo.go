package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hirelink/database"
	"hirelink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("booking repo: failed to ensure indexes: %v", err)
	}
	return repo
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoBookingRepo) getOne(filter bson.M, lookup string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFoundError{Resource: "booking", ID: lookup}
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", lookup, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	return r.getOne(bson.M{"id": id}, id)
}

func (r *MongoBookingRepo) GetByNumber(number string) (*models.Booking, error) {
	return r.getOne(bson.M{"bookingNumber": number}, number)
}

func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ConflictError{Reason: "booking number already exists: " + booking.BookingNumber}
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) Update(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": booking.ID}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": booking})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", booking.ID, err)
	}
	if result.MatchedCount == 0 {
		return models.NotFoundError{Resource: "booking", ID: booking.ID}
	}
	return nil
}

func (r *MongoBookingRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return models.NotFoundError{Resource: "booking", ID: id}
	}
	return nil
}

func (r *MongoBookingRepo) ExistsByNumber(number string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"bookingNumber": number})
	if err != nil {
		return false, fmt.Errorf("failed to check booking number %s: %w", number, err)
	}
	return count > 0, nil
}
