package reviewRepo

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	coll := database.Collection("reviews")
	repo := &MongoReviewRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("review repo: failed to ensure indexes: %v", err)
	}
	return repo
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// ensureIndexes enforces the one-review-per-booking invariant at the
// storage layer in addition to the service-level check.
func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	bookingIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "bookingId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	providerIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "providerId", Value: 1},
			{Key: "isVisible", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{bookingIdx, providerIdx}); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) GetByID(id string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFoundError{Resource: "review", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch review with id %s: %w", id, err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) GetByBookingID(bookingID string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFoundError{Resource: "review", ID: "booking " + bookingID}
		}
		return nil, fmt.Errorf("failed to fetch review for booking %s: %w", bookingID, err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) ExistsForBooking(bookingID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"bookingId": bookingID})
	if err != nil {
		return false, fmt.Errorf("failed to check review for booking %s: %w", bookingID, err)
	}
	return count > 0, nil
}

func (r *MongoReviewRepo) Create(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ConflictError{Reason: "booking already has a review: " + review.BookingID}
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) Update(review *models.Review) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": review.ID}, bson.M{"$set": review})
	if err != nil {
		return fmt.Errorf("failed to update review with id %s: %w", review.ID, err)
	}
	if result.MatchedCount == 0 {
		return models.NotFoundError{Resource: "review", ID: review.ID}
	}
	return nil
}

func (r *MongoReviewRepo) VisibleRatingsByProvider(providerID string) ([]float64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "isVisible": true}
	opts := options.Find().SetProjection(bson.M{"rating": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ratings for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var ratings []float64
	for cursor.Next(ctx) {
		var doc struct {
			Rating float64 `bson:"rating"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode rating: %w", err)
		}
		ratings = append(ratings, doc.Rating)
	}
	return ratings, nil
}

func (r *MongoReviewRepo) ListVisibleByProvider(providerID string, limit int64) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "isVisible": true}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
