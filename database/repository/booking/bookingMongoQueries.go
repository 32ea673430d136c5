package bookingRepo

import (
	"fmt"
	"time"

	"hirelink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) CountByProviderAndStatuses(providerID string, statuses []models.BookingStatus) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"status":     bson.M{"$in": statuses},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for provider %s: %w", providerID, err)
	}
	return count, nil
}

func (r *MongoBookingRepo) CountByProvider(providerID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"providerId": providerID})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for provider %s: %w", providerID, err)
	}
	return count, nil
}

func (r *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("booking query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListByCustomer(customerID string, status models.BookingStatus) ([]models.Booking, error) {
	filter := bson.M{"customerId": customerID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(filter)
}

func (r *MongoBookingRepo) ListByProvider(providerID string, status models.BookingStatus) ([]models.Booking, error) {
	filter := bson.M{"providerId": providerID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(filter)
}
