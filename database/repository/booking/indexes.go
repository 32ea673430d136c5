package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the booking indexes. The unique bookingNumber index
// is the backstop for number collisions: a duplicate insert surfaces as a
// ConflictError even if two generators race.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	numberIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "bookingNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	// Backs the capacity admission count.
	providerStatusIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "providerId", Value: 1},
			{Key: "status", Value: 1},
		},
	}
	customerIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "customerId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{idIdx, numberIdx, providerStatusIdx, customerIdx}); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
