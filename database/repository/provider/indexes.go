package providerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (r *MongoProviderRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	// Compound index backing the bounding-box range scan.
	areaIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "baseLatitude", Value: 1},
			{Key: "baseLongitude", Value: 1},
			{Key: "isAvailable", Value: 1},
		},
	}
	pincodeIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "basePincode", Value: 1},
			{Key: "averageRating", Value: -1},
		},
	}
	ratingIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "averageRating", Value: -1}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{idIdx, areaIdx, pincodeIdx, ratingIdx}); err != nil {
		return fmt.Errorf("failed to create provider indexes: %w", err)
	}
	return nil
}
