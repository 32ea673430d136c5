package providerRepo

import (
	"fmt"
	"time"

	"hirelink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// availableFilter restricts a query to live, bookable providers.
func availableFilter() bson.M {
	return bson.M{
		"isAvailable": true,
		"isDeleted":   bson.M{"$ne": true},
	}
}

func (r *MongoProviderRepo) findAll(filter bson.M, opts ...*options.FindOptions) ([]models.Provider, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("provider query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

// FindInArea is the bounding-box pre-filter of the two-phase geo search.
// The box is a superset of the true circle; the search service re-filters
// by exact distance. Providers without coordinates never match the range
// predicates, so they are excluded here by construction.
func (r *MongoProviderRepo) FindInArea(minLat, maxLat, minLon, maxLon float64, providerIDs []string) ([]models.Provider, error) {
	filter := availableFilter()
	filter["baseLatitude"] = bson.M{"$gte": minLat, "$lte": maxLat}
	filter["baseLongitude"] = bson.M{"$gte": minLon, "$lte": maxLon}
	if providerIDs != nil {
		filter["id"] = bson.M{"$in": providerIDs}
	}
	return r.findAll(filter)
}

func (r *MongoProviderRepo) FindByPincode(pincode string) ([]models.Provider, error) {
	filter := availableFilter()
	filter["basePincode"] = pincode
	opts := options.Find().SetSort(bson.D{
		{Key: "averageRating", Value: -1},
		{Key: "id", Value: 1},
	})
	return r.findAll(filter, opts)
}

func (r *MongoProviderRepo) FindTopRated(limit int64) ([]models.Provider, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "averageRating", Value: -1},
			{Key: "completedBookings", Value: -1},
		}).
		SetLimit(limit)
	return r.findAll(availableFilter(), opts)
}

func (r *MongoProviderRepo) FindFeatured() ([]models.Provider, error) {
	filter := availableFilter()
	filter["isFeatured"] = true
	return r.findAll(filter)
}
