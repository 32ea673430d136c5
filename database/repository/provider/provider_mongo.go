package providerRepo

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

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	coll := database.Collection("providers")
	repo := &MongoProviderRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("provider repo: failed to ensure indexes: %v", err)
	}
	return repo
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoProviderRepo) GetByID(id string) (*models.Provider, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var provider models.Provider
	filter := bson.M{"id": id, "isDeleted": bson.M{"$ne": true}}
	if err := r.coll.FindOne(ctx, filter).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFoundError{Resource: "provider", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) Create(provider *models.Provider) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) Update(provider *models.Provider) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": provider.ID}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": provider})
	if err != nil {
		return fmt.Errorf("failed to update provider with id %s: %w", provider.ID, err)
	}
	if result.MatchedCount == 0 {
		return models.NotFoundError{Resource: "provider", ID: provider.ID}
	}
	return nil
}

func (r *MongoProviderRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update provider with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return models.NotFoundError{Resource: "provider", ID: id}
	}
	return nil
}

func (r *MongoProviderRepo) SoftDelete(id string) error {
	return r.UpdateWithDocument(id, bson.M{"$set": bson.M{
		"isDeleted":   true,
		"isAvailable": false,
		"updatedAt":   time.Now(),
	}})
}
