package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/Saipoo/foodorder/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RevenueRepository struct {
	collection *mongo.Collection
}

func NewRevenueRepository(db *mongo.Database) *RevenueRepository {
	return &RevenueRepository{
		collection: db.Collection("revenue"),
	}
}

func (r *RevenueRepository) Create(ctx context.Context, entry *domain.RevenueEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repo.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create revenue entry: %w", err)
	}

	return nil
}

func (r *RevenueRepository) ListAll(ctx context.Context) ([]domain.RevenueEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []domain.RevenueEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode revenue entries: %w", err)
	}

	return entries, nil
}
