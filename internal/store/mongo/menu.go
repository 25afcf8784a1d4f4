package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/Saipoo/foodorder/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MenuRepository struct {
	collection *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{
		collection: db.Collection("menu"),
	}
}

func (r *MenuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	return nil
}

func (r *MenuRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var item domain.MenuItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return &item, nil
}

func (r *MenuRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu items: %w", err)
	}

	return items, nil
}

func (r *MenuRepository) List(ctx context.Context, availableOnly bool) ([]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if availableOnly {
		filter["available"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu items: %w", err)
	}

	return items, nil
}

func (r *MenuRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	item.UpdatedAt = time.Now()

	filter := bson.M{"_id": item.ID}
	update := bson.M{
		"$set": item,
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	if result.DeletedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}
