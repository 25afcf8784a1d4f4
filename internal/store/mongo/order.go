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

type OrderRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		collection: db.Collection("orders"),
		counters:   db.Collection("counters"),
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repo.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var order domain.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]domain.Order, error) {
	return r.list(ctx, bson.M{"customer._id": customerID})
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *OrderRepository) ListSince(ctx context.Context, since time.Time) ([]domain.Order, error) {
	return r.list(ctx, bson.M{"created_at": bson.M{"$gte": since}})
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus performs a compare-and-swap on the order status. The filter
// matches both the id and the expected current status, so two concurrent
// transitions away from the same status cannot both succeed.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to domain.OrderStatus) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":    id,
		"status": from,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     to,
			"updated_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Order
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	// no match: either the order is gone or another transition won the race
	count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if countErr != nil {
		return nil, fmt.Errorf("failed to check order existence: %w", countErr)
	}
	if count == 0 {
		return nil, repo.ErrNotFound
	}

	return nil, repo.ErrStaleStatus
}

// NextOrderNumber reserves the next value of the order sequence with an
// atomic $inc on the counters collection.
func (r *OrderRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": "order_number"}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("failed to reserve order number: %w", err)
	}

	return counter.Seq, nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context, statuses ...domain.OrderStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}
