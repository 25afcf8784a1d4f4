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
)

type CustomerRepository struct {
	collection *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{
		collection: db.Collection("customers"),
	}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	customer.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, customer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repo.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *CustomerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var customer domain.Customer
	err := r.collection.FindOne(ctx, filter).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &customer, nil
}
