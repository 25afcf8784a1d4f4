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

type AdminRepository struct {
	collection *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{
		collection: db.Collection("admins"),
	}
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	admin.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, admin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repo.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var admin domain.Admin
	err := r.collection.FindOne(ctx, filter).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return &admin, nil
}
