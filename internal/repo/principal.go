package repo

import (
	"context"

	"github.com/Saipoo/foodorder/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}
