package repo

import (
	"context"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListSince(ctx context.Context, since time.Time) ([]domain.Order, error)

	// UpdateStatus moves an order from one status to another with a
	// compare-and-swap on the current status. Returns ErrNotFound if the
	// order does not exist and ErrStaleStatus if it exists but is no longer
	// in the expected status.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to domain.OrderStatus) (*domain.Order, error)

	// NextOrderNumber atomically reserves the next sequence number.
	NextOrderNumber(ctx context.Context) (int64, error)

	CountByStatus(ctx context.Context, statuses ...domain.OrderStatus) (int64, error)
}
