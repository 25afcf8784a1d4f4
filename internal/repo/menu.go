package repo

import (
	"context"

	"github.com/Saipoo/foodorder/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.MenuItem, error)
	List(ctx context.Context, availableOnly bool) ([]domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
