package repo

import (
	"context"

	"github.com/Saipoo/foodorder/internal/domain"
)

type RevenueRepository interface {
	// Create inserts a revenue entry. The revenue collection carries a unique
	// index on order_id, so a second entry for the same order fails with
	// ErrDuplicateKey.
	Create(ctx context.Context, entry *domain.RevenueEntry) error
	ListAll(ctx context.Context) ([]domain.RevenueEntry, error)
}
