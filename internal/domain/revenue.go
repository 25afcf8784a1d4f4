package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RevenueEntry is created exactly once, when an order transitions into
// completed. Amount equals the order total at placement time.
type RevenueEntry struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID primitive.ObjectID `bson:"order_id" json:"order_id"`
	Amount  float64            `bson:"amount" json:"amount"`
	Date    time.Time          `bson:"date" json:"date"`
}
