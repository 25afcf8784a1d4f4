package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

const (
	PaymentMethodUPI = "upi"
	PaymentMethodQR  = "qr"
)

// DefaultEstimatedTime is the preparation estimate assigned at placement, in minutes.
const DefaultEstimatedTime = 15

// TaxRate is applied on top of the item subtotal when an order is placed.
const TaxRate = 1.05

// transitions is the order status graph. Completed and cancelled are terminal,
// self-transitions are not legal moves.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPlaced:    {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(s)
	_, ok := transitions[status]
	return status, ok
}

func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber    string             `bson:"order_number" json:"order_number"`
	Customer       CustomerRef        `bson:"customer" json:"customer"`
	Items          []OrderItem        `bson:"items" json:"items"`
	Total          float64            `bson:"total" json:"total"`
	Status         OrderStatus        `bson:"status" json:"status"`
	PaymentMethod  string             `bson:"payment_method" json:"payment_method"`
	PaymentDetails PaymentDetails     `bson:"payment_details" json:"payment_details"`
	EstimatedTime  int                `bson:"estimated_time" json:"estimated_time"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// CustomerRef is the customer snapshot embedded in an order at placement time.
// It is never re-resolved against the customers collection.
type CustomerRef struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

// OrderItem snapshots a menu item at placement time. Price changes on the menu
// never affect already-placed orders.
type OrderItem struct {
	ID       primitive.ObjectID `bson:"id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

type PaymentDetails struct {
	UPIID      string `bson:"upi_id,omitempty" json:"upi_id,omitempty"`
	Screenshot string `bson:"screenshot,omitempty" json:"screenshot,omitempty"`
}

// EstimatedMinutesRemaining reports how many minutes of the preparation
// estimate are left at the given instant. Only meaningful while the order is
// placed or preparing; zero otherwise.
func (o *Order) EstimatedMinutesRemaining(now time.Time) int {
	if o.Status != StatusPlaced && o.Status != StatusPreparing {
		return 0
	}

	elapsed := int(now.Sub(o.CreatedAt).Minutes())
	remaining := o.EstimatedTime - elapsed
	if remaining < 0 {
		return 0
	}

	return remaining
}

// Subtotal derives the pre-tax amount from the stored total. Total is the
// single source of truth for money; subtotal and tax are display-only.
func (o *Order) Subtotal() float64 {
	return o.Total / TaxRate
}

func (o *Order) Tax() float64 {
	return o.Total - o.Subtotal()
}
