package domain

import "time"

// Notification kinds carried on the order-notifications queue.
const (
	NotificationOrderConfirmation = "order.confirmation"
	NotificationStatusUpdate      = "order.status_update"
)

// OrderNotificationMessage is the queue payload for customer emails. It
// carries the full order snapshot so the worker never has to read the
// database to format a message.
type OrderNotificationMessage struct {
	Kind          string      `json:"kind"`
	OrderID       string      `json:"order_id"`
	OrderNumber   string      `json:"order_number"`
	Email         string      `json:"email"`
	Status        OrderStatus `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	Items         []OrderItem `json:"items"`
	Total         float64     `json:"total"`
	CreatedAt     time.Time   `json:"created_at"`
}
