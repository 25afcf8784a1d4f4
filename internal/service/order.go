package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/Saipoo/foodorder/internal/queue"
	"github.com/Saipoo/foodorder/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// OrderService owns the order lifecycle: placement, the status state machine,
// and the revenue entry derived on completion. It is the only writer of order
// status after creation.
type OrderService struct {
	orderRepo   repo.OrderRepository
	menuRepo    repo.MenuRepository
	revenueRepo repo.RevenueRepository
	broker      queue.Broker
	logger      *zap.SugaredLogger
}

func NewOrderService(
	orderRepo repo.OrderRepository,
	menuRepo repo.MenuRepository,
	revenueRepo repo.RevenueRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		menuRepo:    menuRepo,
		revenueRepo: revenueRepo,
		broker:      broker,
		logger:      logger,
	}
}

// OrderItemInput references a menu item in a placement request. Prices are
// never taken from the client; the current menu price is snapshotted.
type OrderItemInput struct {
	MenuItemID primitive.ObjectID
	Quantity   int
}

func (s *OrderService) Place(
	ctx context.Context,
	customer *domain.Customer,
	items []OrderItemInput,
	paymentMethod string,
	paymentDetails domain.PaymentDetails,
) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	if err := validatePayment(paymentMethod, paymentDetails); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrEmptyOrder)
		}
		ids = append(ids, item.MenuItemID)
	}

	menuItems, err := s.menuRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}

	byID := make(map[primitive.ObjectID]domain.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		byID[mi.ID] = mi
	}

	var subtotal float64
	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		mi, ok := byID[item.MenuItemID]
		if !ok {
			return nil, fmt.Errorf("%w: menu item %s", ErrNotFound, item.MenuItemID.Hex())
		}
		if !mi.Available {
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, mi.Name)
		}

		orderItems = append(orderItems, domain.OrderItem{
			ID:       mi.ID,
			Name:     mi.Name,
			Price:    mi.Price,
			Quantity: item.Quantity,
		})
		subtotal += mi.Price * float64(item.Quantity)
	}

	seq, err := s.orderRepo.NextOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to assign order number: %w", err)
	}

	order := &domain.Order{
		OrderNumber: fmt.Sprintf("ORD%04d", seq),
		Customer: domain.CustomerRef{
			ID:    customer.ID,
			Name:  customer.Name,
			Email: customer.Email,
		},
		Items:          orderItems,
		Total:          round2(subtotal * domain.TaxRate),
		Status:         domain.StatusPlaced,
		PaymentMethod:  paymentMethod,
		PaymentDetails: paymentDetails,
		EstimatedTime:  domain.DefaultEstimatedTime,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Infow("order placed",
		"order_id", order.ID.Hex(),
		"order_number", order.OrderNumber,
		"customer_id", customer.ID.Hex(),
		"total", order.Total,
	)

	s.publishNotification(ctx, order, domain.NotificationOrderConfirmation)

	return order, nil
}

// Transition moves an order along the status graph. The persistence step is a
// compare-and-swap against the status the order had when loaded, so two
// concurrent transitions from the same starting status cannot both commit.
func (s *OrderService) Transition(ctx context.Context, orderID primitive.ObjectID, newStatus string) (*domain.Order, error) {
	to, ok := domain.ParseOrderStatus(newStatus)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if !domain.CanTransition(order.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, order.Status, to)
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, order.Status, to)
	if err != nil {
		if errors.Is(err, repo.ErrStaleStatus) {
			// lost the race: someone else already moved the order
			return nil, fmt.Errorf("%w: order is no longer %s", ErrIllegalTransition, order.Status)
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Infow("order status updated",
		"order_id", updated.ID.Hex(),
		"order_number", updated.OrderNumber,
		"from", order.Status,
		"to", to,
	)

	if to == domain.StatusCompleted {
		s.recordRevenue(ctx, updated)
	}

	s.publishNotification(ctx, updated, domain.NotificationStatusUpdate)

	return updated, nil
}

func (s *OrderService) Get(ctx context.Context, orderID primitive.ObjectID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (s *OrderService) ListForCustomer(ctx context.Context, customerID primitive.ObjectID) ([]domain.Order, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

func (s *OrderService) ListToday(ctx context.Context) ([]domain.Order, error) {
	year, month, day := time.Now().Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	return s.orderRepo.ListSince(ctx, midnight)
}

// recordRevenue derives the ledger entry for a completed order. The CAS in
// Transition already guarantees completed is entered at most once; the unique
// index on order_id is the backstop, so a duplicate insert is not an error.
func (s *OrderService) recordRevenue(ctx context.Context, order *domain.Order) {
	entry := &domain.RevenueEntry{
		OrderID: order.ID,
		Amount:  order.Total,
		Date:    time.Now(),
	}

	if err := s.revenueRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			s.logger.Warnw("revenue entry already exists", "order_id", order.ID.Hex())
			return
		}
		// the transition has committed; losing the ledger write is logged
		// loudly instead of failing an already-applied state change
		s.logger.Errorw("failed to record revenue", "order_id", order.ID.Hex(), "error", err)
		return
	}

	s.logger.Infow("revenue recorded", "order_id", order.ID.Hex(), "amount", entry.Amount)
}

// publishNotification hands the email off to the notification queue. Failures
// are logged and swallowed: notifications never fail or roll back the
// operation that triggered them.
func (s *OrderService) publishNotification(ctx context.Context, order *domain.Order, kind string) {
	msg := domain.OrderNotificationMessage{
		Kind:          kind,
		OrderID:       order.ID.Hex(),
		OrderNumber:   order.OrderNumber,
		Email:         order.Customer.Email,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		Items:         order.Items,
		Total:         order.Total,
		CreatedAt:     order.CreatedAt,
	}

	msgBytes, err := json.Marshal(msg)
	if err != nil {
		s.logger.Errorw("failed to marshal notification", "order_id", order.ID.Hex(), "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueOrderNotifications, msgBytes); err != nil {
		s.logger.Errorw("failed to publish notification", "order_id", order.ID.Hex(), "error", err)
	}
}

func validatePayment(method string, details domain.PaymentDetails) error {
	switch method {
	case domain.PaymentMethodUPI:
		if details.UPIID == "" {
			return fmt.Errorf("%w: upi_id is required for upi payments", ErrInvalidPayment)
		}
	case domain.PaymentMethodQR:
		if details.Screenshot == "" {
			return fmt.Errorf("%w: screenshot is required for qr payments", ErrInvalidPayment)
		}
	default:
		return fmt.Errorf("%w: unsupported payment method %q", ErrInvalidPayment, method)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
