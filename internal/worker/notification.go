package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/Saipoo/foodorder/internal/mailer"
	"github.com/Saipoo/foodorder/internal/queue"
	"go.uber.org/zap"
)

// sendTimeout bounds a single email dispatch. A send that exceeds it is
// abandoned and retried by the broker.
const sendTimeout = 10 * time.Second

// NotificationWorker drains the order-notifications queue and turns each
// message into a customer email. Errors are returned to the broker so it can
// retry and eventually dead-letter; they never reach the request path.
type NotificationWorker struct {
	mailer mailer.Mailer
	broker queue.Broker
	logger *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewNotificationWorker(
	m mailer.Mailer,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *NotificationWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &NotificationWorker{
		mailer: m,
		broker: broker,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *NotificationWorker) Start() error {
	w.logger.Info("starting notification worker")

	return w.broker.Subscribe(w.ctx, queue.QueueOrderNotifications, w.handleMessage)
}

func (w *NotificationWorker) Stop() {
	w.logger.Info("stopping notification worker")
	w.cancel()
}

func (w *NotificationWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.OrderNotificationMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal notification", "error", err)
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	w.logger.Infow("sending notification",
		"kind", msg.Kind,
		"order_number", msg.OrderNumber,
		"email", msg.Email,
	)

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := w.mailer.Send(sendCtx, msg); err != nil {
		w.logger.Errorw("failed to send notification",
			"kind", msg.Kind,
			"order_number", msg.OrderNumber,
			"error", err,
		)
		return err
	}

	return nil
}
