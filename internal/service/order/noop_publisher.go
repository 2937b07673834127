package order

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

type noopPublisher struct {
	logger *log.Entry
}

// NewNoopPublisher создаёт издателя-заглушку для запуска без Kafka.
func NewNoopPublisher(logger *log.Entry) domain.OrderEventPublisher {
	if logger == nil {
		logger = log.New().WithField("component", "order-publisher-noop")
	}
	return &noopPublisher{logger: logger}
}

func (n *noopPublisher) PublishOrderCreated(_ context.Context, orders []domain.Order) error {
	n.logger.WithFields(log.Fields{
		"orders": len(orders),
		"ts":     time.Now().UTC().Format(time.RFC3339Nano),
	}).Info("order notifications skipped: publisher disabled")
	return nil
}

var _ domain.OrderEventPublisher = (*noopPublisher)(nil)
