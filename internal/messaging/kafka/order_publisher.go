package kafka

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// OrderEventsPublisher публикует уведомления order.created в заданный topic:
// одно сообщение на каждый заказ. Доставка at-least-once, без повторов здесь.
type OrderEventsPublisher struct {
	producer *Producer
	topic    string
}

// NewOrderEventsPublisher создаёт Kafka-паблишер уведомлений о заказах.
func NewOrderEventsPublisher(producer *Producer, topic string) domain.OrderEventPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OrderEventsPublisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *OrderEventsPublisher) PublishOrderCreated(ctx context.Context, orders []domain.Order) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka order publisher is not initialized")
	}
	if len(orders) == 0 {
		return nil
	}
	// Отменённый запрос не начинает публикацию.
	if err := ctx.Err(); err != nil {
		return err
	}

	keys := make([]string, 0, len(orders))
	events := make([]interface{}, 0, len(orders))
	for _, order := range orders {
		// Ключ — customer_id: события одного клиента попадают в одну партицию.
		keys = append(keys, strconv.FormatInt(order.CustomerID, 10))
		events = append(events, NewOrderCreatedEvent(order))
	}

	return p.producer.PublishEvents(p.topic, keys, events)
}

var _ domain.OrderEventPublisher = (*OrderEventsPublisher)(nil)
