package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// EventType определяет тип события.
type EventType string

const (
	// EventTypeOrderCreated — заказ создан и надёжно сохранён.
	EventTypeOrderCreated EventType = "order.created"
)

// TopicOrderEvents — topic по умолчанию для событий заказов.
const TopicOrderEvents = "orders.order.events"

// OrderCreatedItem — снэпшот позиции в уведомлении о создании заказа.
type OrderCreatedItem struct {
	ProductID     int64  `json:"product_id"`
	Quantity      int32  `json:"quantity"`
	ProductTitle  string `json:"product_title"`
	ProductURL    string `json:"product_url"`
	PriceCents    int64  `json:"price_cents"`
	PriceCurrency string `json:"price_currency"`
}

// OrderCreatedEvent — денормализованный снэпшот заказа с плоским списком
// позиций. Событие фиксирует факт "заказ создан", поэтому ID строк
// хранилища в payload не включаются.
type OrderCreatedEvent struct {
	EventType          EventType          `json:"event_type"`
	CustomerID         int64              `json:"customer_id"`
	DeliveryAddress    string             `json:"delivery_address"`
	TotalPriceCents    int64              `json:"total_price_cents"`
	TotalPriceCurrency string             `json:"total_price_currency"`
	CreatedAt          time.Time          `json:"created_at"`
	Items              []OrderCreatedItem `json:"items"`
}

// NewOrderCreatedEvent строит событие из сохранённого заказа.
func NewOrderCreatedEvent(order domain.Order) OrderCreatedEvent {
	items := make([]OrderCreatedItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderCreatedItem{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			ProductTitle:  item.ProductTitle,
			ProductURL:    item.ProductURL,
			PriceCents:    item.PriceCents,
			PriceCurrency: item.PriceCurrency,
		})
	}

	return OrderCreatedEvent{
		EventType:          EventTypeOrderCreated,
		CustomerID:         order.CustomerID,
		DeliveryAddress:    order.DeliveryAddress,
		TotalPriceCents:    order.TotalPriceCents,
		TotalPriceCurrency: order.TotalPriceCurrency,
		CreatedAt:          order.CreatedAt,
		Items:              items,
	}
}
