package httpapi

import (
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// BatchCreateRequest — тело запроса пакетного создания заказов.
type BatchCreateRequest struct {
	Orders []OrderRequest `json:"orders"`
}

// OrderRequest описывает один заказ входного пакета.
type OrderRequest struct {
	CustomerID         int64              `json:"customer_id"`
	DeliveryAddress    string             `json:"delivery_address"`
	TotalPriceCents    int64              `json:"total_price_cents"`
	TotalPriceCurrency string             `json:"total_price_currency"`
	Items              []OrderItemRequest `json:"items"`
}

// OrderItemRequest описывает одну позицию заказа входного пакета.
type OrderItemRequest struct {
	ProductID     int64  `json:"product_id"`
	Quantity      int32  `json:"quantity"`
	ProductTitle  string `json:"product_title"`
	ProductURL    string `json:"product_url"`
	PriceCents    int64  `json:"price_cents"`
	PriceCurrency string `json:"price_currency"`
}

// OrderResponse — заказ в ответе API, с присвоенными хранилищем ID.
type OrderResponse struct {
	ID                 int64               `json:"id"`
	CustomerID         int64               `json:"customer_id"`
	DeliveryAddress    string              `json:"delivery_address"`
	TotalPriceCents    int64               `json:"total_price_cents"`
	TotalPriceCurrency string              `json:"total_price_currency"`
	Items              []OrderItemResponse `json:"items"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// OrderItemResponse — позиция заказа в ответе API.
type OrderItemResponse struct {
	ID            int64  `json:"id"`
	OrderID       int64  `json:"order_id"`
	ProductID     int64  `json:"product_id"`
	Quantity      int32  `json:"quantity"`
	ProductTitle  string `json:"product_title"`
	ProductURL    string `json:"product_url"`
	PriceCents    int64  `json:"price_cents"`
	PriceCurrency string `json:"price_currency"`
}

// BatchCreateResponse — результат пакетного создания.
// Warning заполняется, когда заказы сохранены, но уведомления не отправлены.
type BatchCreateResponse struct {
	Orders  []OrderResponse `json:"orders"`
	Warning string          `json:"warning,omitempty"`
}

// ListOrdersResponse — страница заказов.
type ListOrdersResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Page     int64           `json:"page"`
	PageSize int64           `json:"page_size"`
}

// ErrorResponse — единый формат ошибок API.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (r OrderRequest) toDomain() domain.Order {
	items := make([]domain.OrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = domain.OrderItem{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			ProductTitle:  item.ProductTitle,
			ProductURL:    item.ProductURL,
			PriceCents:    item.PriceCents,
			PriceCurrency: item.PriceCurrency,
		}
	}
	return domain.Order{
		CustomerID:         r.CustomerID,
		DeliveryAddress:    r.DeliveryAddress,
		TotalPriceCents:    r.TotalPriceCents,
		TotalPriceCurrency: r.TotalPriceCurrency,
		Items:              items,
	}
}

func newOrderResponse(order domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ID:            item.ID,
			OrderID:       item.OrderID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			ProductTitle:  item.ProductTitle,
			ProductURL:    item.ProductURL,
			PriceCents:    item.PriceCents,
			PriceCurrency: item.PriceCurrency,
		}
	}
	return OrderResponse{
		ID:                 order.ID,
		CustomerID:         order.CustomerID,
		DeliveryAddress:    order.DeliveryAddress,
		TotalPriceCents:    order.TotalPriceCents,
		TotalPriceCurrency: order.TotalPriceCurrency,
		Items:              items,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}

func newOrderResponses(orders []domain.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = newOrderResponse(order)
	}
	return responses
}
