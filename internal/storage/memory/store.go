package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Store — общее in-memory хранилище заказов и позиций для локальной
// разработки и юнит-тестов. ID выдаются монотонно, как это делал бы
// BIGSERIAL в PostgreSQL.
type Store struct {
	mu          sync.RWMutex
	orders      map[int64]domain.Order
	items       map[int64]domain.OrderItem
	nextOrderID int64
	nextItemID  int64
}

// NewStore создаёт пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{
		orders: make(map[int64]domain.Order),
		items:  make(map[int64]domain.OrderItem),
	}
}
