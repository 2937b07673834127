package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

type orderItemRepositoryInMemory struct {
	store *Store
}

// NewOrderItemRepository возвращает in-memory репозиторий позиций заказов.
func NewOrderItemRepository(store *Store) domain.OrderItemRepository {
	return &orderItemRepositoryInMemory{store: store}
}

// BulkInsert присваивает позициям ID и сохраняет их, проверяя ссылку на заказ.
// Выход позиционно соответствует входу.
func (r *orderItemRepositoryInMemory) BulkInsert(ctx context.Context, items []domain.OrderItem) ([]domain.OrderItem, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Аналог foreign key: ссылки проверяются до первой записи, чтобы сбой
	// на середине пакета не оставлял частично вставленные позиции, которые
	// undo-лог scope уже не увидит.
	for _, item := range items {
		if _, ok := s.orders[item.OrderID]; !ok {
			return nil, domain.ErrOrderNotFound
		}
	}

	inserted := make([]domain.OrderItem, 0, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		s.nextItemID++
		item.ID = s.nextItemID
		s.items[item.ID] = item
		inserted = append(inserted, item)
		ids = append(ids, item.ID)
	}

	if scope := scopeFrom(ctx); scope != nil {
		scope.onRollback(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, id := range ids {
				delete(s.items, id)
			}
		})
	}

	return inserted, nil
}

// Query возвращает позиции по фильтру, отсортированные по (order_id, id).
func (r *orderItemRepositoryInMemory) Query(_ context.Context, filter domain.OrderItemFilter) ([]domain.OrderItem, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	idSet := toSet(filter.IDs)
	orderSet := toSet(filter.OrderIDs)

	result := make([]domain.OrderItem, 0, len(s.items))
	for _, item := range s.items {
		if len(idSet) > 0 {
			if _, ok := idSet[item.ID]; !ok {
				continue
			}
		}
		if len(orderSet) > 0 {
			if _, ok := orderSet[item.OrderID]; !ok {
				continue
			}
		}
		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].OrderID != result[j].OrderID {
			return result[i].OrderID < result[j].OrderID
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

var _ domain.OrderItemRepository = (*orderItemRepositoryInMemory)(nil)
