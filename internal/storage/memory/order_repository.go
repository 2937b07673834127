package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

type orderRepositoryInMemory struct {
	store *Store
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepositoryInMemory{store: store}
}

// BulkInsert присваивает заказам ID и сохраняет их. Выход позиционно
// соответствует входу — тот же контракт, что у PostgreSQL-реализации.
func (r *orderRepositoryInMemory) BulkInsert(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := make([]domain.Order, 0, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, order := range orders {
		s.nextOrderID++
		order.ID = s.nextOrderID
		// Позиции хранятся отдельным репозиторием.
		order.Items = nil
		s.orders[order.ID] = order
		inserted = append(inserted, order)
		ids = append(ids, order.ID)
	}

	if scope := scopeFrom(ctx); scope != nil {
		scope.onRollback(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, id := range ids {
				delete(s.orders, id)
			}
		})
	}

	return inserted, nil
}

// Query возвращает заказы по фильтру, отсортированные по ID.
func (r *orderRepositoryInMemory) Query(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	idSet := toSet(filter.IDs)
	customerSet := toSet(filter.CustomerIDs)

	result := make([]domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		if len(idSet) > 0 {
			if _, ok := idSet[order.ID]; !ok {
				continue
			}
		}
		if len(customerSet) > 0 {
			if _, ok := customerSet[order.CustomerID]; !ok {
				continue
			}
		}
		result = append(result, order)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= int64(len(result)) {
			return []domain.Order{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && int64(len(result)) > filter.Limit {
		result = result[:filter.Limit]
	}

	return result, nil
}

func toSet(ids []int64) map[int64]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
