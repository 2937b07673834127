package domain

import "context"

// OrderFilter описывает условия выборки заказов.
// Пустой срез по полю означает "без ограничения по этому полю", а не "ничего не вернуть".
type OrderFilter struct {
	IDs         []int64
	CustomerIDs []int64
	// Limit <= 0 означает выборку без ограничения количества.
	Limit int64
	// Offset <= 0 означает выборку с начала.
	Offset int64
}

// OrderItemFilter описывает условия выборки позиций заказов.
type OrderItemFilter struct {
	IDs      []int64
	OrderIDs []int64
}

// OrderRepository описывает требования к хранилищу заказов.
//
// Контракт BulkInsert общий для обоих репозиториев: для N входных записей
// возвращается ровно N записей с присвоенными ID в том же порядке, что и на
// входе. Позиционное соответствие — несущая гарантия: оркестрация по индексу
// восстанавливает, какой ID какому входному заказу принадлежит, в том числе
// при конкурирующих вставках из других запросов.
type OrderRepository interface {
	// BulkInsert сохраняет заказы (без позиций) и возвращает их с ID и таймстемпами.
	BulkInsert(ctx context.Context, orders []Order) ([]Order, error)
	// Query возвращает заказы по фильтру, отсортированные по ID.
	Query(ctx context.Context, filter OrderFilter) ([]Order, error)
}

// OrderItemRepository описывает требования к хранилищу позиций заказов.
type OrderItemRepository interface {
	// BulkInsert сохраняет позиции и возвращает их с ID в порядке входа.
	BulkInsert(ctx context.Context, items []OrderItem) ([]OrderItem, error)
	// Query возвращает позиции по фильтру, отсортированные по (order_id, id).
	Query(ctx context.Context, filter OrderItemFilter) ([]OrderItem, error)
}
