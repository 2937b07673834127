package order

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
)

// Query описывает параметры постраничной выборки заказов.
type Query struct {
	IDs         []int64
	CustomerIDs []int64
	// Page нумеруется с единицы; значения <= 0 трактуются как первая страница.
	Page int64
	// PageSize <= 0 означает выборку без ограничения размера страницы.
	PageSize int64
	// IncludeItems управляет гидрацией позиций: при false выполняется
	// ровно один запрос к хранилищу (только родительские записи).
	IncludeItems bool
}

// Service реализует сценарии пакетной записи и чтения заказов.
type Service struct {
	orders    domain.OrderRepository
	items     domain.OrderItemRepository
	txManager domain.TxManager
	publisher domain.OrderEventPublisher
	logger    *log.Entry
	metrics   *metrics.OrderMetrics
}

// NewService создаёт рабочий экземпляр сервиса заказов.
func NewService(
	orders domain.OrderRepository,
	items domain.OrderItemRepository,
	txManager domain.TxManager,
	publisher domain.OrderEventPublisher,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &Service{
		orders:    orders,
		items:     items,
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics.NewOrderMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	orders domain.OrderRepository,
	items domain.OrderItemRepository,
	txManager domain.TxManager,
	publisher domain.OrderEventPublisher,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &Service{
		orders:    orders,
		items:     items,
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
		metrics:   nil, // Отключаем метрики для тестов
	}
}

// BatchInsert атомарно сохраняет пакет заказов вместе с их позициями.
//
// Все заказы и позиции пакета пишутся в одной транзакции: либо сохраняется
// весь пакет, либо ничего. Привязка позиций к заказам восстанавливается по
// позиционному соответствию входа и выхода BulkInsert. После успешного
// коммита публикуется уведомление на каждый заказ; ошибка публикации
// возвращается как *domain.NotificationError вместе с уже сохранёнными
// заказами — хранилище в этом случае не откатывается.
func (s *Service) BatchInsert(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	if len(orders) == 0 {
		return nil, nil
	}

	start := time.Now()
	if s.metrics != nil {
		s.metrics.RecordBatchStarted()
		defer func() {
			s.metrics.RecordBatchDuration(time.Since(start))
		}()
	}

	// Единый таймстемп на весь пакет.
	now := time.Now().UTC()

	parents := make([]domain.Order, len(orders))
	for i, order := range orders {
		parents[i] = order
		parents[i].ID = 0
		parents[i].Items = nil
		parents[i].CreatedAt = now
		parents[i].UpdatedAt = now
	}

	txCtx, tx, err := s.txManager.Begin(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to begin transaction")
		s.recordBatchFailed()
		return nil, err
	}

	insertedParents, err := s.orders.BulkInsert(txCtx, parents)
	if err != nil {
		s.rollback(ctx, tx)
		s.logger.WithError(err).WithField("orders", len(parents)).Error("bulk insert orders failed")
		s.recordBatchFailed()
		return nil, err
	}

	// Разворачиваем позиции в плоский список, привязывая к ID родителя
	// по позиции во входном пакете.
	var flat []domain.OrderItem
	itemCounts := make([]int, len(orders))
	for i, order := range orders {
		itemCounts[i] = len(order.Items)
		for _, item := range order.Items {
			item.ID = 0
			item.OrderID = insertedParents[i].ID
			item.CreatedAt = now
			item.UpdatedAt = now
			flat = append(flat, item)
		}
	}

	var insertedItems []domain.OrderItem
	if len(flat) > 0 {
		insertedItems, err = s.items.BulkInsert(txCtx, flat)
		if err != nil {
			s.rollback(ctx, tx)
			s.logger.WithError(err).WithField("items", len(flat)).Error("bulk insert order items failed")
			s.recordBatchFailed()
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		// Обе реализации Tx помечают хэндл завершённым до фактического
		// коммита, поэтому откат здесь обычно вернёт ErrTxFinished; вызов
		// оставлен на случай реализации, где хэндл переживает сбой коммита.
		s.rollback(ctx, tx)
		s.logger.WithError(err).Error("failed to commit batch")
		s.recordBatchFailed()
		return nil, err
	}

	// Собираем результат: позиции возвращаются в порядке входа, поэтому
	// нарезаем плоский список по исходным счётчикам.
	result := make([]domain.Order, len(insertedParents))
	offset := 0
	for i, parent := range insertedParents {
		result[i] = parent
		if itemCounts[i] > 0 {
			result[i].Items = insertedItems[offset : offset+itemCounts[i]]
			offset += itemCounts[i]
		}
	}

	if s.metrics != nil {
		s.metrics.RecordBatchInserted(len(result), len(insertedItems))
	}
	s.logger.WithFields(log.Fields{
		"orders": len(result),
		"items":  len(insertedItems),
	}).Info("order batch persisted")

	if err := s.publisher.PublishOrderCreated(ctx, result); err != nil {
		if s.metrics != nil {
			s.metrics.RecordPublishFailure()
		}
		s.logger.WithError(err).WithField("orders", len(result)).Warn("post-commit notification publish failed")
		return result, &domain.NotificationError{Err: err}
	}

	return result, nil
}

// GetOrders возвращает страницу заказов по фильтру запроса.
// Позиции подгружаются одним дополнительным запросом только при IncludeItems.
func (s *Service) GetOrders(ctx context.Context, query Query) ([]domain.Order, error) {
	start := time.Now()
	if s.metrics != nil {
		defer func() {
			s.metrics.RecordQueryDuration(time.Since(start))
		}()
	}

	page := query.Page
	if page <= 0 {
		page = 1
	}

	filter := domain.OrderFilter{
		IDs:         query.IDs,
		CustomerIDs: query.CustomerIDs,
		Limit:       query.PageSize,
	}
	if query.PageSize > 0 {
		filter.Offset = (page - 1) * query.PageSize
	}

	orders, err := s.orders.Query(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Error("query orders failed")
		return nil, err
	}
	if len(orders) == 0 || !query.IncludeItems {
		return orders, nil
	}

	orderIDs := make([]int64, len(orders))
	for i, order := range orders {
		orderIDs[i] = order.ID
	}

	items, err := s.items.Query(ctx, domain.OrderItemFilter{OrderIDs: orderIDs})
	if err != nil {
		s.logger.WithError(err).Error("query order items failed")
		return nil, err
	}

	byOrder := make(map[int64][]domain.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}

	return orders, nil
}

func (s *Service) recordBatchFailed() {
	if s.metrics != nil {
		s.metrics.RecordBatchFailed()
	}
}

// rollback откатывает транзакцию даже при отменённом исходном контексте:
// сбой запроса не должен оставлять открытую транзакцию в хранилище.
// ErrTxFinished не логируется: хэндл уже завершён, откатывать нечего.
func (s *Service) rollback(ctx context.Context, tx domain.Tx) {
	err := tx.Rollback(context.WithoutCancel(ctx))
	if err != nil && !errors.Is(err, domain.ErrTxFinished) {
		s.logger.WithError(err).Error("rollback failed")
	}
}
