package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики пайплайна записи и чтения заказов.
type OrderMetrics struct {
	// Счётчики пакетной записи
	batchesTotal  prometheus.Counter
	batchesFailed prometheus.Counter

	// Счётчики сохранённых записей
	ordersInserted prometheus.Counter
	itemsInserted  prometheus.Counter

	// Ошибки публикации после коммита
	publishFailures prometheus.Counter

	// Гистограммы времени выполнения
	batchDuration prometheus.Histogram
	queryDuration prometheus.Histogram
}

// NewOrderMetrics создаёт и регистрирует метрики в default registerer.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		batchesTotal: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_batch_inserts_total",
			Help: "Total number of batch insert operations started",
		}),
		batchesFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_batch_inserts_failed_total",
			Help: "Total number of batch insert operations rolled back",
		}),
		ordersInserted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_inserted_total",
			Help: "Total number of orders persisted",
		}),
		itemsInserted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_items_inserted_total",
			Help: "Total number of order items persisted",
		}),
		publishFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_notification_publish_failures_total",
			Help: "Total number of post-commit notification publish failures",
		}),
		batchDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "orders_batch_insert_duration_seconds",
			Help:    "Duration of batch insert operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		queryDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "orders_query_duration_seconds",
			Help:    "Duration of order query operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordBatchStarted увеличивает счётчик запущенных пакетных вставок.
func (m *OrderMetrics) RecordBatchStarted() {
	m.batchesTotal.Inc()
}

// RecordBatchFailed увеличивает счётчик откатившихся пакетных вставок.
func (m *OrderMetrics) RecordBatchFailed() {
	m.batchesFailed.Inc()
}

// RecordBatchInserted фиксирует количество сохранённых заказов и позиций.
func (m *OrderMetrics) RecordBatchInserted(orders, items int) {
	m.ordersInserted.Add(float64(orders))
	m.itemsInserted.Add(float64(items))
}

// RecordPublishFailure увеличивает счётчик ошибок публикации после коммита.
func (m *OrderMetrics) RecordPublishFailure() {
	m.publishFailures.Inc()
}

// RecordBatchDuration записывает время выполнения пакетной вставки.
func (m *OrderMetrics) RecordBatchDuration(duration time.Duration) {
	m.batchDuration.Observe(duration.Seconds())
}

// RecordQueryDuration записывает время выполнения чтения заказов.
func (m *OrderMetrics) RecordQueryDuration(duration time.Duration) {
	m.queryDuration.Observe(duration.Seconds())
}
