package app

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/health"
	"github.com/vladislavdragonenkov/orders/internal/messaging/kafka"
	ordersvc "github.com/vladislavdragonenkov/orders/internal/service/order"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders/internal/storage/postgres"
	"github.com/vladislavdragonenkov/orders/internal/version"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Orders        domain.OrderRepository
	Items         domain.OrderItemRepository
	TxManager     domain.TxManager
	Publisher     domain.OrderEventPublisher
	HealthHandler *health.Handler
	Logger        *log.Entry

	store         *postgres.Store
	kafkaProducer *kafka.Producer
}

// NewDependencies собирает зависимости согласно конфигурации: хранилище по
// выбранному драйверу, издатель уведомлений по наличию брокеров Kafka.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{
		Logger:        logger,
		HealthHandler: health.NewHandler(version.GetVersion()),
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("ensure schema: %w", err)
			}
		}
		deps.store = store
		deps.Orders = postgres.NewOrderRepository(store)
		deps.Items = postgres.NewOrderItemRepository(store)
		deps.TxManager = postgres.NewTxManager(store)
		deps.HealthHandler.RegisterCritical("postgres", store.Ping)
		logger.Info("postgres storage initialized")
	case StorageDriverMemory, "":
		store := memory.NewStore()
		deps.Orders = memory.NewOrderRepository(store)
		deps.Items = memory.NewOrderItemRepository(store)
		deps.TxManager = memory.NewTxManager(store)
		logger.Info("in-memory storage initialized")
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if brokers := splitBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		producer, err := kafka.NewProducer(brokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			deps.kafkaProducer = producer
			deps.Publisher = kafka.NewOrderEventsPublisher(producer, cfg.OrderEventsTopic)
			// Брокер не критичен для готовности: пакеты сохраняются и без
			// него, сбой публикации отражается в ответе записи.
			deps.HealthHandler.RegisterOptional("kafka", producer.Ping)
			logger.WithField("brokers", brokers).Info("kafka producer initialized")
		}
	}
	if deps.Publisher == nil {
		deps.Publisher = ordersvc.NewNoopPublisher(logger.WithField("component", "order-publisher-noop"))
	}

	return deps, nil
}

// Close освобождает внешние ресурсы в обратном порядке инициализации.
func (d *Dependencies) Close() {
	if d.kafkaProducer != nil {
		if err := d.kafkaProducer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			d.Logger.Info("kafka producer closed")
		}
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}

func splitBrokers(raw string) []string {
	if raw == "" {
		return nil
	}
	var brokers []string
	for _, broker := range strings.Split(raw, ",") {
		broker = strings.TrimSpace(broker)
		if broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
