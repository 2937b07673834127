package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
)

// Producer представляет Kafka producer для публикации событий.
type Producer struct {
	producer sarama.SyncProducer
	client   sarama.Client
	logger   *log.Entry
}

// NewProducer создает новый Kafka producer.
func NewProducer(brokers []string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll // Wait for all in-sync replicas
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true // Включаем идемпотентность
	config.Net.MaxOpenRequests = 1    // Для идемпотентности

	client, err := sarama.NewClient(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	producer, err := sarama.NewSyncProducerFromClient(client)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		client:   client,
		logger:   log.WithField("component", "kafka-producer"),
	}, nil
}

// Ping проверяет связность с кластером через обновление метаданных.
// Для producer-а, собранного поверх внешнего SyncProducer (тесты),
// клиент отсутствует и проверка считается пройденной.
func (p *Producer) Ping(_ context.Context) error {
	if p.client == nil {
		return nil
	}
	if err := p.client.RefreshMetadata(); err != nil {
		return fmt.Errorf("refresh kafka metadata: %w", err)
	}
	return nil
}

// NewProducerWithSyncProducer оборачивает готовый sarama.SyncProducer.
// Применяется, когда соединение создаётся снаружи (например, mock в тестах).
func NewProducerWithSyncProducer(producer sarama.SyncProducer) *Producer {
	return &Producer{
		producer: producer,
		logger:   log.WithField("component", "kafka-producer"),
	}
}

// PublishEvent публикует одно событие в Kafka.
func (p *Producer) PublishEvent(topic string, key string, event interface{}) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(eventData),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).WithFields(log.Fields{
			"topic": topic,
			"key":   key,
		}).Error("failed to send message to kafka")
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.WithFields(log.Fields{
		"topic":     topic,
		"key":       key,
		"partition": partition,
		"offset":    offset,
	}).Debug("message sent to kafka")

	return nil
}

// PublishEvents публикует пакет событий одним вызовом SendMessages.
// keys[i] — ключ партиционирования для events[i].
func (p *Producer) PublishEvents(topic string, keys []string, events []interface{}) error {
	if len(keys) != len(events) {
		return fmt.Errorf("keys/events length mismatch: %d vs %d", len(keys), len(events))
	}
	if len(events) == 0 {
		return nil
	}

	msgs := make([]*sarama.ProducerMessage, 0, len(events))
	for i, event := range events {
		eventData, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event %d: %w", i, err)
		}
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic:     topic,
			Key:       sarama.StringEncoder(keys[i]),
			Value:     sarama.ByteEncoder(eventData),
			Timestamp: time.Now(),
		})
	}

	if err := p.producer.SendMessages(msgs); err != nil {
		p.logger.WithError(err).WithFields(log.Fields{
			"topic": topic,
			"count": len(msgs),
		}).Error("failed to send message batch to kafka")
		return fmt.Errorf("failed to send message batch: %w", err)
	}

	p.logger.WithFields(log.Fields{
		"topic": topic,
		"count": len(msgs),
	}).Debug("message batch sent to kafka")

	return nil
}

// Close закрывает producer и его клиент.
func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	if p.client != nil {
		if err := p.client.Close(); err != nil {
			return fmt.Errorf("failed to close kafka client: %w", err)
		}
	}
	return nil
}
