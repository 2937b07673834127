package kafka

import (
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
)

func newMockedProducer(t *testing.T) (*Producer, *mocks.SyncProducer) {
	t.Helper()

	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}
	return producer, mockProducer
}

func TestProducer_PublishEvent(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	mockProducer.ExpectSendMessageAndSucceed()

	event := map[string]any{"customer_id": int64(1)}
	if err := producer.PublishEvent(TopicOrderEvents, "1", event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	if err := producer.PublishEvent(TopicOrderEvents, "1", map[string]any{}); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvents_Batch(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	// Одно ожидание на каждое сообщение пакета.
	mockProducer.ExpectSendMessageAndSucceed()
	mockProducer.ExpectSendMessageAndSucceed()

	keys := []string{"1", "2"}
	events := []interface{}{
		map[string]any{"customer_id": int64(1)},
		map[string]any{"customer_id": int64(2)},
	}
	if err := producer.PublishEvents(TopicOrderEvents, keys, events); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PingWithoutClient(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	// Producer поверх внешнего SyncProducer не владеет клиентом:
	// проверка связности считается пройденной.
	if err := producer.Ping(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvents_LengthMismatch(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	err := producer.PublishEvents(TopicOrderEvents, []string{"1"}, []interface{}{})
	if err == nil {
		t.Fatal("expected error for keys/events mismatch")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}
