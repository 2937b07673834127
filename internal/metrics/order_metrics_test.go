package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewOrderMetrics_Collectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(registry)

	if metrics == nil {
		t.Fatal("newOrderMetricsWithRegisterer should not return nil")
	}
	if metrics.batchesTotal == nil {
		t.Error("batchesTotal counter should not be nil")
	}
	if metrics.batchesFailed == nil {
		t.Error("batchesFailed counter should not be nil")
	}
	if metrics.ordersInserted == nil {
		t.Error("ordersInserted counter should not be nil")
	}
	if metrics.itemsInserted == nil {
		t.Error("itemsInserted counter should not be nil")
	}
	if metrics.publishFailures == nil {
		t.Error("publishFailures counter should not be nil")
	}
	if metrics.batchDuration == nil {
		t.Error("batchDuration histogram should not be nil")
	}
	if metrics.queryDuration == nil {
		t.Error("queryDuration histogram should not be nil")
	}
}

func TestOrderMetrics_RecordBatchInserted(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(registry)

	metrics.RecordBatchStarted()
	metrics.RecordBatchInserted(2, 5)
	metrics.RecordBatchDuration(100 * time.Millisecond)
	metrics.RecordPublishFailure()

	if got := counterValue(t, metrics.ordersInserted); got != 2 {
		t.Fatalf("expected 2 inserted orders, got %v", got)
	}
	if got := counterValue(t, metrics.itemsInserted); got != 5 {
		t.Fatalf("expected 5 inserted items, got %v", got)
	}
	if got := counterValue(t, metrics.publishFailures); got != 1 {
		t.Fatalf("expected 1 publish failure, got %v", got)
	}
}

func TestOrderMetrics_DoubleRegistrationReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := newOrderMetricsWithRegisterer(registry)
	second := newOrderMetricsWithRegisterer(registry)

	first.RecordBatchStarted()
	second.RecordBatchStarted()

	if got := counterValue(t, first.batchesTotal); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	return metric.GetCounter().GetValue()
}
