package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestNewDependencies_MemoryDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverMemory

	deps, err := NewDependencies(context.Background(), cfg, log.WithField("test", "deps"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer deps.Close()

	if deps.Orders == nil {
		t.Error("Orders repository should not be nil")
	}
	if deps.Items == nil {
		t.Error("Items repository should not be nil")
	}
	if deps.TxManager == nil {
		t.Error("TxManager should not be nil")
	}
	if deps.Publisher == nil {
		t.Error("Publisher should fall back to noop when kafka is not configured")
	}
	if deps.HealthHandler == nil {
		t.Error("HealthHandler should not be nil")
	}
}

func TestNewDependencies_EmptyDriverDefaultsToMemory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = ""

	deps, err := NewDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer deps.Close()

	if deps.Orders == nil || deps.TxManager == nil {
		t.Error("empty driver should initialize in-memory storage")
	}
}

func TestNewDependencies_UnknownDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "cassandra"

	if _, err := NewDependencies(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown storage driver")
	}
}

func TestNewDependencies_MemoryDriverIsReady(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverMemory

	deps, err := NewDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer deps.Close()

	// In-memory хранилище не регистрирует критичных проб: сервис готов.
	w := httptest.NewRecorder()
	deps.HealthHandler.ReadinessHandler(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 from readiness, got %d", w.Code)
	}
}

func TestDependencies_CloseIsSafeWithoutExternalResources(t *testing.T) {
	cfg := DefaultConfig()
	deps, err := NewDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Память и noop publisher: закрывать нечего, но Close не должен паниковать.
	deps.Close()
}
