package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

func TestTxManager_RollbackHidesWrites(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	manager := NewTxManager(store)
	repo := NewOrderRepository(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	txCtx, tx, err := manager.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	if _, err := repo.BulkInsert(txCtx, []domain.Order{makeIntegrationOrder(1, "rollback-me")}); err != nil {
		t.Fatalf("bulk insert in tx: %v", err)
	}

	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	// После rollback ничего не должно быть видно вне транзакции.
	orders, err := repo.Query(ctx, domain.OrderFilter{})
	if err != nil {
		t.Fatalf("query after rollback: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected no visible orders after rollback, got %d", len(orders))
	}
}

func TestTxManager_CommitMakesWritesVisible(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	manager := NewTxManager(store)
	repo := NewOrderRepository(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	txCtx, tx, err := manager.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	if _, err := repo.BulkInsert(txCtx, []domain.Order{makeIntegrationOrder(7, "commit-me")}); err != nil {
		t.Fatalf("bulk insert in tx: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	orders, err := repo.Query(ctx, domain.OrderFilter{CustomerIDs: []int64{7}})
	if err != nil {
		t.Fatalf("query after commit: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 visible order after commit, got %d", len(orders))
	}
}

func TestTxManager_TerminalOperationsAreExactlyOnce(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	manager := NewTxManager(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, tx, err := manager.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := tx.Commit(ctx); !errors.Is(err, domain.ErrTxFinished) {
		t.Fatalf("expected ErrTxFinished on second commit, got %v", err)
	}
	if err := tx.Rollback(ctx); !errors.Is(err, domain.ErrTxFinished) {
		t.Fatalf("expected ErrTxFinished on rollback after commit, got %v", err)
	}

	_, tx2, err := manager.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := tx2.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if err := tx2.Rollback(ctx); !errors.Is(err, domain.ErrTxFinished) {
		t.Fatalf("expected ErrTxFinished on second rollback, got %v", err)
	}
}
