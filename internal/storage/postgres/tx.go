package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// txContextKey — ключ открытой транзакции внутри контекста запроса.
type txContextKey struct{}

// querier объединяет *sql.DB и *sql.Tx: репозитории работают через него,
// не зная, открыт ли transactional scope.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// querierFrom возвращает транзакцию из контекста, если scope открыт на этом
// пути вызова, иначе — пул соединений.
func querierFrom(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// txManager реализует domain.TxManager поверх database/sql.
type txManager struct {
	db *sql.DB
}

// NewTxManager создаёт менеджер транзакций для PostgreSQL-хранилища.
func NewTxManager(store *Store) domain.TxManager {
	return &txManager{db: store.DB()}
}

// Begin открывает транзакцию и возвращает контекст, несущий её для репозиториев,
// вместе с явным хэндлом commit/rollback.
func (m *txManager) Begin(ctx context.Context) (context.Context, domain.Tx, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return ctx, nil, fmt.Errorf("begin tx: %w", err)
	}
	return context.WithValue(ctx, txContextKey{}, tx), &txHandle{tx: tx}, nil
}

// txHandle — явный хэндл транзакции. Первая из операций commit/rollback
// завершает транзакцию, любая последующая возвращает ErrTxFinished.
type txHandle struct {
	mu   sync.Mutex
	tx   *sql.Tx
	done bool
}

func (h *txHandle) Commit(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.done {
		return domain.ErrTxFinished
	}
	h.done = true

	if err := h.tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (h *txHandle) Rollback(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.done {
		return domain.ErrTxFinished
	}
	h.done = true

	if err := h.tx.Rollback(); err != nil {
		return fmt.Errorf("rollback tx: %w", err)
	}
	return nil
}

var _ domain.TxManager = (*txManager)(nil)
var _ domain.Tx = (*txHandle)(nil)
