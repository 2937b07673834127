package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// txContextKey — ключ открытого scope внутри контекста.
type txContextKey struct{}

// txManager реализует domain.TxManager для in-memory хранилища.
//
// В отличие от настоящей БД записи видны другим читателям уже до коммита;
// rollback компенсирует их через undo-лог. Для юнит-тестов пайплайна
// записи этого достаточно: свойство "после rollback ничего не видно"
// выполняется.
type txManager struct {
	store *Store
}

// NewTxManager создаёт менеджер транзакций для in-memory хранилища.
func NewTxManager(store *Store) domain.TxManager {
	return &txManager{store: store}
}

func (m *txManager) Begin(ctx context.Context) (context.Context, domain.Tx, error) {
	scope := &txScope{}
	return context.WithValue(ctx, txContextKey{}, scope), scope, nil
}

// txScope копит undo-действия зарегистрированных вставок.
// Commit и Rollback — терминальные операции "ровно один раз".
type txScope struct {
	mu   sync.Mutex
	done bool
	undo []func()
}

// onRollback регистрирует компенсацию, выполняемую при откате.
func (s *txScope) onRollback(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undo = append(s.undo, fn)
}

func (s *txScope) Commit(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return domain.ErrTxFinished
	}
	s.done = true
	s.undo = nil
	return nil
}

func (s *txScope) Rollback(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return domain.ErrTxFinished
	}
	s.done = true

	// Компенсации применяются в обратном порядке регистрации.
	for i := len(s.undo) - 1; i >= 0; i-- {
		s.undo[i]()
	}
	s.undo = nil
	return nil
}

// scopeFrom возвращает открытый scope из контекста, если он есть.
func scopeFrom(ctx context.Context) *txScope {
	scope, _ := ctx.Value(txContextKey{}).(*txScope)
	return scope
}

var _ domain.TxManager = (*txManager)(nil)
var _ domain.Tx = (*txScope)(nil)
