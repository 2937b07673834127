package domain

import "context"

// Tx — явный хэндл открытой транзакции. Commit и Rollback — терминальные
// операции "ровно один раз": повторный вызов любой из них после первой
// завершившейся возвращает ErrTxFinished. Savepoint-ы и вложенные
// транзакции не поддерживаются.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager открывает транзакционный scope. Возвращаемый контекст несёт
// открытую транзакцию: репозитории, вызванные с этим контекстом, выполняют
// операции внутри неё. Scope не реентерабелен и принадлежит ровно одному
// логическому запросу на всё время его жизни.
type TxManager interface {
	Begin(ctx context.Context) (context.Context, Tx, error)
}

// OrderEventPublisher публикует уведомления о созданных заказах:
// одно сообщение на каждый заказ. Вызывается только после успешного коммита.
// Доставка at-least-once; повторы и компенсации на этом уровне не выполняются.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, orders []Order) error
}
