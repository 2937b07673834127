package domain

import "errors"

var (
	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствующего адреса доставки.
	ErrDeliveryAddressRequired = errors.New("delivery_address is required")
	// Ошибка отсутствующего кода валюты.
	ErrCurrencyRequired = errors.New("total_price_currency is required")
	// Ошибка отрицательной суммы заказа.
	ErrAmountNegative = errors.New("total_price_cents must be non-negative")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price_cents must be non-negative")
	// Ошибка отсутствующего кода валюты у позиции.
	ErrItemCurrencyRequired = errors.New("item price_currency is required")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrTxFinished сигнализирует о повторном завершении транзакции:
	// commit и rollback — терминальные операции, каждая допустима не более одного раза.
	ErrTxFinished = errors.New("transaction already finished")
)

// NotificationError означает, что пакет заказов уже надёжно закоммичен,
// но публикация уведомлений не удалась. Хранилище при этом НЕ откатывается:
// вызывающая сторона должна отличать "ничего не сохранено" от
// "сохранено, но не опубликовано".
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return "orders persisted but notification publish failed: " + e.Err.Error()
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// IsNotificationError проверяет, относится ли ошибка к стадии публикации после коммита.
func IsNotificationError(err error) bool {
	var notifyErr *NotificationError
	return errors.As(err, &notifyErr)
}
