package domain

import "time"

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ID присваивается хранилищем при вставке.
	ID int64
	// OrderID — ссылка на родительский заказ (orders.id).
	OrderID int64
	// ProductID — внешний идентификатор товара.
	ProductID int64
	// Quantity — количество единиц товара, строго положительное.
	Quantity int32
	// ProductTitle и ProductURL — отображаемые данные товара, здесь не валидируются.
	ProductTitle string
	ProductURL   string
	// PriceCents — цена за единицу в минимальных денежных единицах (например, копейки).
	PriceCents    int64
	PriceCurrency string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Order агрегирует заказ и его позиции. Заказ является aggregate root:
// жизненный цикл позиций полностью определяется заказом.
type Order struct {
	// ID присваивается хранилищем при вставке.
	ID              int64
	CustomerID      int64
	DeliveryAddress string
	// TotalPriceCents — сумма заказа в минимальных денежных единицах.
	// Денежные суммы никогда не хранятся как float.
	TotalPriceCents    int64
	TotalPriceCurrency string
	Items              []OrderItem
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID <= 0 {
		errs = append(errs, ErrCustomerRequired)
	}
	if o.DeliveryAddress == "" {
		errs = append(errs, ErrDeliveryAddressRequired)
	}
	if o.TotalPriceCurrency == "" {
		errs = append(errs, ErrCurrencyRequired)
	}
	if o.TotalPriceCents < 0 {
		errs = append(errs, ErrAmountNegative)
	}

	for _, item := range o.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.PriceCents < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
		if item.PriceCurrency == "" {
			errs = append(errs, ErrItemCurrencyRequired)
		}
	}

	return errs
}
