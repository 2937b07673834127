package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// helper для создания базового заказа с одной позицией.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		CustomerID:         1,
		DeliveryAddress:    "Москва, ул. Ленина, 1",
		TotalPriceCents:    500,
		TotalPriceCurrency: "RUB",
		Items: []domain.OrderItem{
			{
				ProductID:     10,
				Quantity:      5,
				ProductTitle:  "Товар",
				ProductURL:    "https://shop.local/products/10",
				PriceCents:    100,
				PriceCurrency: "RUB",
				CreatedAt:     now,
				UpdatedAt:     now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOrderValidateInvariants_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestOrderValidateInvariants_NoItemsOk(t *testing.T) {
	// Заказ без позиций допустим: позиции могут отсутствовать.
	order := makeOrder()
	order.Items = nil
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors for empty items, got %v", errs)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
		want error
	}{
		{
			name: "no customer",
			mut: func(o *domain.Order) {
				o.CustomerID = 0
			},
			want: domain.ErrCustomerRequired,
		},
		{
			name: "no delivery address",
			mut: func(o *domain.Order) {
				o.DeliveryAddress = ""
			},
			want: domain.ErrDeliveryAddressRequired,
		},
		{
			name: "no currency",
			mut: func(o *domain.Order) {
				o.TotalPriceCurrency = ""
			},
			want: domain.ErrCurrencyRequired,
		},
		{
			name: "negative total",
			mut: func(o *domain.Order) {
				o.TotalPriceCents = -1
			},
			want: domain.ErrAmountNegative,
		},
		{
			name: "zero quantity",
			mut: func(o *domain.Order) {
				o.Items[0].Quantity = 0
			},
			want: domain.ErrItemQtyInvalid,
		},
		{
			name: "negative item price",
			mut: func(o *domain.Order) {
				o.Items[0].PriceCents = -100
			},
			want: domain.ErrItemPriceInvalid,
		},
		{
			name: "no item currency",
			mut: func(o *domain.Order) {
				o.Items[0].PriceCurrency = ""
			},
			want: domain.ErrItemCurrencyRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)

			errs := order.ValidateInvariants()
			if len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
			found := false
			for _, err := range errs {
				if errors.Is(err, tc.want) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %v among %v", tc.want, errs)
			}
		})
	}
}
