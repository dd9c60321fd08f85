package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderLineItem is one product entry within an order. Quantity and price are
// captured at purchase time and never recomputed from the product catalog.
type OrderLineItem struct {
	Quantity    int64           `json:"quantity" db:"quantity"`
	PriceAtTime decimal.Decimal `json:"price_at_time" db:"price_at_time"`
	ProductName string          `json:"product_name" db:"product_name"`
}

// Subtotal returns quantity × unit price without any rounding
func (i OrderLineItem) Subtotal() decimal.Decimal {
	return i.PriceAtTime.Mul(decimal.NewFromInt(i.Quantity))
}

// Validate validates the line item
func (i OrderLineItem) Validate() error {
	if i.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	if i.PriceAtTime.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}
