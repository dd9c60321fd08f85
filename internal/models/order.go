package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderDetails is a row of the order_details view: the denormalized order
// summary the confirmation notifier reads without joining.
type OrderDetails struct {
	OrderID      string          `json:"order_id" db:"order_id"`
	UserID       string          `json:"user_id" db:"user_id"`
	CustomerName string          `json:"customer_name" db:"customer_name"`
	OrderTotal   decimal.Decimal `json:"order_total" db:"order_total"`
	OrderStatus  string          `json:"order_status" db:"order_status"`
	TotalItems   int64           `json:"total_items" db:"total_items"`
}

// Order represents an order together with its line items
type Order struct {
	ID        string          `json:"id" db:"id"`
	UserID    string          `json:"user_id" db:"user_id"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Status    string          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	Items     []OrderLineItem `json:"order_items"`
}

// Validate checks the fields every exported order must carry
func (o *Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return fmt.Errorf("order ID is required")
	}
	if o.CreatedAt.IsZero() {
		return fmt.Errorf("order %s has no creation time", o.ID)
	}
	for i, item := range o.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("line item %d: %w", i, err)
		}
	}
	return nil
}

// ItemCount returns the sum of quantities across all line items
func (o *Order) ItemCount() int64 {
	var n int64
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
