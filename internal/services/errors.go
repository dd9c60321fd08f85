package services

import (
	"github.com/go-faster/errors"
)

// ErrOrderNotFound is returned by the exporter when the order lookup matched
// no row.
var ErrOrderNotFound = errors.New("Order not found")

// OrderFetchError reports a failed order lookup. Its message is what the
// caller sees in the error payload.
type OrderFetchError struct {
	Err error
}

func (e *OrderFetchError) Error() string {
	return "Error fetching order: " + e.Err.Error()
}

func (e *OrderFetchError) Unwrap() error {
	return e.Err
}
