package services

import (
	"context"

	"order-functions-api/internal/models"
	"order-functions-api/internal/repositories"
)

// NotificationService sends (simulated) order confirmations
type NotificationService interface {
	// SendOrderConfirmation fetches the order summary and writes the
	// confirmation email to the log instead of delivering it.
	SendOrderConfirmation(ctx context.Context, scope repositories.AccessScope, orderID, customerEmail string) (*models.OrderDetails, error)
}

// ExportService renders orders as CSV downloads
type ExportService interface {
	ExportOrderCSV(ctx context.Context, scope repositories.AccessScope, orderID string) (*OrderExport, error)
}

// OrderExport is a rendered CSV document for one order
type OrderExport struct {
	OrderID      string
	CustomerName string
	Filename     string
	Content      string
}
