package repositories

import (
	"context"

	"order-functions-api/internal/models"
)

// OrderRepository defines read access to orders and the order details view
type OrderRepository interface {
	// GetOrderDetails retrieves the order_details view row for an order
	GetOrderDetails(ctx context.Context, scope AccessScope, orderID string) (*models.OrderDetails, error)

	// GetOrderWithItems retrieves an order with its line items and product names
	GetOrderWithItems(ctx context.Context, scope AccessScope, orderID string) (*models.Order, error)
}

// ProfileRepository defines read access to purchaser profiles
type ProfileRepository interface {
	// GetByID retrieves a purchaser profile by user ID
	GetByID(ctx context.Context, scope AccessScope, userID string) (*models.PurchaserProfile, error)
}

// RepositoryContainer holds all repository instances
type RepositoryContainer struct {
	OrderRepo   OrderRepository
	ProfileRepo ProfileRepository
}

// RepositoryManager owns the data store connection behind a set of repositories
type RepositoryManager interface {
	// Repositories returns the repositories bound to this connection
	Repositories() *RepositoryContainer

	// Ping checks that the data store is reachable
	Ping(ctx context.Context) error

	// Close releases the underlying connection
	Close() error
}
