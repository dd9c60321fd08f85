package sqlite

import (
	"context"
	"database/sql"

	"order-functions-api/internal/models"
	"order-functions-api/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// OrderRepository implements the OrderRepository interface for SQLite
type OrderRepository struct {
	*BaseRepository[models.Order]
	details *BaseRepository[models.OrderDetails]
}

// NewOrderRepository creates a new SQLite order repository
func NewOrderRepository(db *sql.DB, logger *logrus.Logger) repositories.OrderRepository {
	return &OrderRepository{
		BaseRepository: NewBaseRepository[models.Order](db, "orders", logger),
		details:        NewBaseRepository[models.OrderDetails](db, "order_details", logger),
	}
}

// GetOrderDetails retrieves the order_details row for an order
func (r *OrderRepository) GetOrderDetails(ctx context.Context, scope repositories.AccessScope, orderID string) (*models.OrderDetails, error) {
	if err := r.details.validateID(orderID); err != nil {
		return nil, err
	}

	filter, filterArgs := r.details.scopeFilter(scope, "user_id")
	query := `
		SELECT order_id, COALESCE(user_id, ''), customer_name, order_total, order_status, total_items
		FROM order_details
		WHERE order_id = ?` + filter + `
		LIMIT 2`

	args := append([]interface{}{orderID}, filterArgs...)
	return r.details.queryExactlyOne(ctx, "get_order_details", "order", orderID, query, scanOrderDetails, args...)
}

// GetOrderWithItems retrieves an order with its line items, in insertion order
func (r *OrderRepository) GetOrderWithItems(ctx context.Context, scope repositories.AccessScope, orderID string) (*models.Order, error) {
	if err := r.validateID(orderID); err != nil {
		return nil, err
	}

	filter, filterArgs := r.scopeFilter(scope, "user_id")
	query := `
		SELECT id, COALESCE(user_id, ''), total, status, created_at
		FROM orders
		WHERE id = ?` + filter + `
		LIMIT 2`

	args := append([]interface{}{orderID}, filterArgs...)
	order, err := r.queryExactlyOne(ctx, "get_order", "order", orderID, query, scanOrder, args...)
	if err != nil {
		return nil, err
	}

	items, err := r.getLineItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *OrderRepository) getLineItems(ctx context.Context, orderID string) ([]models.OrderLineItem, error) {
	query := `
		SELECT oi.quantity, oi.price_at_time, COALESCE(p.name, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY oi.sort_order, oi.rowid`

	rows, err := r.executeQuery(ctx, "get_order_items", query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.OrderLineItem, 0)
	for rows.Next() {
		var item models.OrderLineItem
		if err := rows.Scan(&item.Quantity, &item.PriceAtTime, &item.ProductName); err != nil {
			return nil, repositories.NewRepositoryError("get_order_items", "order_item", orderID, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("get_order_items", "order_item", orderID, err)
	}

	return items, nil
}

func scanOrderDetails(rows *sql.Rows) (*models.OrderDetails, error) {
	details := &models.OrderDetails{}
	err := rows.Scan(
		&details.OrderID,
		&details.UserID,
		&details.CustomerName,
		&details.OrderTotal,
		&details.OrderStatus,
		&details.TotalItems,
	)
	if err != nil {
		return nil, err
	}
	return details, nil
}

func scanOrder(rows *sql.Rows) (*models.Order, error) {
	order := &models.Order{}
	var total decimal.Decimal
	err := rows.Scan(
		&order.ID,
		&order.UserID,
		&total,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.Total = total
	return order, nil
}
