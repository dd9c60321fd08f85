package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"order-functions-api/internal/models"
	"order-functions-api/internal/repositories"
)

const (
	getOrderDetailsSQL = `SELECT order_id::text, COALESCE(user_id::text, ''), customer_name, order_total, order_status, total_items
		FROM order_details WHERE order_id::text = $1`

	getOrderSQL = `SELECT id::text, COALESCE(user_id::text, ''), total, status, created_at
		FROM orders WHERE id::text = $1`

	getOrderItemsSQL = `SELECT oi.quantity, oi.price_at_time, COALESCE(p.name, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id::text = $1
		ORDER BY oi.created_at, oi.id`
)

var _ repositories.OrderRepository = (*OrderRepository)(nil)

// OrderRepository implements repositories.OrderRepository backed by PostgreSQL.
type OrderRepository struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool, logger *logrus.Logger) *OrderRepository {
	return &OrderRepository{pool: pool, logger: logger}
}

// GetOrderDetails returns the order_details view row for an order.
func (r *OrderRepository) GetOrderDetails(ctx context.Context, scope repositories.AccessScope, orderID string) (*models.OrderDetails, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, repositories.NewRepositoryError("validate", "order", orderID, repositories.ErrInvalidID)
	}

	var details models.OrderDetails
	err := withScope(ctx, r.pool, scope, func(tx pgx.Tx) error {
		filter, args := ownerFilter(scope, "user_id::text", 2)
		start := time.Now()
		rows, err := tx.Query(ctx, getOrderDetailsSQL+filter, append([]any{orderID}, args...)...)
		if err != nil {
			logQuery(r.logger, "get_order_details", "order_details", start, err)
			return repositories.NewRepositoryError("get_order_details", "order", orderID, err)
		}

		details, err = pgx.CollectExactlyOneRow(rows, scanOrderDetails)
		logQuery(r.logger, "get_order_details", "order_details", start, err)
		return exactlyOneError("get_order_details", orderID, err)
	})
	if err != nil {
		return nil, err
	}

	return &details, nil
}

// GetOrderWithItems returns an order with its line items and product names.
func (r *OrderRepository) GetOrderWithItems(ctx context.Context, scope repositories.AccessScope, orderID string) (*models.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, repositories.NewRepositoryError("validate", "order", orderID, repositories.ErrInvalidID)
	}

	var order models.Order
	err := withScope(ctx, r.pool, scope, func(tx pgx.Tx) error {
		filter, args := ownerFilter(scope, "user_id::text", 2)
		start := time.Now()
		rows, err := tx.Query(ctx, getOrderSQL+filter, append([]any{orderID}, args...)...)
		if err != nil {
			logQuery(r.logger, "get_order", "orders", start, err)
			return repositories.NewRepositoryError("get_order", "order", orderID, err)
		}

		order, err = pgx.CollectExactlyOneRow(rows, scanOrder)
		logQuery(r.logger, "get_order", "orders", start, err)
		if err := exactlyOneError("get_order", orderID, err); err != nil {
			return err
		}

		start = time.Now()
		rows, err = tx.Query(ctx, getOrderItemsSQL, order.ID)
		if err != nil {
			logQuery(r.logger, "get_order_items", "order_items", start, err)
			return repositories.NewRepositoryError("get_order_items", "order_item", orderID, err)
		}

		order.Items, err = pgx.CollectRows(rows, scanLineItem)
		logQuery(r.logger, "get_order_items", "order_items", start, err)
		if err != nil {
			return repositories.NewRepositoryError("get_order_items", "order_item", orderID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if order.Items == nil {
		order.Items = make([]models.OrderLineItem, 0)
	}
	return &order, nil
}

// exactlyOneError maps pgx's single-row collection errors onto the
// repository error taxonomy
func exactlyOneError(operation, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return repositories.NotFoundError("order", id)
	case errors.Is(err, pgx.ErrTooManyRows):
		return repositories.MultipleRowsError("order", id)
	default:
		return repositories.NewRepositoryError(operation, "order", id, err)
	}
}

func scanOrderDetails(row pgx.CollectableRow) (models.OrderDetails, error) {
	var (
		d     models.OrderDetails
		total decimal.Decimal
	)
	err := row.Scan(&d.OrderID, &d.UserID, &d.CustomerName, &total, &d.OrderStatus, &d.TotalItems)
	d.OrderTotal = total
	return d, err
}

func scanOrder(row pgx.CollectableRow) (models.Order, error) {
	var (
		o     models.Order
		total decimal.Decimal
	)
	err := row.Scan(&o.ID, &o.UserID, &total, &o.Status, &o.CreatedAt)
	o.Total = total
	return o, err
}

func scanLineItem(row pgx.CollectableRow) (models.OrderLineItem, error) {
	var (
		item  models.OrderLineItem
		price decimal.Decimal
	)
	err := row.Scan(&item.Quantity, &price, &item.ProductName)
	item.PriceAtTime = price
	return item, err
}
