package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"order-functions-api/internal/database"
)

// Seed loads fixtures into the database in one transaction. Existing rows
// with the same IDs are replaced.
func Seed(ctx context.Context, db *sql.DB, fixtures *database.Fixtures) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range fixtures.Profiles {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO profiles (id, full_name, email) VALUES (?, ?, ?)`,
			p.ID, p.FullName, p.Email,
		); err != nil {
			return fmt.Errorf("failed to seed profile %s: %w", p.ID, err)
		}
	}

	for _, p := range fixtures.Products {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO products (id, name, price) VALUES (?, ?, ?)`,
			p.ID, p.Name, p.Price,
		); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}

	for _, o := range fixtures.Orders {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO orders (id, user_id, total, status, created_at) VALUES (?, ?, ?, ?, ?)`,
			o.ID, o.UserID, o.Total(), o.Status, o.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to seed order %s: %w", o.ID, err)
		}

		for i, item := range o.Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO order_items (id, order_id, product_id, quantity, price_at_time, sort_order) VALUES (?, ?, ?, ?, ?, ?)`,
				item.ID, o.ID, item.ProductID, item.Quantity, item.Price, i,
			); err != nil {
				return fmt.Errorf("failed to seed order item %s: %w", item.ID, err)
			}
		}
	}

	return tx.Commit()
}
