package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"order-functions-api/internal/database"
)

// Seed upserts fixtures in one transaction. Line item creation times are
// staggered from the order's so they read back in fixture order.
func Seed(ctx context.Context, pool *pgxpool.Pool, fixtures *database.Fixtures) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, p := range fixtures.Profiles {
			if _, err := tx.Exec(ctx,
				`INSERT INTO profiles (id, full_name, email) VALUES ($1, $2, $3)
				ON CONFLICT (id) DO UPDATE SET full_name = EXCLUDED.full_name, email = EXCLUDED.email`,
				p.ID, p.FullName, p.Email,
			); err != nil {
				return fmt.Errorf("failed to seed profile %s: %w", p.ID, err)
			}
		}

		for _, p := range fixtures.Products {
			if _, err := tx.Exec(ctx,
				`INSERT INTO products (id, name, price) VALUES ($1, $2, $3)
				ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price`,
				p.ID, p.Name, p.Price,
			); err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
			}
		}

		for _, o := range fixtures.Orders {
			if _, err := tx.Exec(ctx,
				`INSERT INTO orders (id, user_id, total, status, created_at) VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id, total = EXCLUDED.total,
					status = EXCLUDED.status, created_at = EXCLUDED.created_at`,
				o.ID, o.UserID, o.Total(), o.Status, o.CreatedAt,
			); err != nil {
				return fmt.Errorf("failed to seed order %s: %w", o.ID, err)
			}

			for i, item := range o.Items {
				if _, err := tx.Exec(ctx,
					`INSERT INTO order_items (id, order_id, product_id, quantity, price_at_time, created_at)
					VALUES ($1, $2, $3, $4, $5, $6)
					ON CONFLICT (id) DO UPDATE SET quantity = EXCLUDED.quantity, price_at_time = EXCLUDED.price_at_time,
						created_at = EXCLUDED.created_at`,
					item.ID, o.ID, item.ProductID, item.Quantity, item.Price, o.CreatedAt.Add(time.Duration(i)*time.Millisecond),
				); err != nil {
					return fmt.Errorf("failed to seed order item %s: %w", item.ID, err)
				}
			}
		}

		return nil
	})
}
