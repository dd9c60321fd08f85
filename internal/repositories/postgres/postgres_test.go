package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-functions-api/internal/database"
	"order-functions-api/internal/repositories"
)

// setupTestPool connects to TEST_DATABASE_URL, migrates and seeds it. Tests
// are skipped when no database is configured or reachable.
func setupTestPool(t *testing.T) (*pgxpool.Pool, *database.Fixtures) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, dsn, PoolOptions{MaxConns: 4})
	if err != nil {
		t.Skipf("database not available: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("database not reachable: %v", err)
	}
	t.Cleanup(pool.Close)

	logger := testLogger()
	src, err := database.ParseDataSource(dsn)
	require.NoError(t, err)
	require.NoError(t, database.NewMigrationManager(src, logger).RunMigrations())

	fixtures := database.DemoFixtures()
	require.NoError(t, Seed(ctx, pool, fixtures))

	return pool, fixtures
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

func TestOrderRepository_GetOrderWithItems(t *testing.T) {
	pool, fixtures := setupTestPool(t)
	repo := NewOrderRepository(pool, testLogger())

	seeded := fixtures.Orders[0]
	order, err := repo.GetOrderWithItems(context.Background(), repositories.ServiceScope(), seeded.ID)
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, order.ID)
	assert.Equal(t, seeded.UserID, order.UserID)
	assert.Equal(t, "25", order.Total.String())
	assert.Equal(t, "paid", order.Status)
	assert.True(t, seeded.CreatedAt.Equal(order.CreatedAt))

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Widget", order.Items[0].ProductName)
	assert.Equal(t, int64(2), order.Items[0].Quantity)
	assert.Equal(t, "20", order.Items[0].Subtotal().String())
	assert.Equal(t, "Gadget", order.Items[1].ProductName)
}

func TestOrderRepository_NotFound(t *testing.T) {
	pool, _ := setupTestPool(t)
	repo := NewOrderRepository(pool, testLogger())
	ctx := context.Background()

	_, err := repo.GetOrderWithItems(ctx, repositories.ServiceScope(), "00000000-0000-0000-0000-000000000000")
	assert.True(t, repositories.IsNotFound(err))

	_, err = repo.GetOrderDetails(ctx, repositories.ServiceScope(), "not-a-uuid")
	assert.True(t, repositories.IsNotFound(err))

	_, err = repo.GetOrderDetails(ctx, repositories.ServiceScope(), " ")
	assert.ErrorIs(t, err, repositories.ErrInvalidID)
}

func TestOrderRepository_GetOrderDetails(t *testing.T) {
	pool, fixtures := setupTestPool(t)
	repo := NewOrderRepository(pool, testLogger())

	seeded := fixtures.Orders[0]
	details, err := repo.GetOrderDetails(context.Background(), repositories.ServiceScope(), seeded.ID)
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, details.OrderID)
	assert.Equal(t, "Jane Doe", details.CustomerName)
	assert.Equal(t, "25", details.OrderTotal.String())
	assert.Equal(t, int64(3), details.TotalItems)
}

func TestOrderRepository_UserScope(t *testing.T) {
	pool, fixtures := setupTestPool(t)
	repo := NewOrderRepository(pool, testLogger())
	ctx := context.Background()

	janeOrder := fixtures.Orders[0]
	otherOrder := fixtures.Orders[1]
	scope := repositories.UserScope(janeOrder.UserID, nil)

	details, err := repo.GetOrderDetails(ctx, scope, janeOrder.ID)
	require.NoError(t, err)
	assert.Equal(t, janeOrder.ID, details.OrderID)

	_, err = repo.GetOrderDetails(ctx, scope, otherOrder.ID)
	assert.True(t, repositories.IsNotFound(err))

	_, err = repo.GetOrderWithItems(ctx, repositories.AnonScope(), janeOrder.ID)
	assert.True(t, repositories.IsNotFound(err))
}

func TestProfileRepository_GetByID(t *testing.T) {
	pool, fixtures := setupTestPool(t)
	repo := NewProfileRepository(pool, testLogger())
	ctx := context.Background()

	profile, err := repo.GetByID(ctx, repositories.ServiceScope(), fixtures.Profiles[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.DisplayName())

	nameless, err := repo.GetByID(ctx, repositories.ServiceScope(), fixtures.Profiles[1].ID)
	require.NoError(t, err)
	assert.Nil(t, nameless.FullName)

	_, err = repo.GetByID(ctx, repositories.UserScope(fixtures.Profiles[1].ID, nil), fixtures.Profiles[0].ID)
	assert.True(t, repositories.IsNotFound(err))
}

func TestRepositoryManager(t *testing.T) {
	pool, _ := setupTestPool(t)
	manager := NewRepositoryManager(pool, testLogger())

	require.NoError(t, manager.Ping(context.Background()))
	assert.NotNil(t, manager.Repositories().OrderRepo)
	assert.NotNil(t, manager.Repositories().ProfileRepo)
}
