package server

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-functions-api/internal/config"
	"order-functions-api/internal/database"
	"order-functions-api/internal/repositories"
	"order-functions-api/internal/repositories/sqlite"
)

func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "orders.db")
	return &config.Config{
		Environment: "test",
		Port:        "8080",
		LogLevel:    "warn",
		Database: config.DatabaseConfig{
			URL:          "sqlite://" + dbPath,
			MaxOpenConns: 1,
			AutoMigrate:  true,
		},
		Auth: config.AuthConfig{
			ServiceRoleKey:     "service-key",
			JWTSecret:          "test-jwt-secret",
			TokenExpiryMinutes: 5,
		},
		Export: config.ExportConfig{
			CSVLocale:           "en_US",
			DefaultCustomerName: "Cliente",
		},
	}, dbPath
}

func TestNewContainer(t *testing.T) {
	cfg, dbPath := testConfig(t)
	ctx := context.Background()

	container, err := NewContainer(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	assert.NotNil(t, container.NotificationService)
	assert.NotNil(t, container.ExportService)
	assert.NotNil(t, container.Resolver)
	require.NoError(t, container.Ping(ctx))

	db, err := database.OpenSQLite(ctx, dbPath, database.DefaultSQLiteOptions(), container.Logger)
	require.NoError(t, err)
	defer db.Close()
	fixtures := database.DemoFixtures()
	require.NoError(t, sqlite.Seed(ctx, db, fixtures))

	scope, err := container.Resolver.Resolve("Bearer service-key")
	require.NoError(t, err)

	export, err := container.ExportService.ExportOrderCSV(ctx, scope, fixtures.Orders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", export.CustomerName)
	assert.True(t, strings.HasSuffix(export.Content, `"TOTAL","","","","","25","",""`))

	details, err := container.NotificationService.SendOrderConfirmation(ctx, scope, fixtures.Orders[1].ID, "nameless@example.com")
	require.NoError(t, err)
	assert.Equal(t, "29", details.OrderTotal.String())
	assert.Equal(t, "", details.CustomerName)
}

func TestNewContainer_UserScope(t *testing.T) {
	cfg, dbPath := testConfig(t)
	ctx := context.Background()

	container, err := NewContainer(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	db, err := database.OpenSQLite(ctx, dbPath, database.DefaultSQLiteOptions(), container.Logger)
	require.NoError(t, err)
	defer db.Close()
	fixtures := database.DemoFixtures()
	require.NoError(t, sqlite.Seed(ctx, db, fixtures))

	token, err := container.Resolver.IssueToken(fixtures.Profiles[0].ID, "jane@example.com")
	require.NoError(t, err)
	scope, err := container.Resolver.Resolve("Bearer " + token)
	require.NoError(t, err)

	_, err = container.ExportService.ExportOrderCSV(ctx, scope, fixtures.Orders[0].ID)
	assert.NoError(t, err)

	_, err = container.NotificationService.SendOrderConfirmation(ctx, scope, fixtures.Orders[1].ID, "jane@example.com")
	require.Error(t, err)
	assert.True(t, repositories.IsNotFound(err))
}

func TestOpenRepositoryManager_InvalidURL(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.Database.URL = "mysql://localhost/orders"

	_, err := NewContainer(context.Background(), cfg)
	assert.Error(t, err)
}
