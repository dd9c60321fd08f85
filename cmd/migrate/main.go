package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"order-functions-api/internal/auth"
	"order-functions-api/internal/config"
	"order-functions-api/internal/database"
	"order-functions-api/internal/repositories/postgres"
	"order-functions-api/internal/repositories/sqlite"
)

func main() {
	var (
		dataStoreURL = flag.String("url", "", "Data store URL (defaults to DATA_STORE_URL)")
		action       = flag.String("action", "up", "Migration action: up, down, status, seed")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if *dataStoreURL != "" {
		cfg.Database.URL = *dataStoreURL
	}

	source, err := database.ParseDataSource(cfg.Database.URL)
	if err != nil {
		logger.WithError(err).Fatal("Invalid data store URL")
	}

	logger.WithFields(logrus.Fields{
		"driver": source.Driver,
		"action": *action,
	}).Info("Starting migration tool")

	migrations := database.NewMigrationManager(source, logger)

	switch *action {
	case "up":
		err = migrations.RunMigrations()
	case "down":
		err = migrations.RollbackMigration()
	case "status":
		err = showMigrationStatus(migrations)
	case "seed":
		err = seed(cfg, source, logger)
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: up, down, status, seed")
	}
	if err != nil {
		logger.WithError(err).Fatalf("Migration %s failed", *action)
	}

	logger.Info("Migration tool completed successfully")
}

func showMigrationStatus(m *database.MigrationManager) error {
	status, err := m.GetMigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	fmt.Printf("Migration Status:\n")
	fmt.Printf("  Version: %d\n", status.Version)
	fmt.Printf("  Applied: %t\n", status.Applied)
	fmt.Printf("  Dirty: %t\n", status.Dirty)
	return nil
}

// seed loads the demo fixtures and prints a user token per profile when a
// JWT secret is configured
func seed(cfg *config.Config, source *database.DataSource, logger *logrus.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fixtures := database.DemoFixtures()

	switch source.Driver {
	case database.DriverPostgres:
		pool, err := postgres.NewPool(ctx, source.URL, postgres.PoolOptions{MaxConns: 2})
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := postgres.Seed(ctx, pool, fixtures); err != nil {
			return err
		}
	case database.DriverSQLite:
		db, err := database.OpenSQLite(ctx, source.Path, database.DefaultSQLiteOptions(), logger)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := sqlite.Seed(ctx, db, fixtures); err != nil {
			return err
		}
	}

	resolver := auth.NewResolver(auth.Config{
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenDuration: 24 * time.Hour,
	})

	for _, order := range fixtures.Orders {
		fmt.Printf("order %s (owner %s)\n", order.ID, order.UserID)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil
	}

	for _, p := range fixtures.Profiles {
		token, err := resolver.IssueToken(p.ID, p.Email)
		if err != nil {
			return err
		}
		fmt.Printf("token for %s: %s\n", p.Email, token)
	}
	return nil
}
