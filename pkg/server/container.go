package server

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"order-functions-api/internal/auth"
	"order-functions-api/internal/config"
	"order-functions-api/internal/database"
	"order-functions-api/internal/repositories"
	"order-functions-api/internal/repositories/postgres"
	"order-functions-api/internal/repositories/sqlite"
	"order-functions-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config              *config.Config
	Logger              *logrus.Logger
	Resolver            *auth.Resolver
	NotificationService services.NotificationService
	ExportService       services.ExportService

	// Internal dependencies
	repos    repositories.RepositoryManager
	services *services.ServiceContainer
}

// NewContainer opens the configured data store and wires every service
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := config.NewLogger(cfg)

	manager, err := OpenRepositoryManager(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	container, err := NewContainerWithRepositories(cfg, logger, manager)
	if err != nil {
		_ = manager.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"mode":        config.GetDeploymentMode(),
	}).Info("Container initialized")

	return container, nil
}

// NewContainerWithRepositories wires services on top of an existing
// repository manager
func NewContainerWithRepositories(cfg *config.Config, logger *logrus.Logger, manager repositories.RepositoryManager) (*Container, error) {
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	serviceContainer, err := services.NewServiceContainer(manager.Repositories(), &services.ServiceConfig{
		CSVLocale:           cfg.Export.CSVLocale,
		DefaultCustomerName: cfg.Export.DefaultCustomerName,
		Logger:              logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	resolver := auth.NewResolver(auth.Config{
		ServiceRoleKey: cfg.Auth.ServiceRoleKey,
		JWTSecret:      cfg.Auth.JWTSecret,
		TokenDuration:  time.Duration(cfg.Auth.TokenExpiryMinutes) * time.Minute,
	})

	return &Container{
		Config:              cfg,
		Logger:              logger,
		Resolver:            resolver,
		NotificationService: serviceContainer.NotificationService,
		ExportService:       serviceContainer.ExportService,
		repos:               manager,
		services:            serviceContainer,
	}, nil
}

// OpenRepositoryManager connects to the data store named by the configured
// URL, running migrations first when AutoMigrate is set
func OpenRepositoryManager(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repositories.RepositoryManager, error) {
	source, err := database.ParseDataSource(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse data store URL: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.NewMigrationManager(source, logger).RunMigrations(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	switch source.Driver {
	case database.DriverPostgres:
		pool, err := postgres.NewPool(ctx, source.URL, postgres.PoolOptions{
			MaxConns: int32(cfg.Database.MaxOpenConns),
			MinConns: int32(cfg.Database.MaxIdleConns),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return postgres.NewRepositoryManager(pool, logger), nil

	case database.DriverSQLite:
		db, err := database.OpenSQLite(ctx, source.Path, database.DefaultSQLiteOptions(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return sqlite.NewSQLiteRepositoryManager(db, logger), nil

	default:
		return nil, fmt.Errorf("unsupported data store driver: %s", source.Driver)
	}
}

// Ping checks the data store connection
func (c *Container) Ping(ctx context.Context) error {
	return c.repos.Ping(ctx)
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.repos != nil {
		if err := c.repos.Close(); err != nil {
			return fmt.Errorf("failed to close repositories: %w", err)
		}
	}
	return nil
}
