package postgres

import (
	"context"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"order-functions-api/internal/repositories"
)

// PoolOptions configures the pgx connection pool
type PoolOptions struct {
	MaxConns int32
	MinConns int32
}

// NewPool creates a pgxpool.Pool configured with shopspring/decimal support
// for NUMERIC columns.
func NewPool(ctx context.Context, databaseURL string, opts PoolOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}

	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	return pool, nil
}

// RepositoryManager implements repositories.RepositoryManager on a pgx pool
type RepositoryManager struct {
	pool   *pgxpool.Pool
	repos  *repositories.RepositoryContainer
	logger *logrus.Logger
}

// NewRepositoryManager wraps an open pool
func NewRepositoryManager(pool *pgxpool.Pool, logger *logrus.Logger) *RepositoryManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &RepositoryManager{
		pool: pool,
		repos: &repositories.RepositoryContainer{
			OrderRepo:   NewOrderRepository(pool, logger),
			ProfileRepo: NewProfileRepository(pool, logger),
		},
		logger: logger,
	}
}

// Repositories returns the repositories bound to this pool
func (m *RepositoryManager) Repositories() *repositories.RepositoryContainer {
	return m.repos
}

// Ping checks that the database is reachable
func (m *RepositoryManager) Ping(ctx context.Context) error {
	if err := m.pool.Ping(ctx); err != nil {
		return repositories.ConnectionError(err)
	}
	return nil
}

// Close closes every pooled connection
func (m *RepositoryManager) Close() error {
	m.pool.Close()
	m.logger.Info("Database pool closed")
	return nil
}
