package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Driver identifies the data store dialect behind a connection URL
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// DataSource is a parsed data store URL
type DataSource struct {
	Driver Driver
	// URL is the connection string handed to the driver
	URL string
	// Path is the database file for SQLite sources
	Path string
}

// ParseDataSource works out the driver for a data store URL. PostgreSQL URLs
// use the postgres:// or postgresql:// schemes; sqlite://, sqlite3://, file:
// and bare paths select SQLite.
func ParseDataSource(raw string) (*DataSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("data store URL cannot be empty")
	}

	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		if _, err := url.Parse(raw); err != nil {
			return nil, fmt.Errorf("invalid postgres URL: %w", err)
		}
		return &DataSource{Driver: DriverPostgres, URL: raw}, nil
	case strings.HasPrefix(raw, "sqlite3://"):
		return sqliteSource(strings.TrimPrefix(raw, "sqlite3://"))
	case strings.HasPrefix(raw, "sqlite://"):
		return sqliteSource(strings.TrimPrefix(raw, "sqlite://"))
	case strings.HasPrefix(raw, "file:"):
		return sqliteSource(strings.TrimPrefix(raw, "file:"))
	case strings.Contains(raw, "://"):
		return nil, fmt.Errorf("unsupported data store URL scheme: %s", raw[:strings.Index(raw, "://")])
	default:
		return sqliteSource(raw)
	}
}

func sqliteSource(path string) (*DataSource, error) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return nil, fmt.Errorf("sqlite data store URL has no path")
	}
	return &DataSource{Driver: DriverSQLite, URL: path, Path: path}, nil
}

// SQLiteOptions configures the SQLite connection pool
type SQLiteOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultSQLiteOptions returns the pool settings SQLite works best with
func DefaultSQLiteOptions() SQLiteOptions {
	return SQLiteOptions{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}
}

// OpenSQLite opens a SQLite database file with foreign keys enabled,
// creating its directory when needed.
func OpenSQLite(ctx context.Context, path string, opts SQLiteOptions, logger *logrus.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = logrus.New()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute database path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", absPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if opts.MaxOpenConns < 1 {
		opts = DefaultSQLiteOptions()
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.WithField("db_path", absPath).Info("Database connection established")
	return db, nil
}
