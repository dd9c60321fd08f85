package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultDataStoreURL is the local SQLite database used when nothing else is configured
const DefaultDataStoreURL = "sqlite://./data/orders.db"

// Config holds all configuration for the application
type Config struct {
	Environment string `validate:"required"`
	Port        string `validate:"required,numeric"`
	LogLevel    string `validate:"required,oneof=trace debug info warn warning error fatal panic"`
	Database    DatabaseConfig
	Auth        AuthConfig
	Export      ExportConfig
	RateLimit   RateLimitConfig
}

// DatabaseConfig holds data store configuration
type DatabaseConfig struct {
	URL          string `validate:"required"`
	MaxOpenConns int    `validate:"min=1"`
	MaxIdleConns int    `validate:"min=0"`
	// AutoMigrate applies pending migrations when the container starts
	AutoMigrate bool
}

// AuthConfig holds the credentials used to scope data store access
type AuthConfig struct {
	ServiceRoleKey     string
	JWTSecret          string
	TokenExpiryMinutes int `validate:"min=1"`
}

// ExportConfig holds CSV export settings
type ExportConfig struct {
	CSVLocale           string `validate:"required"`
	DefaultCustomerName string `validate:"required"`
}

// RateLimitConfig holds the local server's request limits
type RateLimitConfig struct {
	RequestsPerSecond float64 `validate:"gt=0"`
	Burst             int     `validate:"min=1"`
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8081")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATA_STORE_URL", DefaultDataStoreURL)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("JWT_EXPIRY_MINUTES", 60)
	v.SetDefault("CSV_LOCALE", "en_US")
	v.SetDefault("DEFAULT_CUSTOMER_NAME", "Cliente")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	// Hosted deployments export the Supabase names
	_ = v.BindEnv("DATA_STORE_URL", "DATA_STORE_URL", "SUPABASE_DB_URL", "DATABASE_URL")
	_ = v.BindEnv("SERVICE_ROLE_KEY", "SERVICE_ROLE_KEY", "SUPABASE_SERVICE_ROLE_KEY")
	_ = v.BindEnv("JWT_SECRET", "JWT_SECRET", "SUPABASE_JWT_SECRET")

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		LogLevel:    strings.ToLower(v.GetString("LOG_LEVEL")),
		Database: DatabaseConfig{
			URL:          v.GetString("DATA_STORE_URL"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Auth: AuthConfig{
			ServiceRoleKey:     v.GetString("SERVICE_ROLE_KEY"),
			JWTSecret:          v.GetString("JWT_SECRET"),
			TokenExpiryMinutes: v.GetInt("JWT_EXPIRY_MINUTES"),
		},
		Export: ExportConfig{
			CSVLocale:           v.GetString("CSV_LOCALE"),
			DefaultCustomerName: v.GetString("DEFAULT_CUSTOMER_NAME"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for missing or out of range values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction reports whether the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// NewLogger builds the application logger: JSON in Lambda and production,
// text otherwise
func NewLogger(cfg *Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if IsServerlessMode() || cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
