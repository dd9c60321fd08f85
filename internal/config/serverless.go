package config

import (
	"net"
	"net/url"
	"os"
	"sync"
)

// lambdaDataStoreURL is the SQLite fallback inside Lambda, where only /tmp is writable
const lambdaDataStoreURL = "sqlite:///tmp/orders.db"

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
	Stage        string
}

// Global serverless configuration
var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = DetectServerless()
	})
	return serverlessConfig
}

// DetectServerless reads the Lambda runtime environment
func DetectServerless() *ServerlessConfig {
	return &ServerlessConfig{
		IsLambda:     os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",
		FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		Region:       os.Getenv("AWS_REGION"),
		Stage:        GetEnv("STAGE", "dev"),
	}
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return GetServerlessConfig().IsLambda
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless modifies configuration for serverless deployment
func AdaptConfigForServerless(config *Config, sc *ServerlessConfig) *Config {
	if sc == nil || !sc.IsLambda {
		return config
	}

	if config.Database.URL == DefaultDataStoreURL {
		if os.Getenv("RDS_ENDPOINT") != "" {
			config.Database.URL = buildRDSConnectionString()
		} else {
			config.Database.URL = lambdaDataStoreURL
			config.Database.AutoMigrate = true
		}
	}

	// One function instance serves one request at a time
	if config.Database.MaxOpenConns > 2 {
		config.Database.MaxOpenConns = 2
	}
	if config.Database.MaxIdleConns > config.Database.MaxOpenConns {
		config.Database.MaxIdleConns = config.Database.MaxOpenConns
	}

	return config
}

// buildRDSConnectionString constructs a PostgreSQL URL from the RDS_* variables
func buildRDSConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(os.Getenv("RDS_USERNAME"), os.Getenv("RDS_PASSWORD")),
		Host:     net.JoinHostPort(os.Getenv("RDS_ENDPOINT"), GetEnv("RDS_PORT", "5432")),
		Path:     "/" + GetEnv("RDS_DB_NAME", "postgres"),
		RawQuery: "sslmode=require",
	}
	return u.String()
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	return AdaptConfigForServerless(config, GetServerlessConfig()), nil
}
