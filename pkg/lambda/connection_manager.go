package lambda

import (
	"context"
	"sync"
	"time"

	"order-functions-api/internal/config"
	"order-functions-api/pkg/server"
)

// ContainerFactory builds the dependency container from configuration
type ContainerFactory func(ctx context.Context, cfg *config.Config) (*server.Container, error)

// ConfigLoader reads configuration
type ConfigLoader func() (*config.Config, error)

// ConnectionManager builds the service container on first use and keeps it
// for warm invocations. A failed build is retried on the next call.
type ConnectionManager struct {
	container *server.Container
	lastUsed  time.Time
	mu        sync.Mutex

	loadConfig   ConfigLoader
	newContainer ContainerFactory
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(config.GetOptimizedConfig, server.NewContainer)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a manager with its own config loader and
// container factory
func NewConnectionManager(load ConfigLoader, build ContainerFactory) *ConnectionManager {
	return &ConnectionManager{loadConfig: load, newContainer: build}
}

// GetContainer returns the service container, initializing if necessary
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		cm.lastUsed = time.Now()
		return cm.container, nil
	}

	cfg, err := cm.loadConfig()
	if err != nil {
		return nil, err
	}

	container, err := cm.newContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cm.container = container
	cm.lastUsed = time.Now()
	return container, nil
}

// IsHealthy reports whether a container is built and was used in the last
// five minutes
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return false
	}
	return time.Since(cm.lastUsed) < 5*time.Minute
}

// Cleanup closes the container. The next GetContainer builds a new one.
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}

	err := cm.container.Close()
	cm.container = nil
	return err
}

// Handler returns a HandlerFunc that resolves its inner handler from the
// container on every call. Preflight requests are answered by preflight
// without building the container.
func (cm *ConnectionManager) Handler(preflight HandlerFunc, pick func(*server.Container) HandlerFunc) HandlerFunc {
	return func(ctx context.Context, req *Request) (*Response, error) {
		if req.IsPreflight() && preflight != nil {
			return preflight(ctx, req)
		}

		container, err := cm.GetContainer(ctx)
		if err != nil {
			return nil, err
		}
		return pick(container)(ctx, req)
	}
}
