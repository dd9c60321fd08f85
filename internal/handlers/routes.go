package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"order-functions-api/internal/middleware"
	"order-functions-api/pkg/lambda"
)

// FunctionsBasePath is where the functions are mounted on the local server
const FunctionsBasePath = "/functions/v1"

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	Confirmation *ConfirmationHandler
	Export       *ExportHandler
	// Health reports data store connectivity for /health
	Health func(ctx context.Context) error
	Logger *logrus.Logger
	// Metrics, when set, is recorded by middleware and served at /metrics
	Metrics *middleware.Metrics

	RequestsPerSecond float64
	Burst             int
}

// SetupRoutes mounts both functions, the health check and swagger UI
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		body := gin.H{"service": "order-functions-api", "timestamp": time.Now().UTC()}
		if config.Health != nil {
			if err := config.Health(c.Request.Context()); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
				body["error"] = err.Error()
			}
		}
		body["status"] = status
		c.JSON(code, body)
	})

	if config.Metrics != nil {
		router.GET("/metrics", gin.WrapH(config.Metrics.Handler()))
	}

	functions := router.Group(FunctionsBasePath)
	{
		functions.Any("/order-confirmation", gin.WrapH(lambda.HTTPHandler(config.Confirmation.HandleSend)))
		functions.Any("/generate-order-csv", gin.WrapH(lambda.HTTPHandler(config.Export.HandleExport)))
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, config *RouterConfig) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(config.Logger))
	router.Use(middleware.PerformanceMonitor(config.Logger, time.Second))
	if config.Metrics != nil {
		router.Use(config.Metrics.Middleware())
	}
	router.Use(middleware.RequestSizeLimit(1 << 20))

	if config.RequestsPerSecond > 0 {
		router.Use(middleware.RateLimiter(config.RequestsPerSecond, config.Burst))
	}
}

// NewRouter builds a gin engine with middleware and routes
func NewRouter(config *RouterConfig) *gin.Engine {
	router := gin.New()
	SetupMiddleware(router, config)
	SetupRoutes(router, config)
	return router
}
