package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StructuredLogger logs one entry per request with its request ID, status
// and latency
func StructuredLogger(logger *logrus.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		fields := logrus.Fields{
			"request_id":    c.GetString(RequestIDKey),
			"method":        c.Request.Method,
			"path":          path,
			"status_code":   c.Writer.Status(),
			"latency_ms":    float64(latency.Nanoseconds()) / 1000000,
			"client_ip":     c.ClientIP(),
			"user_agent":    c.Request.UserAgent(),
			"response_size": c.Writer.Size(),
		}
		if raw != "" {
			fields["query"] = raw
		}

		entry := logger.WithFields(fields)
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Server error")
		case c.Writer.Status() >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request completed")
		}
	}
}

// PerformanceMonitor warns about requests slower than the threshold
func PerformanceMonitor(logger *logrus.Logger, slowThreshold time.Duration) gin.HandlerFunc {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if slowThreshold == 0 {
		slowThreshold = time.Second
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if latency := time.Since(start); latency > slowThreshold {
			logger.WithFields(logrus.Fields{
				"request_id":   c.GetString(RequestIDKey),
				"method":       c.Request.Method,
				"path":         c.Request.URL.Path,
				"latency_ms":   float64(latency.Nanoseconds()) / 1000000,
				"threshold_ms": float64(slowThreshold.Nanoseconds()) / 1000000,
				"status_code":  c.Writer.Status(),
			}).Warn("Slow request detected")
		}
	}
}
