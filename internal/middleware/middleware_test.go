package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.POST("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, c.Request.Header.Get(RequestIDHeader))
	})
	return r
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestStructuredLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := newRouter(RequestID(), StructuredLogger(logger))

	req := httptest.NewRequest(http.MethodPost, "/echo?x=1", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Request completed", entry.Message)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Equal(t, "/echo", entry.Data["path"])
	assert.Equal(t, "x=1", entry.Data["query"])
	assert.Equal(t, http.StatusOK, entry.Data["status_code"])
}

func TestRateLimiter(t *testing.T) {
	r := newRouter(RateLimiter(0.001, 1))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRequestSizeLimit(t *testing.T) {
	r := newRouter(RequestSizeLimit(8))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"order_id":"123456"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics("test")
	r := newRouter(m.Middleware())
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/echo", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/missing", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `order_functions_test_http_requests_total{method="POST",route="/echo",status="200"} 1`)
	assert.Contains(t, body, `route="unmatched",status="404"`)
	assert.Contains(t, body, "order_functions_test_http_request_duration_ms_bucket")
}
