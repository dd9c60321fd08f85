package lambda

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-functions-api/internal/config"
	"order-functions-api/pkg/server"
)

func echoHandler(ctx context.Context, req *Request) (*Response, error) {
	resp := &Response{StatusCode: http.StatusCreated, Body: req.Body}
	resp.SetHeader("X-Auth", req.Header("Authorization"))
	resp.SetHeader("X-Method", req.Method)
	return resp, nil
}

func TestRequest_Header(t *testing.T) {
	req := &Request{Headers: map[string]string{"authorization": "Bearer abc"}}
	assert.Equal(t, "Bearer abc", req.Header("Authorization"))
	assert.Equal(t, "", req.Header("Content-Type"))

	assert.True(t, (&Request{Method: "options"}).IsPreflight())
	assert.False(t, (&Request{Method: http.MethodPost}).IsPreflight())
}

func TestFromAPIGateway(t *testing.T) {
	event := events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/generate-order-csv",
		Headers:         map[string]string{"Authorization": "Bearer abc"},
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"order_id":"O1"}`)),
		IsBase64Encoded: true,
		RequestContext:  events.APIGatewayProxyRequestContext{RequestID: "req-1"},
	}

	req, err := FromAPIGateway(event)
	require.NoError(t, err)
	assert.Equal(t, `{"order_id":"O1"}`, string(req.Body))
	assert.Equal(t, "Bearer abc", req.Header("authorization"))
	assert.Equal(t, "req-1", req.RequestID)

	event.Body = "%%%"
	_, err = FromAPIGateway(event)
	assert.Error(t, err)
}

func TestAPIGatewayHandler(t *testing.T) {
	h := APIGatewayHandler(echoHandler)

	resp, err := h(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Headers:    map[string]string{"authorization": "Bearer abc"},
		Body:       "payload",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "payload", resp.Body)
	assert.Equal(t, "Bearer abc", resp.Headers["X-Auth"])

	failing := APIGatewayHandler(func(ctx context.Context, req *Request) (*Response, error) {
		return nil, errors.New("boom")
	})
	resp, err = failing(context.Background(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"boom"}`, resp.Body)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	resp, err = h(context.Background(), events.APIGatewayProxyRequest{Body: "%%%", IsBase64Encoded: true})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
}

func TestConnectionManager_BuildFailureKeepsCORS(t *testing.T) {
	cm := NewConnectionManager(
		func() (*config.Config, error) { return nil, errors.New("bad DATA_STORE_URL") },
		func(ctx context.Context, cfg *config.Config) (*server.Container, error) {
			t.Fatal("container must not be built without config")
			return nil, nil
		},
	)
	handler := cm.Handler(nil, func(*server.Container) HandlerFunc { return echoHandler })

	resp, err := APIGatewayHandler(handler)(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Body:       `{"order_id":"O1"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"bad DATA_STORE_URL"}`, resp.Body)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", resp.Headers["Access-Control-Allow-Headers"])

	w := httptest.NewRecorder()
	HTTPHandler(handler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/fn", strings.NewReader("{}")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Body.String(), "bad DATA_STORE_URL")
}

func TestWithCORS(t *testing.T) {
	headers := WithCORS(map[string]string{"Content-Type": "text/csv"})
	assert.Equal(t, "text/csv", headers["Content-Type"])
	assert.Equal(t, "*", headers["Access-Control-Allow-Origin"])

	headers["Access-Control-Allow-Origin"] = "changed"
	assert.Equal(t, "*", CORSHeaders["Access-Control-Allow-Origin"])
}

func TestHTTPHandler(t *testing.T) {
	h := HTTPHandler(echoHandler)

	req := httptest.NewRequest(http.MethodPut, "/fn?x=1", strings.NewReader("body"))
	req.Header.Set("Authorization", "Bearer xyz")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "body", w.Body.String())
	assert.Equal(t, "Bearer xyz", w.Header().Get("X-Auth"))
	assert.Equal(t, http.MethodPut, w.Header().Get("X-Method"))
}

func TestConnectionManager_RetriesFailedBuild(t *testing.T) {
	attempts := 0
	cm := NewConnectionManager(
		func() (*config.Config, error) { return &config.Config{}, nil },
		func(ctx context.Context, cfg *config.Config) (*server.Container, error) {
			attempts++
			if attempts == 1 {
				return nil, errors.New("database unavailable")
			}
			return &server.Container{Config: cfg}, nil
		},
	)

	_, err := cm.GetContainer(context.Background())
	assert.Error(t, err)
	assert.False(t, cm.IsHealthy())

	first, err := cm.GetContainer(context.Background())
	require.NoError(t, err)
	second, err := cm.GetContainer(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 2, attempts)
	assert.True(t, cm.IsHealthy())

	require.NoError(t, cm.Cleanup())
	assert.False(t, cm.IsHealthy())
}

func TestConnectionManager_HandlerSkipsContainerForPreflight(t *testing.T) {
	built := 0
	cm := NewConnectionManager(
		func() (*config.Config, error) { return &config.Config{}, nil },
		func(ctx context.Context, cfg *config.Config) (*server.Container, error) {
			built++
			return &server.Container{Config: cfg}, nil
		},
	)

	preflight := func(ctx context.Context, req *Request) (*Response, error) {
		return &Response{StatusCode: http.StatusOK, Body: []byte("ok")}, nil
	}
	fn := cm.Handler(preflight, func(c *server.Container) HandlerFunc { return echoHandler })

	resp, err := fn(context.Background(), &Request{Method: http.MethodOptions})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(resp.Body))
	assert.Zero(t, built)

	resp, err = fn(context.Background(), &Request{Method: http.MethodPost, Body: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, built)
}
