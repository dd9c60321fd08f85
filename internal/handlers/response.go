package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"order-functions-api/pkg/lambda"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Preflight answers CORS preflight requests
func Preflight(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return &lambda.Response{
		StatusCode: http.StatusOK,
		Headers:    lambda.WithCORS(nil),
		Body:       []byte("ok"),
	}, nil
}

func jsonResponse(status int, payload interface{}) *lambda.Response {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: err.Error()})
	}
	return &lambda.Response{
		StatusCode: status,
		Headers:    lambda.WithCORS(map[string]string{"Content-Type": "application/json"}),
		Body:       body,
	}
}

func errorResponse(status int, message string) *lambda.Response {
	return jsonResponse(status, ErrorResponse{Error: message})
}
