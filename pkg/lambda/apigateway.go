package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// FromAPIGateway converts an API Gateway proxy event to a Request
func FromAPIGateway(event events.APIGatewayProxyRequest) (*Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode request body: %w", err)
		}
		body = decoded
	}

	headers := make(map[string]string, len(event.Headers)+len(event.MultiValueHeaders))
	for k, values := range event.MultiValueHeaders {
		if len(values) > 0 {
			headers[k] = values[0]
		}
	}
	for k, v := range event.Headers {
		headers[k] = v
	}

	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
		PathParams:  event.PathParameters,
		RequestID:   event.RequestContext.RequestID,
	}, nil
}

// ToAPIGateway converts a Response to an API Gateway proxy response
func ToAPIGateway(resp *Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}
}

// APIGatewayHandler adapts a HandlerFunc to the aws-lambda-go proxy signature.
// Handler errors become a 500 JSON response.
func APIGatewayHandler(fn HandlerFunc) func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := FromAPIGateway(event)
		if err != nil {
			return errorResponse(err), nil
		}

		resp, err := fn(ctx, req)
		if err != nil {
			return errorResponse(err), nil
		}

		return ToAPIGateway(resp), nil
	}
}

func errorResponse(err error) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": err.Error()})
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    WithCORS(map[string]string{"Content-Type": "application/json"}),
		Body:       string(body),
	}
}
