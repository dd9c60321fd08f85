package lambda

import (
	"context"
	"net/http"
	"strings"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
	RequestID   string            `json:"request_id"`
}

// Header returns a request header. Lookup is case-insensitive because API
// Gateway forwards header names as the client sent them.
func (r *Request) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// SetHeader sets a response header, allocating the map if needed
func (r *Response) SetHeader(name, value string) {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[name] = value
}

// HandlerFunc is a framework-agnostic handler interface
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// IsPreflight reports whether the request is a CORS preflight
func (r *Request) IsPreflight() bool {
	return strings.EqualFold(r.Method, http.MethodOptions)
}
