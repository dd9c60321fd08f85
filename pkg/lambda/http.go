package lambda

import (
	"encoding/json"
	"io"
	"net/http"
)

// maxBodyBytes caps request bodies read by HTTPHandler
const maxBodyBytes = 1 << 20

// HTTPHandler exposes a HandlerFunc as a net/http handler so the same code
// serves the local server and Lambda
func HTTPHandler(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, err)
			return
		}

		headers := make(map[string]string, len(r.Header))
		for k, values := range r.Header {
			if len(values) > 0 {
				headers[k] = values[0]
			}
		}

		query := make(map[string]string)
		for k, values := range r.URL.Query() {
			if len(values) > 0 {
				query[k] = values[0]
			}
		}

		req := &Request{
			Method:      r.Method,
			Path:        r.URL.Path,
			Headers:     headers,
			QueryParams: query,
			Body:        body,
			RequestID:   r.Header.Get("X-Request-ID"),
		}

		resp, err := fn(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}

		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write(resp.Body)
	})
}

func writeError(w http.ResponseWriter, err error) {
	for k, v := range WithCORS(map[string]string{"Content-Type": "application/json"}) {
		w.Header().Set(k, v)
	}
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
