package lambda

// CORSHeaders are sent on every function response, including errors and
// preflight answers
var CORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "authorization, x-client-info, apikey, content-type",
}

// WithCORS returns headers merged over a copy of CORSHeaders
func WithCORS(headers map[string]string) map[string]string {
	out := make(map[string]string, len(CORSHeaders)+len(headers))
	for k, v := range CORSHeaders {
		out[k] = v
	}
	for k, v := range headers {
		out[k] = v
	}
	return out
}
