package httpclient

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is appended to BaseURL. Absolute URLs are used as-is.
	Path string
	// Headers are request-specific headers, applied over the defaults.
	Headers map[string]string
	// Query are URL query parameters, merged into any query already on Path.
	Query map[string]string
	// Body is []byte, string, or any value that will be JSON-encoded.
	Body any
}

// Response is a received HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
