// Package httpclient is the transport boundary of mallkit: a thin adapter over
// net/http that resolves paths against a base URL, applies default headers,
// TLS and an optional cookie jar, enforces the request timeout and reads the
// whole response body.
//
// It classifies only transport outcomes (timeout, connection, non-2xx status).
// Application envelopes are interpreted by the request package.
//
//	a, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://localhost:8080",
//	    Timeout: 10 * time.Second,
//	})
//
//	resp, err := a.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/api/v1/products",
//	    Query:  map[string]string{"page": "1"},
//	})
package httpclient
