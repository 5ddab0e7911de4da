package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Recorded is a request the Backend received.
type Recorded struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into out.
func (r Recorded) JSON(t *testing.T, out any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, out); err != nil {
		t.Fatalf("recorded body is not JSON: %v (%s)", err, r.Body)
	}
}

// Backend is an httptest server with per-route handlers. Unknown routes get
// HTTP 404 with a {code:404} envelope.
type Backend struct {
	t   *testing.T
	srv *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []Recorded
}

// NewBackend starts a backend closed at test cleanup.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{t: t, routes: make(map[string]http.HandlerFunc)}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

// URL is the base URL of the backend.
func (b *Backend) URL() string { return b.srv.URL }

// Handle registers h for method and path.
func (b *Backend) Handle(method, path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = h
}

// Reply answers method and path with HTTP 200 and the given envelope.
func (b *Backend) Reply(method, path string, code int, message string, data any) {
	b.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		WriteEnvelope(w, http.StatusOK, code, message, data)
	})
}

// ReplyStatus answers method and path with the given HTTP status and envelope,
// for example HTTP 201 carrying code 200 on a create.
func (b *Backend) ReplyStatus(method, path string, status, code int, message string, data any) {
	b.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		WriteEnvelope(w, status, code, message, data)
	})
}

// ReplyRaw answers method and path with a literal body.
func (b *Backend) ReplyRaw(method, path string, status int, body string) {
	b.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// Requests returns a copy of everything received so far.
func (b *Backend) Requests() []Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Recorded, len(b.requests))
	copy(out, b.requests)
	return out
}

// Last returns the most recent request and fails the test when there is none.
func (b *Backend) Last() Recorded {
	b.t.Helper()
	reqs := b.Requests()
	if len(reqs) == 0 {
		b.t.Fatal("backend received no requests")
	}
	return reqs[len(reqs)-1]
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, Recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	h, ok := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if !ok {
		WriteEnvelope(w, http.StatusNotFound, http.StatusNotFound, "not found", nil)
		return
	}
	h(w, r)
}

// WriteEnvelope writes a {code, message, data} body.
func WriteEnvelope(w http.ResponseWriter, status, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    code,
		"message": message,
		"data":    data,
	})
}
