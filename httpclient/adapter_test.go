package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestAdapter(t *testing.T, srv *httptest.Server, cfg Config) *Adapter {
	t.Helper()
	if cfg.BaseURL == "" {
		cfg.BaseURL = srv.URL
	}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func TestAdapter_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/products" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("expected page=2, got %q", r.URL.RawQuery)
		}
		w.Header().Set("X-Test", "yes")
		_, _ = w.Write([]byte(`{"code":200}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv, Config{})
	resp, err := a.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/api/v1/products",
		Query:  map[string]string{"page": "2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() || string(resp.Body) != `{"code":200}` {
		t.Errorf("unexpected response %d %s", resp.StatusCode, resp.Body)
	}
	if resp.Headers["X-Test"] != "yes" {
		t.Errorf("expected flattened header, got %v", resp.Headers)
	}
}

func TestAdapter_PostJSONAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		if r.Header.Get("X-Client") != "override" {
			t.Errorf("expected request header to win, got %q", r.Header.Get("X-Client"))
		}
		if r.Header.Get("X-Default") != "d" {
			t.Errorf("expected default header")
		}
		var body map[string]int
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["quantity"] != 3 {
			t.Errorf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"code":200}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv, Config{Headers: map[string]string{"X-Default": "d", "X-Client": "default"}})
	resp, err := a.Do(context.Background(), Request{
		Method:  http.MethodPost,
		Path:    "cart",
		Headers: map[string]string{"X-Client": "override"},
		Body:    map[string]int{"quantity": 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

func TestAdapter_StatusErrorKeepsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv, Config{})
	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
	if !IsStatus(err) {
		t.Fatalf("expected status error, got %v", err)
	}
	if resp == nil || resp.StatusCode != 500 || string(resp.Body) != "boom" {
		t.Errorf("expected response alongside error, got %+v", resp)
	}
}

func TestAdapter_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	a, err := New(Config{BaseURL: url})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if resp != nil {
		t.Errorf("expected nil response, got %+v", resp)
	}
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestAdapter_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	a := newTestAdapter(t, srv, Config{Timeout: 50 * time.Millisecond})
	_, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/slow"})
	if !IsTimeout(err) {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestAdapter_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := newTestAdapter(t, srv, Config{})
	_, err := a.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	if !IsTimeout(err) {
		t.Errorf("expected canceled call to classify as timeout, got %v", err)
	}
}

func TestAdapter_ResolveURL(t *testing.T) {
	a, err := New(Config{BaseURL: "http://localhost:8080/"})
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]string{
		"/api/v1/cart":         "http://localhost:8080/api/v1/cart",
		"api/v1/cart":          "http://localhost:8080/api/v1/cart",
		"https://cdn.test/img": "https://cdn.test/img",
	}
	for in, want := range cases {
		if got := a.ResolveURL(in); got != want {
			t.Errorf("ResolveURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAdapter_CookieJar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
			return
		}
		c, err := r.Cookie("session")
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, c.Value)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv, Config{CookieJar: true})
	if _, err := a.Do(context.Background(), Request{Method: http.MethodPost, Path: "/login"}); err != nil {
		t.Fatal(err)
	}
	resp, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/me"})
	if err != nil {
		t.Fatalf("expected cookie to be replayed: %v", err)
	}
	if string(resp.Body) != "abc" {
		t.Errorf("unexpected body %q", resp.Body)
	}
}

func TestAdapter_WithTransport(t *testing.T) {
	called := false
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{
			StatusCode: 200,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader(`{}`)),
			Request:    r,
		}, nil
	})
	a, err := New(Config{BaseURL: "http://mall.test"}, WithTransport(rt))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("expected custom transport to be used")
	}
	if a.Unwrap().Transport == nil || a.Name() != "httpclient" {
		t.Error("unexpected adapter state")
	}
}

func TestEncodeBody(t *testing.T) {
	if r, ct, err := encodeBody(nil); r != nil || ct != "" || err != nil {
		t.Error("nil body should encode to nothing")
	}
	if _, ct, _ := encodeBody("text"); ct != "text/plain" {
		t.Errorf("expected text/plain, got %q", ct)
	}
	if _, ct, _ := encodeBody([]byte("raw")); ct != "" {
		t.Errorf("expected no content type for bytes, got %q", ct)
	}
	if _, _, err := encodeBody(make(chan int)); err == nil {
		t.Error("expected error for unencodable body")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
