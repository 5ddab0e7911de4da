package request

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/mallkit/effect"
	"github.com/kbukum/mallkit/httpclient"
	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/observability"
)

// Transport performs one HTTP exchange.
type Transport interface {
	Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error)
}

// CredentialProvider supplies the bearer token. An empty token means the
// call goes out without Authorization.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// Client is the request client. It is safe for concurrent use and holds no
// mutable state.
type Client struct {
	cfg         Config
	transport   Transport
	credentials CredentialProvider
	runner      *effect.Runner
	metrics     *observability.RequestMetrics
	log         *logger.Logger
	newID       func() string
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithTransport replaces the HTTP adapter.
func WithTransport(t Transport) ClientOption {
	return func(c *Client) { c.transport = t }
}

// WithCredentials sets the token source.
func WithCredentials(p CredentialProvider) ClientOption {
	return func(c *Client) { c.credentials = p }
}

// WithEffects sets the runner that executes host effects. Without it the
// client uses a runner that only clears credentials, and only when the
// credential provider can clear itself.
func WithEffects(r *effect.Runner) ClientOption {
	return func(c *Client) { c.runner = r }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics sets the request instruments.
func WithMetrics(m *observability.RequestMetrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// WithRequestIDs overrides the request id generator.
func WithRequestIDs(gen func() string) ClientOption {
	return func(c *Client) { c.newID = gen }
}

// New builds a Client. Without WithTransport an httpclient.Adapter is created
// from cfg.
func New(cfg Config, opts ...ClientOption) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:   cfg,
		log:   logger.Get(logger.ComponentRequest),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.runner == nil {
		var ropts []effect.RunnerOption
		if clearer, ok := c.credentials.(effect.CredentialClearer); ok {
			ropts = append(ropts, effect.WithCredentialClearer(clearer))
		}
		c.runner = effect.NewRunner(ropts...)
	}

	if c.transport == nil {
		adapter, err := httpclient.New(cfg.transportConfig(), httpclient.WithLogger(c.log))
		if err != nil {
			return nil, fmt.Errorf("request: transport: %w", err)
		}
		c.transport = adapter
	}
	if c.metrics == nil {
		m, err := observability.NewRequestMetrics(observability.Meter())
		if err != nil {
			c.log.Warn("request metrics unavailable", logger.Fields(logger.FieldError, err.Error()))
		}
		c.metrics = m
	}
	return c, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config { return c.cfg }

// Get issues a GET; query values are encoded into the URL.
func (c *Client) Get(ctx context.Context, path string, query map[string]any, opts ...Option) (json.RawMessage, error) {
	return c.call(ctx, newDescriptor(http.MethodGet, path, nil, query, opts))
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...Option) (json.RawMessage, error) {
	return c.call(ctx, newDescriptor(http.MethodPost, path, body, nil, opts))
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...Option) (json.RawMessage, error) {
	return c.call(ctx, newDescriptor(http.MethodPut, path, body, nil, opts))
}

// Delete issues a DELETE with a JSON body.
func (c *Client) Delete(ctx context.Context, path string, body any, opts ...Option) (json.RawMessage, error) {
	return c.call(ctx, newDescriptor(http.MethodDelete, path, body, nil, opts))
}

// RunEffects executes effects through the client's runner.
func (c *Client) RunEffects(ctx context.Context, effects ...effect.Effect) error {
	if c.runner == nil || len(effects) == 0 {
		return nil
	}
	return c.runner.Run(context.WithoutCancel(ctx), effects)
}

// call runs the effects of the outcome before returning it. Effect failures
// are logged by the runner and never replace the result.
func (c *Client) call(ctx context.Context, d Descriptor) (json.RawMessage, error) {
	res := c.Do(ctx, d)
	_ = c.RunEffects(ctx, res.Effects...)
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Payload, nil
}

// Do performs the call and classifies it without executing effects.
func (c *Client) Do(ctx context.Context, d Descriptor) Result {
	req := c.buildRequest(ctx, d)
	requestID := req.Headers[c.cfg.RequestIDHeader]
	ctx = logger.ContextWithRequestID(ctx, requestID)

	ctx, span := observability.StartSpan(ctx, observability.SpanRequest, trace.WithAttributes(
		attribute.String(observability.AttrMethod, d.Method),
		attribute.String(observability.AttrPath, d.Path),
		attribute.String(observability.AttrRequestID, requestID),
	))
	defer span.End()

	start := time.Now()
	resp, err := c.transport.Do(ctx, req)
	res := Classify(c.cfg, resp, err)
	elapsed := time.Since(start)

	c.observe(ctx, span, d, res, elapsed)
	return res
}

func (c *Client) buildRequest(ctx context.Context, d Descriptor) httpclient.Request {
	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range c.cfg.Headers {
		headers[http.CanonicalHeaderKey(k)] = v
	}
	for k, v := range d.Headers {
		headers[http.CanonicalHeaderKey(k)] = v
	}

	if c.credentials != nil {
		token, err := c.credentials.Token(ctx)
		if err != nil {
			c.log.WithContext(ctx).Warn("token lookup failed", logger.Fields(logger.FieldError, err.Error()))
		} else if token != "" {
			headers["Authorization"] = "Bearer " + token
		}
	}

	idHeader := http.CanonicalHeaderKey(c.cfg.RequestIDHeader)
	if headers[idHeader] == "" {
		headers[idHeader] = c.newID()
	}

	req := httpclient.Request{
		Method:  d.Method,
		Path:    d.Path,
		Headers: headers,
		Query:   encodeQuery(d.Query),
	}
	if d.Method != http.MethodGet {
		req.Body = d.Payload
		if req.Body == nil {
			req.Body = json.RawMessage(`{}`)
		}
	}
	return req
}

func (c *Client) observe(ctx context.Context, span trace.Span, d Descriptor, res Result, elapsed time.Duration) {
	outcome := res.Outcome()
	span.SetAttributes(attribute.String(observability.AttrOutcome, outcome))
	if res.HTTPStatus != 0 {
		span.SetAttributes(attribute.Int(observability.AttrHTTPStatus, res.HTTPStatus))
	}
	if res.HasCode {
		span.SetAttributes(attribute.Int(observability.AttrAppCode, res.Code))
	}
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Message)
	}

	c.metrics.Record(ctx, d.Method, outcome, elapsed)

	fields := logger.Fields(
		logger.FieldMethod, d.Method,
		logger.FieldPath, d.Path,
		logger.FieldStatus, res.HTTPStatus,
		logger.FieldDuration, elapsed.Milliseconds(),
	)
	log := c.log.WithContext(ctx)
	if res.Err == nil {
		log.Debug("request completed", fields)
		return
	}
	fields[logger.FieldCategory] = outcome
	fields[logger.FieldAppCode] = res.Code
	fields[logger.FieldError] = res.Err.Message
	if res.Err.Cause != nil {
		fields["cause"] = res.Err.Cause.Error()
	}
	log.Warn("request failed", fields)
}

// encodeQuery stringifies query values. Nil values are dropped.
func encodeQuery(q map[string]any) map[string]string {
	if len(q) == 0 {
		return nil
	}
	out := make(map[string]string, len(q))
	for k, v := range q {
		if s, ok := stringify(v); ok {
			out[k] = s
		}
	}
	return out
}

func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case fmt.Stringer:
		return t.String(), true
	case []string, []int, []int64:
		data, _ := json.Marshal(t)
		return string(data), true
	default:
		return fmt.Sprint(t), true
	}
}
