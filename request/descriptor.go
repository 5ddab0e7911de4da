package request

// Descriptor is one outbound call, built fresh for every request.
type Descriptor struct {
	Method string
	Path   string
	// Payload is the JSON body for non-GET methods.
	Payload any
	// Query is encoded into the URL for any method.
	Query   map[string]any
	Headers map[string]string
}

// Option adjusts a Descriptor.
type Option func(*Descriptor)

// WithHeader sets one header. Caller headers override the defaults but not
// the Authorization header derived from stored credentials.
func WithHeader(key, value string) Option {
	return func(d *Descriptor) {
		if d.Headers == nil {
			d.Headers = make(map[string]string)
		}
		d.Headers[key] = value
	}
}

// WithHeaders sets several headers.
func WithHeaders(h map[string]string) Option {
	return func(d *Descriptor) {
		for k, v := range h {
			WithHeader(k, v)(d)
		}
	}
}

// WithQuery adds URL query values, on any method.
func WithQuery(q map[string]any) Option {
	return func(d *Descriptor) {
		if d.Query == nil {
			d.Query = make(map[string]any, len(q))
		}
		for k, v := range q {
			d.Query[k] = v
		}
	}
}

func newDescriptor(method, path string, payload any, query map[string]any, opts []Option) Descriptor {
	d := Descriptor{Method: method, Path: path, Payload: payload}
	if len(query) > 0 {
		WithQuery(query)(&d)
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
