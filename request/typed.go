package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// GetAs issues a GET and decodes the payload into T.
func GetAs[T any](ctx context.Context, c *Client, path string, query map[string]any, opts ...Option) (T, error) {
	return decode[T](path)(c.Get(ctx, path, query, opts...))
}

// PostAs issues a POST and decodes the payload into T.
func PostAs[T any](ctx context.Context, c *Client, path string, body any, opts ...Option) (T, error) {
	return decode[T](path)(c.Post(ctx, path, body, opts...))
}

// PutAs issues a PUT and decodes the payload into T.
func PutAs[T any](ctx context.Context, c *Client, path string, body any, opts ...Option) (T, error) {
	return decode[T](path)(c.Put(ctx, path, body, opts...))
}

// DeleteAs issues a DELETE and decodes the payload into T.
func DeleteAs[T any](ctx context.Context, c *Client, path string, body any, opts ...Option) (T, error) {
	return decode[T](path)(c.Delete(ctx, path, body, opts...))
}

// decode returns a func that turns (payload, err) into (T, err). A null or
// empty payload yields the zero T.
func decode[T any](path string) func(json.RawMessage, error) (T, error) {
	return func(raw json.RawMessage, err error) (T, error) {
		var out T
		if err != nil {
			return out, err
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			return out, nil
		}
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return out, fmt.Errorf("request: decode %s: %w", path, err)
		}
		return out, nil
	}
}
