package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kbukum/mallkit/credential"
	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/request"
)

// Reply is the envelope every storefront endpoint answers with.
type Reply[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Page is a paged listing.
type Page[T any] struct {
	List      []T   `json:"list"`
	Total     int64 `json:"total"`
	PageNum   int   `json:"pageNum"`
	PageSize  int   `json:"pageSize"`
	TotalPage int   `json:"totalPage"`
}

// Client calls the storefront endpoints.
type Client struct {
	client *request.Client
	creds  *credential.Credentials
	log    *logger.Logger
}

// New wraps c, which should use request.ProfileStorefront. creds receives
// the token on Login and is cleared on Logout.
func New(c *request.Client, creds *credential.Credentials) *Client {
	if p := c.Config().Profile; p != request.ProfileStorefront {
		logger.Get(logger.ComponentStorefront).Warn("storefront client built on another profile",
			logger.Fields("profile", string(p)))
	}
	return &Client{client: c, creds: creds, log: logger.Get(logger.ComponentStorefront)}
}

func get[T any](ctx context.Context, c *Client, path string, query map[string]any) (*Reply[T], error) {
	return do[T](ctx, c, http.MethodGet, path, nil, query)
}

func post[T any](ctx context.Context, c *Client, path string, body any, query map[string]any) (*Reply[T], error) {
	return do[T](ctx, c, http.MethodPost, path, body, query)
}

func do[T any](ctx context.Context, c *Client, method, path string, body any, query map[string]any) (*Reply[T], error) {
	var (
		raw json.RawMessage
		err error
	)
	switch method {
	case http.MethodGet:
		raw, err = c.client.Get(ctx, path, query)
	default:
		raw, err = c.client.Post(ctx, path, body, request.WithQuery(query))
	}
	if err != nil {
		return nil, err
	}

	reply := &Reply[T]{}
	if len(raw) == 0 {
		return reply, nil
	}
	if err := json.Unmarshal(raw, reply); err != nil {
		return nil, fmt.Errorf("storefront: decode %s: %w", path, err)
	}
	return reply, nil
}
