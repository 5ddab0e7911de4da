// Package comment reads and posts product reviews.
package comment

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/request"
)

const (
	pathComments        = "/api/v1/comments"
	pathProductComments = "/api/v1/comments/product"
)

// DefaultUserName is shown for reviews without a nickname.
const DefaultUserName = "用户"

// Record is the backend review record.
type Record struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	OrderID   int64   `json:"order_id"`
	Rating    int     `json:"rating"`
	Content   string  `json:"content"`
	Images    string  `json:"images"`
	CreatedAt string  `json:"created_at"`
	User      *Author `json:"user,omitempty"`
}

// Author is the reviewer summary embedded in a record.
type Author struct {
	ID       int64  `json:"id"`
	NickName string `json:"nick_name"`
	Avatar   string `json:"avatar"`
}

// Comment is a review as the detail page renders it.
type Comment struct {
	ID         int64    `json:"id"`
	UserName   string   `json:"userName"`
	Avatar     string   `json:"avatar"`
	Rating     int      `json:"rating"`
	Content    string   `json:"content"`
	Images     []string `json:"images"`
	CreateTime string   `json:"createTime"`
}

type recordPage struct {
	List []Record `json:"list"`
}

// NewComment is a review to post.
type NewComment struct {
	ProductID int64
	OrderID   int64
	Rating    int
	Content   string
	Images    []string
}

// Service calls the comment endpoints.
type Service struct {
	client *request.Client
	log    *logger.Logger
}

// New creates a comment Service.
func New(c *request.Client) *Service {
	return &Service{client: c, log: logger.Get(logger.ComponentAPI)}
}

// ListForProduct returns a page of reviews for a product. Failures are logged
// and yield an empty list.
func (s *Service) ListForProduct(ctx context.Context, productID int64, page, limit int) []Comment {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	resp, err := request.GetAs[recordPage](ctx, s.client, fmt.Sprintf("%s/%d", pathProductComments, productID), map[string]any{"page": page, "limit": limit})
	if err != nil {
		s.log.Warn("list comments failed", logger.ErrorFields("comment.list", err))
		return []Comment{}
	}

	out := make([]Comment, 0, len(resp.List))
	for _, r := range resp.List {
		out = append(out, FromRecord(r))
	}
	return out
}

// Create posts a review.
func (s *Service) Create(ctx context.Context, c NewComment) error {
	_, err := s.client.Post(ctx, pathComments, map[string]any{
		"product_id": c.ProductID,
		"order_id":   c.OrderID,
		"rating":     c.Rating,
		"content":    c.Content,
		"images":     strings.Join(c.Images, ","),
	})
	return err
}

// FromRecord maps a backend record into a display comment.
func FromRecord(r Record) Comment {
	c := Comment{
		ID:         r.ID,
		UserName:   DefaultUserName,
		Rating:     r.Rating,
		Content:    r.Content,
		Images:     []string{},
		CreateTime: r.CreatedAt,
	}
	if r.User != nil {
		if r.User.NickName != "" {
			c.UserName = r.User.NickName
		}
		c.Avatar = r.User.Avatar
	}
	if r.Images != "" {
		c.Images = strings.Split(r.Images, ",")
	}
	return c
}
