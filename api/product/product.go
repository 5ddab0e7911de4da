// Package product lists goods, goods detail and categories.
package product

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/request"
)

const (
	pathProducts   = "/api/v1/products"
	pathCategories = "/api/v1/products/categories"
)

// Product is the backend product record.
type Product struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	SubTitle   string    `json:"sub_title"`
	MainImage  string    `json:"main_image"`
	SubImages  string    `json:"sub_images"`
	Detail     string    `json:"detail"`
	Price      float64   `json:"price"`
	Stock      int       `json:"stock"`
	Status     int       `json:"status"`
	CategoryID int64     `json:"category_id"`
	Category   *Category `json:"category,omitempty"`
}

// Category is the backend category record.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	ParentID int64  `json:"parent_id"`
}

// StatusOnSale marks a product that can be bought.
const StatusOnSale = 1

// GoodsCard is a product in a listing.
type GoodsCard struct {
	SpuID       int64    `json:"spuId"`
	Thumb       string   `json:"thumb"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	OriginPrice float64  `json:"originPrice"`
	Tags        []string `json:"tags"`
	ETitle      string   `json:"etitle"`
}

// GoodsDetail is a product on its detail page.
type GoodsDetail struct {
	GoodsID      int64    `json:"goodsId"`
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	OriginPrice  float64  `json:"originPrice"`
	PrimaryImage string   `json:"primaryImage"`
	Images       []string `json:"images"`
	Detail       string   `json:"detail"`
	Stock        int      `json:"stock"`
	Category     string   `json:"category"`
	IsOnSale     bool     `json:"isOnSale"`
	ETitle       string   `json:"etitle"`
}

// CategoryGroup is a category in the category page tree.
type CategoryGroup struct {
	GroupID   int64           `json:"groupId"`
	Name      string          `json:"name"`
	Thumbnail string          `json:"thumbnail"`
	Children  []CategoryGroup `json:"children"`
}

// ListParams filters a goods listing. Zero Page and Limit mean 1 and 20.
type ListParams struct {
	Page       int
	Limit      int
	CategoryID int64
	Keyword    string
}

func (p ListParams) query() map[string]any {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	q := map[string]any{"page": p.Page, "limit": p.Limit}
	if p.CategoryID != 0 {
		q["category_id"] = p.CategoryID
	}
	if p.Keyword != "" {
		q["keyword"] = p.Keyword
	}
	return q
}

// Service calls the product endpoints.
type Service struct {
	client *request.Client
	log    *logger.Logger
}

// New creates a product Service.
func New(c *request.Client) *Service {
	return &Service{client: c, log: logger.Get(logger.ComponentAPI)}
}

// ListGoods returns a page of goods. Failures are logged and yield an empty
// list.
func (s *Service) ListGoods(ctx context.Context, p ListParams) []GoodsCard {
	raw, err := s.client.Get(ctx, pathProducts, p.query())
	if err != nil {
		s.log.Warn("list goods failed", logger.ErrorFields("product.list", err))
		return []GoodsCard{}
	}
	products, err := decodeList(raw)
	if err != nil {
		s.log.Warn("list goods failed", logger.ErrorFields("product.list", err))
		return []GoodsCard{}
	}

	cards := make([]GoodsCard, 0, len(products))
	for _, item := range products {
		cards = append(cards, ToCard(item))
	}
	return cards
}

// GetGoods returns one product. Errors are returned to the caller.
func (s *Service) GetGoods(ctx context.Context, id int64) (GoodsDetail, error) {
	p, err := request.GetAs[Product](ctx, s.client, fmt.Sprintf("%s/%d", pathProducts, id), nil)
	if err != nil {
		return GoodsDetail{}, err
	}
	return ToDetail(p), nil
}

// ListCategories returns the top-level categories. Failures yield an empty
// list.
func (s *Service) ListCategories(ctx context.Context) []CategoryGroup {
	cats, err := request.GetAs[[]Category](ctx, s.client, pathCategories, nil)
	if err != nil {
		s.log.Warn("list categories failed", logger.ErrorFields("product.categories", err))
		return []CategoryGroup{}
	}
	groups := make([]CategoryGroup, 0, len(cats))
	for _, c := range cats {
		groups = append(groups, CategoryGroup{GroupID: c.ID, Name: c.Name, Thumbnail: c.Icon, Children: []CategoryGroup{}})
	}
	return groups
}

// Categories returns the raw category records.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return request.GetAs[[]Category](ctx, s.client, pathCategories, nil)
}

// ToCard maps a product into a listing card.
func ToCard(p Product) GoodsCard {
	tags := []string{}
	if p.SubTitle != "" {
		tags = append(tags, p.SubTitle)
	}
	return GoodsCard{
		SpuID:       p.ID,
		Thumb:       p.MainImage,
		Title:       p.Name,
		Price:       p.Price,
		OriginPrice: p.Price,
		Tags:        tags,
		ETitle:      p.SubTitle,
	}
}

// ToDetail maps a product into its detail page shape.
func ToDetail(p Product) GoodsDetail {
	images := []string{p.MainImage}
	if p.SubImages != "" {
		images = strings.Split(p.SubImages, ",")
	}
	category := ""
	if p.Category != nil {
		category = p.Category.Name
	}
	return GoodsDetail{
		GoodsID:      p.ID,
		Title:        p.Name,
		Price:        p.Price,
		OriginPrice:  p.Price,
		PrimaryImage: p.MainImage,
		Images:       images,
		Detail:       p.Detail,
		Stock:        p.Stock,
		Category:     category,
		IsOnSale:     p.Status == StatusOnSale,
		ETitle:       p.SubTitle,
	}
}

// decodeList reads a listing from either the data or the list field.
func decodeList(raw json.RawMessage) ([]Product, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var page struct {
		Data []Product `json:"data"`
		List []Product `json:"list"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("product: decode listing: %w", err)
	}
	if page.Data != nil {
		return page.Data, nil
	}
	return page.List, nil
}
