// Package home assembles the home page: banners and category tabs.
package home

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/mallkit/api/product"
	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/request"
)

const (
	pathBanners    = "/api/v1/banners"
	pathCategories = "/api/v1/products/categories"
)

// FeaturedTab is always the first home tab.
var FeaturedTab = Tab{Text: "精选推荐", Key: 0}

// MaxCategoryTabs caps the category tabs after the featured one.
const MaxCategoryTabs = 5

// Banner is the backend banner record.
type Banner struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
	Link  string `json:"link"`
	Sort  int    `json:"sort"`
}

// Slide is a banner in the home swiper.
type Slide struct {
	Img  string `json:"img"`
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Tab is a home page tab keyed by category id.
type Tab struct {
	Text string `json:"text"`
	Key  int64  `json:"key"`
}

// Home is the home page model.
type Home struct {
	Swiper  []Slide `json:"swiper"`
	TabList []Tab   `json:"tabList"`
}

// Service calls the home endpoints.
type Service struct {
	client *request.Client
	log    *logger.Logger
}

// New creates a home Service.
func New(c *request.Client) *Service {
	return &Service{client: c, log: logger.Get(logger.ComponentAPI)}
}

// Fetch loads banners and tabs concurrently. Each half falls back on its own,
// so only cancellation of ctx fails the call.
func (s *Service) Fetch(ctx context.Context) (Home, error) {
	var h Home
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h.Swiper = s.Banners(gctx)
		return nil
	})
	g.Go(func() error {
		h.TabList = s.Tabs(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Home{}, err
	}
	if err := ctx.Err(); err != nil {
		return Home{}, err
	}
	return h, nil
}

// Banners returns the swiper slides. Failures yield an empty list.
func (s *Service) Banners(ctx context.Context) []Slide {
	banners, err := request.GetAs[[]Banner](ctx, s.client, pathBanners, nil)
	if err != nil {
		s.log.Warn("fetch banners failed", logger.ErrorFields("home.banners", err))
		return []Slide{}
	}
	out := make([]Slide, 0, len(banners))
	for _, b := range banners {
		out = append(out, Slide{Img: b.Image, Text: b.Title, URL: b.Link})
	}
	return out
}

// Tabs returns the featured tab followed by up to MaxCategoryTabs
// categories. Failures yield only the featured tab.
func (s *Service) Tabs(ctx context.Context) []Tab {
	tabs := []Tab{FeaturedTab}
	cats, err := request.GetAs[[]product.Category](ctx, s.client, pathCategories, nil)
	if err != nil {
		s.log.Warn("fetch categories failed", logger.ErrorFields("home.tabs", err))
		return tabs
	}
	if len(cats) > MaxCategoryTabs {
		cats = cats[:MaxCategoryTabs]
	}
	for _, c := range cats {
		tabs = append(tabs, Tab{Text: c.Name, Key: c.ID})
	}
	return tabs
}
