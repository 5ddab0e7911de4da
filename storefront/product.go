package storefront

import (
	"context"
	"fmt"
)

// Product is a storefront product summary.
type Product struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	SubTitle            string  `json:"subTitle"`
	Pic                 string  `json:"pic"`
	Price               float64 `json:"price"`
	OriginalPrice       float64 `json:"originalPrice"`
	Stock               int     `json:"stock"`
	Sale                int     `json:"sale"`
	BrandName           string  `json:"brandName"`
	ProductCategoryName string  `json:"productCategoryName"`
}

// ProductDetail is a product with its gallery and description.
type ProductDetail struct {
	Product
	AlbumPics   string `json:"albumPics"`
	Description string `json:"description"`
	DetailHTML  string `json:"detailHtml"`
}

// Category is a storefront product category.
type Category struct {
	ID       int64      `json:"id"`
	ParentID int64      `json:"parentId"`
	Name     string     `json:"name"`
	Icon     string     `json:"icon"`
	Level    int        `json:"level"`
	Children []Category `json:"children,omitempty"`
}

// Brand is a product brand.
type Brand struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FirstLetter string `json:"firstLetter"`
	Logo        string `json:"logo"`
	BigPic      string `json:"bigPic"`
	BrandStory  string `json:"brandStory"`
}

// ProductQuery filters ProductList and Search. Zero fields are omitted.
type ProductQuery struct {
	PageNum           int
	PageSize          int
	BrandID           int64
	ProductCategoryID int64
	Sort              int
}

func (q ProductQuery) params() map[string]any {
	p := map[string]any{}
	for key, v := range map[string]int64{
		"pageNum":           int64(q.PageNum),
		"pageSize":          int64(q.PageSize),
		"brandId":           q.BrandID,
		"productCategoryId": q.ProductCategoryID,
		"sort":              int64(q.Sort),
	} {
		if v != 0 {
			p[key] = v
		}
	}
	return p
}

// ProductList returns a page of products.
func (c *Client) ProductList(ctx context.Context, q ProductQuery) (*Reply[Page[Product]], error) {
	return get[Page[Product]](ctx, c, "/product/list", q.params())
}

// ProductDetail returns one product.
func (c *Client) ProductDetail(ctx context.Context, id int64) (*Reply[ProductDetail], error) {
	return get[ProductDetail](ctx, c, fmt.Sprintf("/product/detail/%d", id), nil)
}

// Categories returns the category tree.
func (c *Client) Categories(ctx context.Context) (*Reply[[]Category], error) {
	return get[[]Category](ctx, c, "/product/category/list", nil)
}

// CategoryDetail returns one category.
func (c *Client) CategoryDetail(ctx context.Context, id int64) (*Reply[Category], error) {
	return get[Category](ctx, c, fmt.Sprintf("/product/category/%d", id), nil)
}

// Brands returns every brand.
func (c *Client) Brands(ctx context.Context) (*Reply[[]Brand], error) {
	return get[[]Brand](ctx, c, "/product/brand/list", nil)
}

// BrandDetail returns one brand.
func (c *Client) BrandDetail(ctx context.Context, id int64) (*Reply[Brand], error) {
	return get[Brand](ctx, c, fmt.Sprintf("/product/brand/%d", id), nil)
}

// Search returns products matching keyword under the extra filters.
func (c *Client) Search(ctx context.Context, keyword string, q ProductQuery) (*Reply[Page[Product]], error) {
	p := q.params()
	p["keyword"] = keyword
	return get[Page[Product]](ctx, c, "/product/search", p)
}

// Recommended returns the recommended products.
func (c *Client) Recommended(ctx context.Context) (*Reply[[]Product], error) {
	return get[[]Product](ctx, c, "/product/recommend", nil)
}

// Hot returns the best sellers.
func (c *Client) Hot(ctx context.Context) (*Reply[[]Product], error) {
	return get[[]Product](ctx, c, "/product/hot", nil)
}

// New returns the newest products.
func (c *Client) New(ctx context.Context) (*Reply[[]Product], error) {
	return get[[]Product](ctx, c, "/product/new", nil)
}
