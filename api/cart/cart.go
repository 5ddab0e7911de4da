// Package cart reads and edits the shopping cart.
package cart

import (
	"context"
	"fmt"

	"github.com/kbukum/mallkit/request"
)

const pathCart = "/api/v1/cart"

// Store name and id used for the single-store cart group.
const (
	StoreName = "商城"
	StoreID   = "store_1"
)

// Item is the backend cart record.
type Item struct {
	ID         int64    `json:"id"`
	ProductID  int64    `json:"product_id"`
	SkuID      int64    `json:"sku_id"`
	Quantity   int      `json:"quantity"`
	Product    *Product `json:"product,omitempty"`
	ProductSku *Sku     `json:"product_sku,omitempty"`
}

// Product is the product summary embedded in a cart record.
type Product struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	MainImage string  `json:"main_image"`
}

// Sku is the sku summary embedded in a cart record.
type Sku struct {
	ID      int64   `json:"id"`
	SkuName string  `json:"sku_name"`
	Price   float64 `json:"price"`
}

// Goods is a cart line as the cart page renders it.
type Goods struct {
	GoodsID      int64   `json:"goodsId"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	OriginPrice  float64 `json:"originPrice"`
	PrimaryImage string  `json:"primaryImage"`
	SkuID        int64   `json:"skuId"`
	SpecInfo     string  `json:"specInfo"`
}

// Line pairs a cart line with its quantity.
type Line struct {
	ID        int64 `json:"id"`
	Goods     Goods `json:"goods"`
	Quantity  int   `json:"quantity"`
	IsChecked bool  `json:"isChecked"`
}

// StoreGoods is the lines of one store.
type StoreGoods struct {
	StoreName string `json:"storeName"`
	StoreID   string `json:"storeId"`
	GoodsList []Line `json:"goodsList"`
}

// Group is the whole cart page model.
type Group struct {
	StoreGoodsList      []StoreGoods `json:"storeGoodsList"`
	IsAllSelected       bool         `json:"isAllSelected"`
	TotalAmount         float64      `json:"totalAmount"`
	TotalDiscountAmount float64      `json:"totalDiscountAmount"`
}

// Service calls the cart endpoints.
type Service struct {
	client *request.Client
}

// New creates a cart Service.
func New(c *request.Client) *Service {
	return &Service{client: c}
}

// FetchGroup loads the cart and groups it under the single store.
func (s *Service) FetchGroup(ctx context.Context) (Group, error) {
	items, err := request.GetAs[[]Item](ctx, s.client, pathCart, nil)
	if err != nil {
		return Group{}, err
	}
	return GroupItems(items), nil
}

// Add puts quantity units of a product sku in the cart. A zero quantity
// means one unit; any other value is sent as given and the backend judges it.
func (s *Service) Add(ctx context.Context, productID, skuID int64, quantity int) error {
	if quantity == 0 {
		quantity = 1
	}
	_, err := s.client.Post(ctx, pathCart, map[string]any{
		"product_id": productID,
		"sku_id":     skuID,
		"quantity":   quantity,
	})
	return err
}

// Update sets the quantity of a cart line.
func (s *Service) Update(ctx context.Context, cartID int64, quantity int) error {
	_, err := s.client.Put(ctx, fmt.Sprintf("%s/%d", pathCart, cartID), map[string]any{"quantity": quantity})
	return err
}

// Remove deletes a cart line.
func (s *Service) Remove(ctx context.Context, cartID int64) error {
	_, err := s.client.Delete(ctx, fmt.Sprintf("%s/%d", pathCart, cartID), nil)
	return err
}

// GroupItems builds the page model. A line is priced at its sku price, then
// its product price, then zero.
func GroupItems(items []Item) Group {
	lines := make([]Line, 0, len(items))
	total := 0.0
	for _, it := range items {
		g := Goods{GoodsID: it.ProductID, SkuID: it.SkuID}
		if it.Product != nil {
			g.Title = it.Product.Name
			g.Price = it.Product.Price
			g.OriginPrice = it.Product.Price
			g.PrimaryImage = it.Product.MainImage
		}
		if it.ProductSku != nil {
			if it.ProductSku.Price != 0 {
				g.Price = it.ProductSku.Price
			}
			g.SpecInfo = it.ProductSku.SkuName
		}
		total += g.Price * float64(it.Quantity)
		lines = append(lines, Line{ID: it.ID, Goods: g, Quantity: it.Quantity, IsChecked: true})
	}
	return Group{
		StoreGoodsList: []StoreGoods{{StoreName: StoreName, StoreID: StoreID, GoodsList: lines}},
		IsAllSelected:  true,
		TotalAmount:    total,
	}
}
