package storefront

import "context"

// CartItem is a line in the storefront cart.
type CartItem struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"productId"`
	ProductSkuID int64   `json:"productSkuId"`
	ProductName  string  `json:"productName"`
	ProductPic   string  `json:"productPic"`
	ProductAttr  string  `json:"productAttr"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

// PromotionCartItem is a cart line with its promotion applied.
type PromotionCartItem struct {
	CartItem
	PromotionMessage string  `json:"promotionMessage"`
	ReduceAmount     float64 `json:"reduceAmount"`
	RealStock        int     `json:"realStock"`
}

// CartAdd is the body of AddToCart.
type CartAdd struct {
	ProductID    int64  `json:"productId"`
	ProductSkuID int64  `json:"productSkuId,omitempty"`
	Quantity     int    `json:"quantity"`
	ProductAttr  string `json:"productAttr,omitempty"`
}

// CartList returns the cart.
func (c *Client) CartList(ctx context.Context) (*Reply[[]CartItem], error) {
	return get[[]CartItem](ctx, c, "/cart/list", nil)
}

// CartListWithPromotion returns the cart with promotions applied.
func (c *Client) CartListWithPromotion(ctx context.Context) (*Reply[[]PromotionCartItem], error) {
	return get[[]PromotionCartItem](ctx, c, "/cart/list/promotion", nil)
}

// AddToCart adds a product to the cart.
func (c *Client) AddToCart(ctx context.Context, item CartAdd) (*Reply[any], error) {
	return post[any](ctx, c, "/cart/add", item, nil)
}

// UpdateCartQuantity sets the quantity of a line. The backend takes this as
// a GET with query parameters.
func (c *Client) UpdateCartQuantity(ctx context.Context, id int64, quantity int) (*Reply[any], error) {
	return get[any](ctx, c, "/cart/update/quantity", map[string]any{"id": id, "quantity": quantity})
}

// DeleteCartItems removes lines by id.
func (c *Client) DeleteCartItems(ctx context.Context, ids []int64) (*Reply[any], error) {
	return post[any](ctx, c, "/cart/delete", map[string]any{"ids": ids}, nil)
}

// ClearCart empties the cart.
func (c *Client) ClearCart(ctx context.Context) (*Reply[any], error) {
	return post[any](ctx, c, "/cart/clear", nil, nil)
}
