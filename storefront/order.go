package storefront

import (
	"context"
	"encoding/json"
	"fmt"
)

// OrderParam is the body of SubmitOrder.
type OrderParam struct {
	MemberReceiveAddressID int64   `json:"memberReceiveAddressId"`
	CouponID               int64   `json:"couponId,omitempty"`
	UseIntegration         int     `json:"useIntegration,omitempty"`
	PayType                int     `json:"payType"`
	CartIDs                []int64 `json:"cartIds"`
}

// OrderItem is a line of a storefront order.
type OrderItem struct {
	ProductID       int64   `json:"productId"`
	ProductName     string  `json:"productName"`
	ProductPic      string  `json:"productPic"`
	ProductPrice    float64 `json:"productPrice"`
	ProductQuantity int     `json:"productQuantity"`
	ProductAttr     string  `json:"productAttr"`
}

// Order is a storefront order.
type Order struct {
	ID           int64       `json:"id"`
	OrderSn      string      `json:"orderSn"`
	TotalAmount  float64     `json:"totalAmount"`
	PayAmount    float64     `json:"payAmount"`
	PayType      int         `json:"payType"`
	Status       int         `json:"status"`
	CreateTime   string      `json:"createTime"`
	ReceiverName string      `json:"receiverName"`
	OrderItems   []OrderItem `json:"orderItemList"`
}

// OrderQuery filters OrderList. A nil Status lists every state.
type OrderQuery struct {
	Status   *int
	PageNum  int
	PageSize int
}

func (q OrderQuery) params() map[string]any {
	p := map[string]any{}
	if q.Status != nil {
		p["status"] = *q.Status
	}
	if q.PageNum > 0 {
		p["pageNum"] = q.PageNum
	}
	if q.PageSize > 0 {
		p["pageSize"] = q.PageSize
	}
	return p
}

// GenerateConfirmOrder returns the confirmation model for the cart. Its
// shape depends on the backend and is left undecoded.
func (c *Client) GenerateConfirmOrder(ctx context.Context) (*Reply[json.RawMessage], error) {
	return post[json.RawMessage](ctx, c, "/order/confirmOrder", nil, nil)
}

// SubmitOrder places an order.
func (c *Client) SubmitOrder(ctx context.Context, p OrderParam) (*Reply[json.RawMessage], error) {
	return post[json.RawMessage](ctx, c, "/order/generateOrder", p, nil)
}

// OrderDetail returns one order.
func (c *Client) OrderDetail(ctx context.Context, id int64) (*Reply[Order], error) {
	return get[Order](ctx, c, fmt.Sprintf("/order/detail/%d", id), nil)
}

// OrderList returns a page of orders.
func (c *Client) OrderList(ctx context.Context, q OrderQuery) (*Reply[Page[Order]], error) {
	return get[Page[Order]](ctx, c, "/order/list", q.params())
}

// CancelOrder cancels an order. The id travels as a query parameter.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) (*Reply[any], error) {
	return post[any](ctx, c, "/order/cancelOrder", nil, map[string]any{"orderId": orderID})
}

// DeleteOrder is CancelOrder.
func (c *Client) DeleteOrder(ctx context.Context, orderID int64) (*Reply[any], error) {
	return c.CancelOrder(ctx, orderID)
}

// PaySuccess reports a completed payment.
func (c *Client) PaySuccess(ctx context.Context, orderID int64) (*Reply[any], error) {
	return post[any](ctx, c, "/order/paySuccess", nil, map[string]any{"orderId": orderID})
}

// ConfirmReceipt marks an order received.
func (c *Client) ConfirmReceipt(ctx context.Context, orderID int64) (*Reply[any], error) {
	return post[any](ctx, c, "/order/confirmReceipt", nil, map[string]any{"orderId": orderID})
}

// ConfirmReceiveOrder is ConfirmReceipt.
func (c *Client) ConfirmReceiveOrder(ctx context.Context, orderID int64) (*Reply[any], error) {
	return c.ConfirmReceipt(ctx, orderID)
}
