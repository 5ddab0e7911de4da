// Package order lists, creates, pays and cancels orders.
package order

import (
	"context"
	"fmt"

	"github.com/kbukum/mallkit/request"
)

const pathOrders = "/api/v1/orders"

// Status is an order lifecycle state.
type Status int

const (
	StatusPendingPayment Status = 1
	StatusPendingShip    Status = 2
	StatusShipped        Status = 3
	StatusCompleted      Status = 4
	StatusCancelled      Status = 5
)

type statusInfo struct {
	text  string
	color string
}

var statusTable = map[Status]statusInfo{
	StatusPendingPayment: {"待付款", "#FA550A"},
	StatusPendingShip:    {"待发货", "#FA550A"},
	StatusShipped:        {"待收货", "#FA550A"},
	StatusCompleted:      {"已完成", "#00A870"},
	StatusCancelled:      {"已取消", "#BBBBBB"},
}

// StatusText is the display label of s.
func StatusText(s Status) string {
	if info, ok := statusTable[s]; ok {
		return info.text
	}
	return "未知状态"
}

// StatusColor is the display color of s.
func StatusColor(s Status) string {
	if info, ok := statusTable[s]; ok {
		return info.color
	}
	return "#000000"
}

// PaymentWechat is the default payment type.
const PaymentWechat = 1

// Item is an order line.
type Item struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	SkuID       int64   `json:"sku_id"`
	ProductName string  `json:"product_name"`
	Image       string  `json:"product_image"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Order is the backend order record.
type Order struct {
	ID          int64   `json:"id"`
	OrderNo     string  `json:"order_no"`
	UserID      int64   `json:"user_id"`
	TotalAmount float64 `json:"total_amount"`
	PayAmount   float64 `json:"pay_amount"`
	Status      Status  `json:"status"`
	PaymentType int     `json:"payment_type"`
	AddressID   int64   `json:"address_id"`
	Remark      string  `json:"remark"`
	CreatedAt   string  `json:"created_at"`
	Items       []Item  `json:"items"`
}

// StatusText is the display label of the order status.
func (o Order) StatusText() string { return StatusText(o.Status) }

// Page is a page of orders.
type Page struct {
	List     []Order `json:"list"`
	Total    int64   `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
}

// CreateItem is a line of a new order.
type CreateItem struct {
	ProductID int64 `json:"product_id"`
	SkuID     int64 `json:"sku_id"`
	Quantity  int   `json:"quantity"`
}

// CreateRequest is the body of a new order. Cart ids take precedence over
// items on the backend.
type CreateRequest struct {
	AddressID int64        `json:"address_id"`
	CartIDs   []int64      `json:"cart_ids,omitempty"`
	Items     []CreateItem `json:"items,omitempty"`
	CouponID  int64        `json:"coupon_id,omitempty"`
	Remark    string       `json:"remark,omitempty"`
}

// Service calls the order endpoints.
type Service struct {
	client *request.Client
}

// New creates an order Service.
func New(c *request.Client) *Service {
	return &Service{client: c}
}

// List returns a page of orders. Zero page and limit mean 1 and 10; status
// filters only when positive.
func (s *Service) List(ctx context.Context, page, limit int, status Status) (Page, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	q := map[string]any{"page": page, "limit": limit}
	if status > 0 {
		q["status"] = int(status)
	}
	return request.GetAs[Page](ctx, s.client, pathOrders, q)
}

// Get returns one order.
func (s *Service) Get(ctx context.Context, id int64) (Order, error) {
	return request.GetAs[Order](ctx, s.client, orderPath(id, ""), nil)
}

// Create places an order.
func (s *Service) Create(ctx context.Context, r CreateRequest) (Order, error) {
	return request.PostAs[Order](ctx, s.client, pathOrders, r)
}

// Pay marks an order paid. A zero paymentType means PaymentWechat.
func (s *Service) Pay(ctx context.Context, id int64, paymentType int) error {
	if paymentType == 0 {
		paymentType = PaymentWechat
	}
	_, err := s.client.Put(ctx, orderPath(id, "pay"), map[string]any{"payment_type": paymentType})
	return err
}

// Cancel cancels an unpaid order.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	_, err := s.client.Put(ctx, orderPath(id, "cancel"), nil)
	return err
}

func orderPath(id int64, action string) string {
	if action == "" {
		return fmt.Sprintf("%s/%d", pathOrders, id)
	}
	return fmt.Sprintf("%s/%d/%s", pathOrders, id, action)
}
