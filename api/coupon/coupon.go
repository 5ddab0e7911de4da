// Package coupon lists, claims and describes coupons.
package coupon

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/request"
)

const (
	pathCoupons   = "/api/v1/coupons"
	pathMyCoupons = "/api/v1/coupons/my"
)

// Coupon kinds as the pages name them.
const (
	TypePrice    = "price"
	TypeDiscount = "discount"
)

// Coupon states as the pages name them.
const (
	StatusDefault   = "default"
	StatusAvailable = "available"
	StatusUsed      = "used"
	StatusExpired   = "expired"
)

var statusFilter = map[string]int{
	StatusDefault:   0,
	StatusAvailable: 1,
	StatusUsed:      2,
	StatusExpired:   3,
}

// backendPriceType is the backend type of a fixed-amount coupon.
const backendPriceType = 1

// Record is the backend coupon template.
type Record struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Type      int     `json:"type"`
	Amount    float64 `json:"amount"`
	MinAmount float64 `json:"min_amount"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Total     int     `json:"total"`
	Used      int     `json:"used"`
}

// UserRecord is a coupon held by the user.
type UserRecord struct {
	ID        int64   `json:"id"`
	CouponID  int64   `json:"coupon_id"`
	Status    int     `json:"status"`
	UsedTime  string  `json:"used_time"`
	CreatedAt string  `json:"created_at"`
	Coupon    *Record `json:"coupon,omitempty"`
}

// Coupon is a claimable coupon. Value and Base are in cents.
type Coupon struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Value       int64  `json:"value"`
	Base        int64  `json:"base"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
	Status      string `json:"status"`
}

// UserCoupon is a held coupon. Value and Base are in cents.
type UserCoupon struct {
	ID         int64  `json:"id"`
	CouponID   int64  `json:"couponId"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Value      int64  `json:"value"`
	Base       int64  `json:"base"`
	Status     string `json:"status"`
	UsedTime   string `json:"usedTime"`
	CreateTime string `json:"createTime"`
}

// Service calls the coupon endpoints.
type Service struct {
	client *request.Client
	log    *logger.Logger
}

// New creates a coupon Service.
func New(c *request.Client) *Service {
	return &Service{client: c, log: logger.Get(logger.ComponentAPI)}
}

// List returns the claimable coupons. Failures are logged and yield an
// empty list.
func (s *Service) List(ctx context.Context) []Coupon {
	records, err := request.GetAs[[]Record](ctx, s.client, pathCoupons, nil)
	if err != nil {
		s.log.Warn("list coupons failed", logger.ErrorFields("coupon.list", err))
		return []Coupon{}
	}
	out := make([]Coupon, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}

// Claim takes one coupon for the user.
func (s *Service) Claim(ctx context.Context, id int64) error {
	_, err := s.client.Post(ctx, fmt.Sprintf("%s/%d/claim", pathCoupons, id), nil)
	return err
}

// ListMine returns the user's coupons filtered by status. An unknown or
// default status lists everything. Failures yield an empty list.
func (s *Service) ListMine(ctx context.Context, status string) []UserCoupon {
	var q map[string]any
	if code, ok := statusFilter[status]; ok && code != 0 {
		q = map[string]any{"status": code}
	}
	records, err := request.GetAs[[]UserRecord](ctx, s.client, pathMyCoupons, q)
	if err != nil {
		s.log.Warn("list user coupons failed", logger.ErrorFields("coupon.mine", err))
		return []UserCoupon{}
	}
	out := make([]UserCoupon, 0, len(records))
	for _, r := range records {
		out = append(out, FromUserRecord(r))
	}
	return out
}

// FromRecord maps a coupon template.
func FromRecord(r Record) Coupon {
	return Coupon{
		ID:          r.ID,
		Name:        r.Name,
		Type:        typeName(r.Type),
		Value:       cents(r.Amount),
		Base:        cents(r.MinAmount),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsAvailable: r.Total > r.Used,
		Status:      StatusAvailable,
	}
}

// FromUserRecord maps a held coupon.
func FromUserRecord(r UserRecord) UserCoupon {
	uc := UserCoupon{
		ID:         r.ID,
		CouponID:   r.CouponID,
		Type:       TypeDiscount,
		UsedTime:   r.UsedTime,
		CreateTime: r.CreatedAt,
	}
	if r.Coupon != nil {
		uc.Name = r.Coupon.Name
		uc.Type = typeName(r.Coupon.Type)
		uc.Value = cents(r.Coupon.Amount)
		uc.Base = cents(r.Coupon.MinAmount)
	}
	switch r.Status {
	case 1:
		uc.Status = StatusAvailable
	case 2:
		uc.Status = StatusUsed
	default:
		uc.Status = StatusExpired
	}
	return uc
}

// Describe renders the usage line of a coupon, for example
// "减免 10 元，满100元可用。" or "8折，满50元可用。". Discount values are
// the fold number itself.
func Describe(kind string, value, base int64) string {
	var desc string
	switch kind {
	case TypePrice:
		desc = "减免 " + yuan(value) + " 元"
	case TypeDiscount:
		desc = strconv.FormatInt(value, 10) + "折"
	default:
		return ""
	}
	if base != 0 {
		desc += "，满" + yuan(base) + "元可用"
	}
	return desc + "。"
}

func typeName(t int) string {
	if t == backendPriceType {
		return TypePrice
	}
	return TypeDiscount
}

func cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func yuan(c int64) string {
	return strconv.FormatFloat(float64(c)/100, 'f', -1, 64)
}
