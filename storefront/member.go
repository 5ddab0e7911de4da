package storefront

import (
	"context"
	"fmt"
)

// LoginParam is the body of Login.
type LoginParam struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginData is the data of a successful login.
type LoginData struct {
	Token     string `json:"token"`
	TokenHead string `json:"tokenHead"`
}

// RegisterParam is the body of Register.
type RegisterParam struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Telephone string `json:"telephone"`
	AuthCode  string `json:"authCode,omitempty"`
}

// Member is the signed-in member.
type Member struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Nickname string   `json:"nickname"`
	Phone    string   `json:"phone"`
	Icon     string   `json:"icon"`
	Gender   int      `json:"gender"`
	Roles    []string `json:"roles,omitempty"`
}

// Address is a member shipping address.
type Address struct {
	ID            int64  `json:"id,omitempty"`
	Name          string `json:"name"`
	PhoneNumber   string `json:"phoneNumber"`
	DefaultStatus int    `json:"defaultStatus"`
	PostCode      string `json:"postCode,omitempty"`
	Province      string `json:"province"`
	City          string `json:"city"`
	Region        string `json:"region"`
	DetailAddress string `json:"detailAddress"`
}

// Coupon is a member coupon.
type Coupon struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Type      int     `json:"type"`
	Amount    float64 `json:"amount"`
	MinPoint  float64 `json:"minPoint"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	UseStatus int     `json:"useStatus"`
}

// Favorite is a favorited product.
type Favorite struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductPic   string  `json:"productPic"`
	ProductPrice float64 `json:"productPrice"`
	CreateTime   string  `json:"createTime"`
}

// PasswordParam is the body of UpdatePassword.
type PasswordParam struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Login signs in and stores data.token in the credentials.
func (c *Client) Login(ctx context.Context, p LoginParam) (*Reply[LoginData], error) {
	reply, err := post[LoginData](ctx, c, "/sso/login", p, nil)
	if err != nil {
		return nil, err
	}
	if reply.Data.Token != "" {
		if err := c.creds.SetToken(ctx, reply.Data.Token); err != nil {
			return reply, fmt.Errorf("storefront: store token: %w", err)
		}
	}
	return reply, nil
}

// Logout drops the stored token. The backend keeps no session to end.
func (c *Client) Logout(ctx context.Context) error {
	return c.creds.Clear(ctx)
}

// Register creates a member.
func (c *Client) Register(ctx context.Context, p RegisterParam) (*Reply[any], error) {
	return post[any](ctx, c, "/sso/register", p, nil)
}

// UserInfo returns the signed-in member.
func (c *Client) UserInfo(ctx context.Context) (*Reply[Member], error) {
	return get[Member](ctx, c, "/member/info", nil)
}

// UpdateUserInfo saves member changes.
func (c *Client) UpdateUserInfo(ctx context.Context, m Member) (*Reply[any], error) {
	return post[any](ctx, c, "/member/update", m, nil)
}

// UpdatePassword changes the member password.
func (c *Client) UpdatePassword(ctx context.Context, p PasswordParam) (*Reply[any], error) {
	return post[any](ctx, c, "/member/updatePassword", p, nil)
}

// AddressList returns the member's addresses.
func (c *Client) AddressList(ctx context.Context) (*Reply[[]Address], error) {
	return get[[]Address](ctx, c, "/member/address/list", nil)
}

// AddAddress stores a new address.
func (c *Client) AddAddress(ctx context.Context, a Address) (*Reply[any], error) {
	return post[any](ctx, c, "/member/address/add", a, nil)
}

// UpdateAddress replaces an address.
func (c *Client) UpdateAddress(ctx context.Context, id int64, a Address) (*Reply[any], error) {
	return post[any](ctx, c, fmt.Sprintf("/member/address/update/%d", id), a, nil)
}

// DeleteAddress removes an address.
func (c *Client) DeleteAddress(ctx context.Context, id int64) (*Reply[any], error) {
	return post[any](ctx, c, fmt.Sprintf("/member/address/delete/%d", id), nil, nil)
}

// CouponList returns the member's coupons.
func (c *Client) CouponList(ctx context.Context) (*Reply[[]Coupon], error) {
	return get[[]Coupon](ctx, c, "/member/coupon/list", nil)
}

// AvailableCoupons returns the coupons usable on a cart.
func (c *Client) AvailableCoupons(ctx context.Context, cartID int64) (*Reply[[]Coupon], error) {
	return get[[]Coupon](ctx, c, fmt.Sprintf("/member/coupon/list/cart/%d", cartID), nil)
}

// ClaimCoupon takes a coupon for the member.
func (c *Client) ClaimCoupon(ctx context.Context, couponID int64) (*Reply[any], error) {
	return post[any](ctx, c, fmt.Sprintf("/member/coupon/add/%d", couponID), nil, nil)
}

// FavoritesList returns a page of favorites.
func (c *Client) FavoritesList(ctx context.Context, pageNum, pageSize int) (*Reply[Page[Favorite]], error) {
	q := map[string]any{}
	if pageNum > 0 {
		q["pageNum"] = pageNum
	}
	if pageSize > 0 {
		q["pageSize"] = pageSize
	}
	return get[Page[Favorite]](ctx, c, "/member/favorites/list", q)
}

// AddFavorite favorites a product.
func (c *Client) AddFavorite(ctx context.Context, productID int64) (*Reply[any], error) {
	return post[any](ctx, c, "/member/favorites/add", map[string]any{"productId": productID}, nil)
}

// RemoveFavorite unfavorites a product.
func (c *Client) RemoveFavorite(ctx context.Context, productID int64) (*Reply[any], error) {
	return post[any](ctx, c, fmt.Sprintf("/member/favorites/delete/%d", productID), nil, nil)
}

// IsFavorite reports whether a product is favorited.
func (c *Client) IsFavorite(ctx context.Context, productID int64) (*Reply[bool], error) {
	return get[bool](ctx, c, fmt.Sprintf("/member/favorites/check/%d", productID), nil)
}
