package mockserver

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// Fault is a business failure answered as a non-200 envelope code.
type Fault struct {
	Code    int
	Message string
}

func (f *Fault) Error() string { return fmt.Sprintf("%d: %s", f.Code, f.Message) }

func fault(code int, msg string) *Fault { return &Fault{Code: code, Message: msg} }

var (
	errProductNotFound = fault(CodeNotFound, "商品不存在")
	errOrderNotFound   = fault(CodeNotFound, "订单不存在")
	errCartNotFound    = fault(CodeNotFound, "购物车商品不存在")
	errAddressNotFound = fault(CodeNotFound, "地址不存在")
	errCouponNotFound  = fault(CodeNotFound, "优惠券不存在")
	errUserNotFound    = fault(CodeNotFound, "用户不存在")
	errOutOfStock      = fault(CodeServerError, MsgOutOfStock)
)

// Store is the in-memory state behind the mock routes. All methods are safe
// for concurrent use.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	categories  []Category
	products    map[int64]*Product
	banners     []Banner
	users       map[int64]*User
	openIDs     map[string]int64
	cart        map[int64]*CartItem
	addresses   map[int64]*Address
	orders      map[int64]*Order
	comments    []*Comment
	coupons     map[int64]*Coupon
	userCoupons map[int64]*UserCoupon

	nextID int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		now:         time.Now,
		products:    make(map[int64]*Product),
		users:       make(map[int64]*User),
		openIDs:     make(map[string]int64),
		cart:        make(map[int64]*CartItem),
		addresses:   make(map[int64]*Address),
		orders:      make(map[int64]*Order),
		coupons:     make(map[int64]*Coupon),
		userCoupons: make(map[int64]*UserCoupon),
		nextID:      1000,
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) stamp() string { return s.now().Format(timeLayout) }

// Ping reports whether the catalog is loaded.
func (s *Store) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.products) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	return nil
}

// Counts returns the number of records per collection.
func (s *Store) Counts() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]string{
		"products": fmt.Sprint(len(s.products)),
		"users":    fmt.Sprint(len(s.users)),
		"orders":   fmt.Sprint(len(s.orders)),
	}
}

// --- catalog ---

// Categories returns the categories in display order.
func (s *Store) Categories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories)
}

// Banners returns the home banners in display order.
func (s *Store) Banners() []Banner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.banners)
}

// Products returns one page of on-sale products matching the filters.
func (s *Store) Products(page, limit int, categoryID int64, keyword string) ([]Product, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []Product
	for _, p := range s.products {
		if p.Status != 1 {
			continue
		}
		if categoryID > 0 && p.CategoryID != categoryID {
			continue
		}
		if keyword != "" && !strings.Contains(p.Name, keyword) && !strings.Contains(p.SubTitle, keyword) {
			continue
		}
		matched = append(matched, s.productView(p))
	}
	slices.SortFunc(matched, func(a, b Product) int { return cmp.Compare(a.ID, b.ID) })
	return paginate(matched, page, limit), int64(len(matched))
}

// Product returns one product with its category and skus.
func (s *Store) Product(id int64) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return Product{}, errProductNotFound
	}
	return s.productView(p), nil
}

func (s *Store) productView(p *Product) Product {
	v := *p
	v.Skus = slices.Clone(p.Skus)
	for i := range s.categories {
		if s.categories[i].ID == p.CategoryID {
			c := s.categories[i]
			v.Category = &c
			break
		}
	}
	return v
}

func (s *Store) sku(p *Product, skuID int64) *Sku {
	for i := range p.Skus {
		if p.Skus[i].ID == skuID {
			return &p.Skus[i]
		}
	}
	return nil
}

// --- users ---

// Login finds or creates the user bound to a wechat code and applies the
// profile fields that are set.
func (s *Store) Login(code, nickName, avatar string, gender int) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	openID := "openid-" + code
	uid, ok := s.openIDs[openID]
	if !ok {
		uid = s.id()
		s.openIDs[openID] = uid
		s.users[uid] = &User{ID: uid, OpenID: openID, NickName: "微信用户"}
	}
	u := s.users[uid]
	if nickName != "" {
		u.NickName = nickName
	}
	if avatar != "" {
		u.Avatar = avatar
	}
	if gender != 0 {
		u.Gender = gender
	}
	return *u
}

// User returns a user by id.
func (s *Store) User(id int64) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, errUserNotFound
	}
	return *u, nil
}

// UpdateUser applies the non-empty profile fields of patch.
func (s *Store) UpdateUser(id int64, patch User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, errUserNotFound
	}
	if patch.NickName != "" {
		u.NickName = patch.NickName
	}
	if patch.Avatar != "" {
		u.Avatar = patch.Avatar
	}
	if patch.Gender != 0 {
		u.Gender = patch.Gender
	}
	if patch.Phone != "" {
		u.Phone = patch.Phone
	}
	return *u, nil
}

// --- cart ---

// Cart returns the user's cart lines with product and sku attached.
func (s *Store) Cart(uid int64) []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []CartItem{}
	for _, it := range s.cart {
		if it.UserID != uid {
			continue
		}
		v := *it
		if p, ok := s.products[it.ProductID]; ok {
			pv := *p
			pv.Skus = nil
			v.Product = &pv
			if sku := s.sku(p, it.SkuID); sku != nil {
				sv := *sku
				v.ProductSku = &sv
			}
		}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b CartItem) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// AddToCart adds quantity units, merging with an existing line for the same
// product and sku. The merged quantity must be in stock.
func (s *Store) AddToCart(uid, productID, skuID int64, quantity int) (CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return CartItem{}, fault(CodeBadRequest, "商品数量必须大于0")
	}
	p, ok := s.products[productID]
	if !ok || p.Status != 1 {
		return CartItem{}, errProductNotFound
	}
	stock := p.Stock
	if skuID != 0 {
		sku := s.sku(p, skuID)
		if sku == nil {
			return CartItem{}, fault(CodeNotFound, "商品规格不存在")
		}
		stock = sku.Stock
	}

	for _, it := range s.cart {
		if it.UserID == uid && it.ProductID == productID && it.SkuID == skuID {
			if it.Quantity+quantity > stock {
				return CartItem{}, errOutOfStock
			}
			it.Quantity += quantity
			return *it, nil
		}
	}
	if quantity > stock {
		return CartItem{}, errOutOfStock
	}
	it := &CartItem{ID: s.id(), UserID: uid, ProductID: productID, SkuID: skuID, Quantity: quantity}
	s.cart[it.ID] = it
	return *it, nil
}

// UpdateCart sets the quantity of one of the user's lines.
func (s *Store) UpdateCart(uid, id int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.cart[id]
	if !ok || it.UserID != uid {
		return errCartNotFound
	}
	if quantity <= 0 {
		return fault(CodeBadRequest, "商品数量必须大于0")
	}
	if p, ok := s.products[it.ProductID]; ok {
		stock := p.Stock
		if sku := s.sku(p, it.SkuID); sku != nil {
			stock = sku.Stock
		}
		if quantity > stock {
			return errOutOfStock
		}
	}
	it.Quantity = quantity
	return nil
}

// RemoveCart deletes one of the user's lines.
func (s *Store) RemoveCart(uid, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.cart[id]
	if !ok || it.UserID != uid {
		return errCartNotFound
	}
	delete(s.cart, id)
	return nil
}

// --- addresses ---

// Addresses returns the user's addresses, default first.
func (s *Store) Addresses(uid int64) []Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Address{}
	for _, a := range s.addresses {
		if a.UserID == uid {
			out = append(out, *a)
		}
	}
	slices.SortFunc(out, func(a, b Address) int {
		if a.IsDefault != b.IsDefault {
			if a.IsDefault {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// SaveAddress creates the address when a.ID is zero and replaces it
// otherwise. A user's first address becomes the default.
func (s *Store) SaveAddress(uid int64, a Address) (Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID != 0 {
		cur, ok := s.addresses[a.ID]
		if !ok || cur.UserID != uid {
			return Address{}, errAddressNotFound
		}
	} else {
		a.ID = s.id()
		if !s.hasAddress(uid) {
			a.IsDefault = true
		}
	}
	a.UserID = uid
	if a.IsDefault {
		s.clearDefault(uid)
	}
	s.addresses[a.ID] = &a
	return a, nil
}

// DeleteAddress removes one of the user's addresses.
func (s *Store) DeleteAddress(uid, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.addresses[id]
	if !ok || a.UserID != uid {
		return errAddressNotFound
	}
	delete(s.addresses, id)
	return nil
}

// SetDefaultAddress makes id the user's only default address.
func (s *Store) SetDefaultAddress(uid, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.addresses[id]
	if !ok || a.UserID != uid {
		return errAddressNotFound
	}
	s.clearDefault(uid)
	a.IsDefault = true
	return nil
}

func (s *Store) hasAddress(uid int64) bool {
	for _, a := range s.addresses {
		if a.UserID == uid {
			return true
		}
	}
	return false
}

func (s *Store) clearDefault(uid int64) {
	for _, a := range s.addresses {
		if a.UserID == uid {
			a.IsDefault = false
		}
	}
}

// --- orders ---

// OrderLine is one requested order line.
type OrderLine struct {
	ProductID int64 `json:"product_id"`
	SkuID     int64 `json:"sku_id"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest is the body of an order creation.
type OrderRequest struct {
	AddressID int64       `json:"address_id"`
	CartIDs   []int64     `json:"cart_ids"`
	Items     []OrderLine `json:"items"`
	CouponID  int64       `json:"coupon_id"`
	Remark    string      `json:"remark"`
}

// CreateOrder turns cart lines or explicit items into a pending order. Stock
// is reserved, consumed cart lines are removed and a coupon is applied when
// it is unused and its threshold is met.
func (s *Store) CreateOrder(uid int64, req OrderRequest) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.addresses[req.AddressID]; !ok || a.UserID != uid {
		return Order{}, fault(CodeBadRequest, "请选择收货地址")
	}

	lines := req.Items
	for _, cid := range req.CartIDs {
		it, ok := s.cart[cid]
		if !ok || it.UserID != uid {
			return Order{}, errCartNotFound
		}
		lines = append(lines, OrderLine{ProductID: it.ProductID, SkuID: it.SkuID, Quantity: it.Quantity})
	}
	if len(lines) == 0 {
		return Order{}, fault(CodeBadRequest, "订单商品不能为空")
	}

	// Check everything before touching stock.
	type priced struct {
		product *Product
		sku     *Sku
		line    OrderLine
	}
	items := make([]priced, 0, len(lines))
	for _, l := range lines {
		p, ok := s.products[l.ProductID]
		if !ok || p.Status != 1 {
			return Order{}, errProductNotFound
		}
		if l.Quantity <= 0 {
			return Order{}, fault(CodeBadRequest, "商品数量必须大于0")
		}
		sku := s.sku(p, l.SkuID)
		if l.SkuID != 0 && sku == nil {
			return Order{}, fault(CodeNotFound, "商品规格不存在")
		}
		if (sku != nil && sku.Stock < l.Quantity) || p.Stock < l.Quantity {
			return Order{}, errOutOfStock
		}
		items = append(items, priced{product: p, sku: sku, line: l})
	}

	o := Order{
		ID:        s.id(),
		UserID:    uid,
		Status:    OrderPending,
		AddressID: req.AddressID,
		Remark:    req.Remark,
		CreatedAt: s.stamp(),
	}
	o.OrderNo = fmt.Sprintf("%s%06d", s.now().Format("20060102150405"), o.ID)
	for _, it := range items {
		price := it.product.Price
		if it.sku != nil {
			price = it.sku.Price
			it.sku.Stock -= it.line.Quantity
		}
		it.product.Stock -= it.line.Quantity
		o.TotalAmount += price * float64(it.line.Quantity)
		o.Items = append(o.Items, OrderItem{
			ID:          s.id(),
			OrderID:     o.ID,
			ProductID:   it.product.ID,
			SkuID:       it.line.SkuID,
			ProductName: it.product.Name,
			Image:       it.product.MainImage,
			Price:       price,
			Quantity:    it.line.Quantity,
		})
	}
	o.TotalAmount = round2(o.TotalAmount)
	o.PayAmount = s.applyCoupon(uid, req.CouponID, o.TotalAmount)

	for _, cid := range req.CartIDs {
		delete(s.cart, cid)
	}
	s.orders[o.ID] = &o
	return o, nil
}

func (s *Store) applyCoupon(uid, userCouponID int64, total float64) float64 {
	uc, ok := s.userCoupons[userCouponID]
	if !ok || uc.UserID != uid || uc.Status != CouponUnused {
		return total
	}
	c := s.coupons[uc.CouponID]
	if c == nil || total < c.MinAmount {
		return total
	}
	pay := total
	switch c.Type {
	case CouponPrice:
		pay = total - c.Amount
	case CouponDiscount:
		pay = total * c.Amount / 10
	}
	uc.Status = CouponUsed
	uc.UsedTime = s.stamp()
	return round2(math.Max(pay, 0))
}

// Orders returns one page of the user's orders, newest first. A zero
// status lists all.
func (s *Store) Orders(uid int64, status, page, limit int) ([]Order, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []Order
	for _, o := range s.orders {
		if o.UserID != uid || (status > 0 && o.Status != status) {
			continue
		}
		matched = append(matched, *o)
	}
	slices.SortFunc(matched, func(a, b Order) int { return cmp.Compare(b.ID, a.ID) })
	return paginate(matched, page, limit), int64(len(matched))
}

// Order returns one of the user's orders.
func (s *Store) Order(uid, id int64) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.UserID != uid {
		return Order{}, errOrderNotFound
	}
	return *o, nil
}

// PayOrder marks a pending order paid.
func (s *Store) PayOrder(uid, id int64, paymentType int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.UserID != uid {
		return errOrderNotFound
	}
	if o.Status != OrderPending {
		return fault(CodeBadRequest, "订单状态不允许支付")
	}
	o.Status = OrderPaid
	o.PaymentType = paymentType
	return nil
}

// CancelOrder cancels a pending order and returns its stock.
func (s *Store) CancelOrder(uid, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.UserID != uid {
		return errOrderNotFound
	}
	if o.Status != OrderPending {
		return fault(CodeBadRequest, "订单状态不允许取消")
	}
	o.Status = OrderCancelled
	for _, it := range o.Items {
		p, ok := s.products[it.ProductID]
		if !ok {
			continue
		}
		p.Stock += it.Quantity
		if sku := s.sku(p, it.SkuID); sku != nil {
			sku.Stock += it.Quantity
		}
	}
	return nil
}

// --- comments ---

// Comments returns one page of a product's comments, newest first.
func (s *Store) Comments(productID int64, page, limit int) ([]Comment, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []Comment
	for i := len(s.comments) - 1; i >= 0; i-- {
		c := s.comments[i]
		if c.ProductID != productID {
			continue
		}
		v := *c
		if u, ok := s.users[c.UserID]; ok {
			uv := User{ID: u.ID, NickName: u.NickName, Avatar: u.Avatar}
			v.User = &uv
		}
		matched = append(matched, v)
	}
	return paginate(matched, page, limit), int64(len(matched))
}

// AddComment stores a review by uid.
func (s *Store) AddComment(uid int64, c Comment) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[c.ProductID]; !ok {
		return Comment{}, errProductNotFound
	}
	if c.Rating < 1 || c.Rating > 5 {
		return Comment{}, fault(CodeBadRequest, "评分必须在1-5之间")
	}
	c.ID = s.id()
	c.UserID = uid
	c.CreatedAt = s.stamp()
	s.comments = append(s.comments, &c)
	return c, nil
}

// --- coupons ---

// Coupons returns the claimable coupon templates.
func (s *Store) Coupons() []Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Coupon{}
	for _, c := range s.coupons {
		if c.Used < c.Total {
			out = append(out, *c)
		}
	}
	slices.SortFunc(out, func(a, b Coupon) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// ClaimCoupon gives the user one coupon. Each coupon can be claimed once
// per user.
func (s *Store) ClaimCoupon(uid, couponID int64) (UserCoupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[couponID]
	if !ok {
		return UserCoupon{}, errCouponNotFound
	}
	if c.Used >= c.Total {
		return UserCoupon{}, fault(CodeBadRequest, "优惠券已领完")
	}
	for _, uc := range s.userCoupons {
		if uc.UserID == uid && uc.CouponID == couponID {
			return UserCoupon{}, fault(CodeBadRequest, "已领取过该优惠券")
		}
	}
	c.Used++
	uc := &UserCoupon{ID: s.id(), UserID: uid, CouponID: couponID, Status: CouponUnused, CreatedAt: s.stamp()}
	s.userCoupons[uc.ID] = uc
	return *uc, nil
}

// UserCoupons returns the user's coupons, filtered when status is positive.
func (s *Store) UserCoupons(uid int64, status int) []UserCoupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []UserCoupon{}
	for _, uc := range s.userCoupons {
		if uc.UserID != uid || (status > 0 && uc.Status != status) {
			continue
		}
		v := *uc
		if c, ok := s.coupons[uc.CouponID]; ok {
			cv := *c
			v.Coupon = &cv
		}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b UserCoupon) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func paginate[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = len(items)
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	return items[start:min(start+limit, len(items))]
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
