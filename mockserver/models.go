package mockserver

// Wire models served by the mock backend. Field names follow the mall
// backend's snake_case JSON.

type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	ParentID int64  `json:"parent_id"`
	Sort     int    `json:"sort"`
}

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
	Skus       []Sku     `json:"skus,omitempty"`
}

type Sku struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	SkuName   string  `json:"sku_name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}

type Banner struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
	Link  string `json:"link"`
	Sort  int    `json:"sort"`
}

type User struct {
	ID       int64  `json:"id"`
	OpenID   string `json:"open_id,omitempty"`
	NickName string `json:"nick_name"`
	Avatar   string `json:"avatar"`
	Gender   int    `json:"gender"`
	Phone    string `json:"phone,omitempty"`
}

type CartItem struct {
	ID         int64    `json:"id"`
	UserID     int64    `json:"user_id"`
	ProductID  int64    `json:"product_id"`
	SkuID      int64    `json:"sku_id"`
	Quantity   int      `json:"quantity"`
	Product    *Product `json:"product,omitempty"`
	ProductSku *Sku     `json:"product_sku,omitempty"`
}

type Address struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	ReceiverName string `json:"receiver_name"`
	Phone        string `json:"phone"`
	Province     string `json:"province"`
	City         string `json:"city"`
	District     string `json:"district"`
	Detail       string `json:"detail"`
	PostalCode   string `json:"postal_code"`
	IsDefault    bool   `json:"is_default"`
}

// Order statuses.
const (
	OrderPending   = 1
	OrderPaid      = 2
	OrderShipped   = 3
	OrderDone      = 4
	OrderCancelled = 5
)

type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"order_id"`
	ProductID   int64   `json:"product_id"`
	SkuID       int64   `json:"sku_id"`
	ProductName string  `json:"product_name"`
	Image       string  `json:"product_image"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type Order struct {
	ID          int64       `json:"id"`
	OrderNo     string      `json:"order_no"`
	UserID      int64       `json:"user_id"`
	TotalAmount float64     `json:"total_amount"`
	PayAmount   float64     `json:"pay_amount"`
	Status      int         `json:"status"`
	PaymentType int         `json:"payment_type"`
	AddressID   int64       `json:"address_id"`
	Remark      string      `json:"remark"`
	CreatedAt   string      `json:"created_at"`
	Items       []OrderItem `json:"items"`
}

type Comment struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	ProductID int64  `json:"product_id"`
	OrderID   int64  `json:"order_id"`
	Rating    int    `json:"rating"`
	Content   string `json:"content"`
	Images    string `json:"images"`
	CreatedAt string `json:"created_at"`
	User      *User  `json:"user,omitempty"`
}

// Coupon types.
const (
	CouponPrice    = 1
	CouponDiscount = 2
)

// User coupon statuses.
const (
	CouponUnused  = 1
	CouponUsed    = 2
	CouponExpired = 3
)

type Coupon struct {
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

type UserCoupon struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	CouponID  int64   `json:"coupon_id"`
	Status    int     `json:"status"`
	UsedTime  string  `json:"used_time"`
	CreatedAt string  `json:"created_at"`
	Coupon    *Coupon `json:"coupon,omitempty"`
}
