package mockserver

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/mallkit/logger"
)

const msgBadParam = "参数错误"

type handlers struct {
	store  *Store
	tokens *TokenIssuer
	log    *logger.Logger
}

// fail answers err as an envelope. Store faults keep their code; anything
// else is a 500.
func (h *handlers) fail(c *gin.Context, err error) {
	var f *Fault
	if errors.As(err, &f) {
		respondFail(c, f.Code, f.Message)
		return
	}
	h.log.Error("handler failed", logger.Fields(logger.FieldPath, c.Request.URL.Path, logger.FieldError, err.Error()))
	respondFail(c, CodeServerError, MsgServerError)
}

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondFail(c, CodeBadRequest, msgBadParam)
		return 0, false
	}
	return id, true
}

// bind decodes an optional JSON body into out. An empty body leaves out
// untouched.
func bind(c *gin.Context, out any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(out); err != nil {
		respondFail(c, CodeBadRequest, msgBadParam)
		return false
	}
	return true
}

// --- public ---

type loginRequest struct {
	Code     string `json:"code"`
	NickName string `json:"nick_name"`
	Avatar   string `json:"avatar"`
	Gender   int    `json:"gender"`
}

func (h *handlers) wechatLogin(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		respondFail(c, CodeBadRequest, "code不能为空")
		return
	}
	u := h.store.Login(req.Code, req.NickName, req.Avatar, req.Gender)
	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("user logged in", logger.Fields(logger.FieldUserID, u.ID))
	respondMessage(c, "登录成功", gin.H{"token": token, "user": u})
}

func (h *handlers) listProducts(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 20)
	categoryID, _ := strconv.ParseInt(c.Query("category_id"), 10, 64)
	list, total := h.store.Products(page, limit, categoryID, strings.TrimSpace(c.Query("keyword")))
	respondPage(c, list, total, page, limit)
}

func (h *handlers) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.store.Product(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, p)
}

func (h *handlers) listCategories(c *gin.Context) {
	respondOK(c, h.store.Categories())
}

func (h *handlers) listBanners(c *gin.Context) {
	respondOK(c, h.store.Banners())
}

func (h *handlers) listProductComments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 10)
	list, total := h.store.Comments(id, page, limit)
	respondPage(c, list, total, page, limit)
}

func (h *handlers) listCoupons(c *gin.Context) {
	respondOK(c, h.store.Coupons())
}

// --- user ---

func (h *handlers) profile(c *gin.Context) {
	u, err := h.store.User(currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, u)
}

func (h *handlers) updateProfile(c *gin.Context) {
	var patch User
	if !bind(c, &patch) {
		return
	}
	u, err := h.store.UpdateUser(currentUser(c), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, u)
}

// --- cart ---

type cartRequest struct {
	ProductID int64 `json:"product_id"`
	SkuID     int64 `json:"sku_id"`
	Quantity  int   `json:"quantity"`
}

func (h *handlers) listCart(c *gin.Context) {
	respondOK(c, h.store.Cart(currentUser(c)))
}

func (h *handlers) addCart(c *gin.Context) {
	var req cartRequest
	if !bind(c, &req) {
		return
	}
	if req.ProductID <= 0 {
		respondFail(c, CodeBadRequest, msgBadParam)
		return
	}
	item, err := h.store.AddToCart(currentUser(c), req.ProductID, req.SkuID, req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondCreated(c, "添加成功", item)
}

func (h *handlers) updateCart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req cartRequest
	if !bind(c, &req) {
		return
	}
	if err := h.store.UpdateCart(currentUser(c), id, req.Quantity); err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, nil)
}

func (h *handlers) removeCart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.RemoveCart(currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, nil)
}

// --- orders ---

func (h *handlers) listOrders(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 10)
	list, total := h.store.Orders(currentUser(c), intQuery(c, "status", 0), page, limit)
	respondPage(c, list, total, page, limit)
}

func (h *handlers) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	o, err := h.store.Order(currentUser(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, o)
}

func (h *handlers) createOrder(c *gin.Context) {
	var req OrderRequest
	if !bind(c, &req) {
		return
	}
	o, err := h.store.CreateOrder(currentUser(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondCreated(c, "下单成功", o)
}

func (h *handlers) payOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		PaymentType int `json:"payment_type"`
	}
	if !bind(c, &req) {
		return
	}
	if err := h.store.PayOrder(currentUser(c), id, req.PaymentType); err != nil {
		h.fail(c, err)
		return
	}
	respondMessage(c, "支付成功", nil)
}

func (h *handlers) cancelOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.CancelOrder(currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, nil)
}

// --- addresses ---

func (h *handlers) listAddresses(c *gin.Context) {
	respondOK(c, h.store.Addresses(currentUser(c)))
}

func (h *handlers) createAddress(c *gin.Context) {
	var a Address
	if !bind(c, &a) {
		return
	}
	a.ID = 0
	h.saveAddress(c, a)
}

func (h *handlers) updateAddress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var a Address
	if !bind(c, &a) {
		return
	}
	a.ID = id
	h.saveAddress(c, a)
}

func (h *handlers) saveAddress(c *gin.Context, a Address) {
	if a.ReceiverName == "" || a.Phone == "" || a.Detail == "" {
		respondFail(c, CodeBadRequest, "收货信息不完整")
		return
	}
	saved, err := h.store.SaveAddress(currentUser(c), a)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, saved)
}

func (h *handlers) deleteAddress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteAddress(currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, nil)
}

func (h *handlers) defaultAddress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.SetDefaultAddress(currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	respondOK(c, nil)
}

// --- comments & coupons ---

func (h *handlers) createComment(c *gin.Context) {
	var req Comment
	if !bind(c, &req) {
		return
	}
	saved, err := h.store.AddComment(currentUser(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondCreated(c, "评价成功", saved)
}

func (h *handlers) claimCoupon(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	uc, err := h.store.ClaimCoupon(currentUser(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondMessage(c, "领取成功", uc)
}

func (h *handlers) myCoupons(c *gin.Context) {
	respondOK(c, h.store.UserCoupons(currentUser(c), intQuery(c, "status", 0)))
}
