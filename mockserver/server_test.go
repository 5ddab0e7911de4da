package mockserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/mallkit/api/address"
	"github.com/kbukum/mallkit/api/cart"
	"github.com/kbukum/mallkit/api/coupon"
	"github.com/kbukum/mallkit/api/home"
	"github.com/kbukum/mallkit/api/order"
	"github.com/kbukum/mallkit/api/product"
	"github.com/kbukum/mallkit/api/user"
	"github.com/kbukum/mallkit/effect"
	"github.com/kbukum/mallkit/component"
	mallerrors "github.com/kbukum/mallkit/errors"
	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/observability"
	"github.com/kbukum/mallkit/request"
	"github.com/kbukum/mallkit/testutil"
)

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := New(cfg, logger.Nop())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func getEnvelope(t *testing.T, req *http.Request) (int, Response) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var env Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.NotEmpty(t, cfg.JWTSecret)
	require.NoError(t, cfg.Validate())

	cfg.Port = 70000
	assert.Error(t, cfg.Validate())
	cfg.Port = 8080
	cfg.Latency = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{Port: -1}, logger.Nop())
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body observability.ServiceHealth
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, observability.HealthStatusUp, body.Status)
	require.Len(t, body.Components, 1)
	assert.Equal(t, "7", body.Components[0].Details["products"])
}

func TestHealthDownOnEmptyCatalog(t *testing.T) {
	srv, err := New(Config{}, logger.Nop(), WithStore(NewStore()))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServerAsComponent(t *testing.T) {
	srv, err := New(Config{}, logger.Nop(), WithVersion("1.2.3"))
	require.NoError(t, err)

	r := component.NewRegistry(logger.Nop())
	require.NoError(t, r.Register(component.Func{ID: "telemetry"}))
	require.NoError(t, r.Register(srv))
	assert.Same(t, srv, r.Get("mockserver"))

	sh := r.Health(context.Background(), "mallmock", "1.2.3")
	assert.Equal(t, observability.HealthStatusUp, sh.Status)
	require.Len(t, sh.Components, 2)
	assert.Equal(t, "store", sh.Components[1].Name)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	for _, auth := range []string{"", "Bearer", "Bearer not-a-jwt", "Basic abc"} {
		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/cart", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		status, env := getEnvelope(t, req)
		assert.Equal(t, http.StatusOK, status, auth)
		assert.Equal(t, CodeUnauthorized, env.Code, auth)
		assert.Equal(t, MsgUnauthorized, env.Message, auth)
	}
}

func TestRequestIDEcho(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/banners", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "rid-1", resp.Header.Get("X-Request-Id"))

	resp, err = http.Get(ts.URL + "/api/v1/banners")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Len(t, resp.Header.Get("X-Request-Id"), 36)
}

func TestUnknownRoute(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/nope", nil)
	status, env := getEnvelope(t, req)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeNotFound, env.Code)
}

func TestBadPathID(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/products/abc", nil)
	_, env := getEnvelope(t, req)
	assert.Equal(t, CodeBadRequest, env.Code)
}

func TestRecoveryAnswersEnvelope(t *testing.T) {
	srv, err := New(Config{}, logger.Nop())
	require.NoError(t, err)
	srv.engine.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgServerError)
}

func TestMockSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	_, ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/api/v1/products/101")
	require.NoError(t, err)
	resp.Body.Close()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, observability.SpanMockAPI, spans[0].Name)
	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "GET", attrs[observability.AttrMethod])
	assert.EqualValues(t, 200, attrs[observability.AttrHTTPStatus])
}

func TestLatency(t *testing.T) {
	_, ts := newTestServer(t, Config{Latency: 50 * time.Millisecond})
	start := time.Now()
	resp, err := http.Get(ts.URL + "/api/v1/banners")
	require.NoError(t, err)
	resp.Body.Close()
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

// The flows below drive the mock through the real api services.

func loggedIn(t *testing.T, ts *httptest.Server, code string) (*testutil.Harness, *user.Service) {
	t.Helper()
	h := testutil.NewHarness(t, ts.URL, request.Config{})
	us := user.New(h.Client, h.Credentials)
	res, err := us.WechatLogin(context.Background(), code, user.Profile{NickName: "测试用户", Gender: 1})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	return h, us
}

func TestEndToEndLoginCartOrder(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	ctx := context.Background()
	h, us := loggedIn(t, ts, "e2e")

	status, err := us.LoginStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.LoggedIn)

	carts := cart.New(h.Client)
	require.NoError(t, carts.Add(ctx, 201, 2011, 2))
	require.NoError(t, carts.Add(ctx, 102, 0, 0))
	group, err := carts.FetchGroup(ctx)
	require.NoError(t, err)
	require.Len(t, group.StoreGoodsList[0].GoodsList, 2)
	assert.Equal(t, 298.0*2+680, group.TotalAmount)

	addrs := address.New(h.Client)
	addr, err := addrs.Create(ctx, address.Address{
		ReceiverName: "张三", Phone: "13800138000",
		Province: "浙江省", City: "杭州市", District: "西湖区", Detail: "文三路1号",
	})
	require.NoError(t, err)
	assert.True(t, addr.IsDefault)

	var cartIDs []int64
	for _, line := range group.StoreGoodsList[0].GoodsList {
		cartIDs = append(cartIDs, line.ID)
	}
	orders := order.New(h.Client)
	created, err := orders.Create(ctx, order.CreateRequest{AddressID: addr.ID, CartIDs: cartIDs})
	require.NoError(t, err)
	assert.Equal(t, order.StatusPendingPayment, created.Status)
	assert.Len(t, created.Items, 2)

	page, err := orders.List(ctx, 0, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.List, 1)
	assert.Equal(t, created.OrderNo, page.List[0].OrderNo)
	assert.Equal(t, "待付款", page.List[0].StatusText())

	require.NoError(t, orders.Pay(ctx, created.ID, order.PaymentWechat))
	paid, err := orders.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPendingShip, paid.Status)

	empty, err := carts.FetchGroup(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.StoreGoodsList[0].GoodsList)
	assert.Empty(t, h.Recorder.Effects())
}

func TestEndToEndOutOfStock(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	h, _ := loggedIn(t, ts, "stock")

	err := cart.New(h.Client).Add(context.Background(), 102, 0, 4)
	require.Error(t, err)
	assert.True(t, mallerrors.IsApplication(err))
	ce, ok := mallerrors.AsClientError(err)
	require.True(t, ok)
	assert.Equal(t, CodeServerError, ce.Code)
	assert.Equal(t, []string{MsgOutOfStock}, h.Recorder.Toasts())
}

func TestEndToEndUnauthorized(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	ctx := context.Background()
	h := testutil.NewHarness(t, ts.URL, request.Config{})
	h.Login(t, "forged")

	_, err := cart.New(h.Client).FetchGroup(ctx)
	require.Error(t, err)
	assert.True(t, mallerrors.IsUnauthorized(err))

	kinds := []effect.Kind{}
	for _, e := range h.Recorder.Effects() {
		kinds = append(kinds, e.Kind())
	}
	assert.Equal(t, []effect.Kind{effect.KindClearCredentials, effect.KindToast, effect.KindRedirect}, kinds)

	st, err := h.Credentials.Status(ctx)
	require.NoError(t, err)
	assert.False(t, st.LoggedIn)
}

func TestEndToEndCatalog(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	ctx := context.Background()
	h := testutil.NewHarness(t, ts.URL, request.Config{})

	products := product.New(h.Client)
	cards := products.ListGoods(ctx, product.ListParams{CategoryID: 1})
	require.Len(t, cards, 2)
	assert.Equal(t, "汝窑天青茶杯", cards[0].Title)

	detail, err := products.GetGoods(ctx, 101)
	require.NoError(t, err)
	assert.Len(t, detail.Images, 2)
	assert.Equal(t, "茶具", detail.Category)

	_, err = products.GetGoods(ctx, 999)
	assert.True(t, mallerrors.IsApplication(err))

	hm, err := home.New(h.Client).Fetch(ctx)
	require.NoError(t, err)
	assert.Len(t, hm.Swiper, 3)
	require.Len(t, hm.TabList, 1+home.MaxCategoryTabs)
	assert.Equal(t, home.FeaturedTab, hm.TabList[0])
}

func TestEndToEndCoupons(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	ctx := context.Background()
	h, _ := loggedIn(t, ts, "coupon")

	cs := coupon.New(h.Client)
	list := cs.List(ctx)
	require.Len(t, list, 2)

	require.NoError(t, cs.Claim(ctx, list[0].ID))
	err := cs.Claim(ctx, list[0].ID)
	require.Error(t, err)
	assert.Contains(t, h.Recorder.Toasts(), "已领取过该优惠券")

	mine := cs.ListMine(ctx, "")
	require.Len(t, mine, 1)
	assert.Equal(t, "新人立减", mine[0].Name)
}

func TestEndToEndLogoutKeepsServerToken(t *testing.T) {
	srv, ts := newTestServer(t, Config{})
	ctx := context.Background()
	h, us := loggedIn(t, ts, "logout")

	token, err := h.Credentials.Token(ctx)
	require.NoError(t, err)
	uid, err := srv.Tokens().Verify(token)
	require.NoError(t, err)

	require.NoError(t, us.Logout(ctx))
	st, err := us.LoginStatus(ctx)
	require.NoError(t, err)
	assert.False(t, st.LoggedIn)

	_, err = srv.Tokens().Verify(token)
	assert.NoError(t, err, "logout is client side only")

	srv.Tokens().Revoke(uid)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, env := getEnvelope(t, req)
	assert.Equal(t, CodeUnauthorized, env.Code)
}

func TestCreateAnswersCreated(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	h, _ := loggedIn(t, ts, "created")
	token, err := h.Credentials.Token(context.Background())
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/cart", strings.NewReader(`{"product_id":101,"sku_id":1011,"quantity":1}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	status, env := getEnvelope(t, req)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, CodeOK, env.Code)
	assert.Equal(t, "添加成功", env.Message)
}

func TestCreateOrderBodyValidation(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	h, _ := loggedIn(t, ts, "bad-body")
	token, err := h.Credentials.Token(context.Background())
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/orders", strings.NewReader("{not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	_, env := getEnvelope(t, req)
	assert.Equal(t, CodeBadRequest, env.Code)
}
