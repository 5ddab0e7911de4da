package cart

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mallerrors "github.com/kbukum/mallkit/errors"
	"github.com/kbukum/mallkit/request"
	"github.com/kbukum/mallkit/testutil"
)

func newService(t *testing.T) (*Service, *testutil.Backend, *testutil.Harness) {
	t.Helper()
	b := testutil.NewBackend(t)
	h := testutil.NewHarness(t, b.URL(), request.Config{})
	h.Login(t, "tok")
	return New(h.Client), b, h
}

func TestGroupItemsPricing(t *testing.T) {
	g := GroupItems([]Item{
		{ID: 1, ProductID: 10, Quantity: 2, Product: &Product{Name: "茶杯", Price: 10, MainImage: "a.png"}},
		{ID: 2, ProductID: 11, SkuID: 5, Quantity: 1, Product: &Product{Name: "茶壶", Price: 50}, ProductSku: &Sku{SkuName: "大号", Price: 60}},
		{ID: 3, ProductID: 12, Quantity: 4},
	})

	require.Len(t, g.StoreGoodsList, 1)
	store := g.StoreGoodsList[0]
	assert.Equal(t, StoreName, store.StoreName)
	require.Len(t, store.GoodsList, 3)
	assert.Equal(t, 60.0, store.GoodsList[1].Goods.Price)
	assert.Equal(t, 50.0, store.GoodsList[1].Goods.OriginPrice)
	assert.Equal(t, "大号", store.GoodsList[1].Goods.SpecInfo)
	assert.Zero(t, store.GoodsList[2].Goods.Price)
	assert.True(t, store.GoodsList[0].IsChecked)
	assert.Equal(t, 80.0, g.TotalAmount)
	assert.True(t, g.IsAllSelected)
}

func TestFetchGroup(t *testing.T) {
	svc, b, _ := newService(t)
	b.Reply(http.MethodGet, pathCart, 200, "ok", []map[string]any{
		{"id": 1, "product_id": 7, "quantity": 3, "product": map[string]any{"name": "茶", "price": 2.5}},
	})

	g, err := svc.FetchGroup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7.5, g.TotalAmount)
	assert.Equal(t, "Bearer tok", b.Last().Header.Get("Authorization"))
}

func TestAddSendsBody(t *testing.T) {
	svc, b, _ := newService(t)
	b.ReplyStatus(http.MethodPost, pathCart, http.StatusCreated, 200, "创建成功", nil)

	require.NoError(t, svc.Add(context.Background(), 7, 0, 0))
	var body map[string]any
	b.Last().JSON(t, &body)
	assert.Equal(t, map[string]any{"product_id": float64(7), "sku_id": float64(0), "quantity": float64(1)}, body)
}

func TestAddKeepsNegativeQuantity(t *testing.T) {
	svc, b, h := newService(t)
	b.Reply(http.MethodPost, pathCart, 400, "商品数量必须大于0", nil)

	err := svc.Add(context.Background(), 7, 0, -2)
	require.Error(t, err)
	assert.True(t, mallerrors.IsApplication(err))
	var body map[string]any
	b.Last().JSON(t, &body)
	assert.Equal(t, float64(-2), body["quantity"])
	assert.Equal(t, []string{"商品数量必须大于0"}, h.Recorder.Toasts())
}

func TestAddOutOfStock(t *testing.T) {
	svc, b, h := newService(t)
	b.Reply(http.MethodPost, pathCart, 500, "库存不足", nil)

	err := svc.Add(context.Background(), 7, 0, 99)
	require.Error(t, err)
	assert.True(t, mallerrors.IsApplication(err))
	assert.Equal(t, []string{"库存不足"}, h.Recorder.Toasts())
}

func TestUpdateAndRemove(t *testing.T) {
	svc, b, _ := newService(t)
	b.Reply(http.MethodPut, "/api/v1/cart/4", 200, "ok", nil)
	b.Reply(http.MethodDelete, "/api/v1/cart/4", 200, "ok", nil)

	require.NoError(t, svc.Update(context.Background(), 4, 6))
	var body map[string]any
	b.Last().JSON(t, &body)
	assert.Equal(t, float64(6), body["quantity"])

	require.NoError(t, svc.Remove(context.Background(), 4))
	assert.Equal(t, http.MethodDelete, b.Last().Method)
}
