package product

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

func newService(t *testing.T) (*Service, *testutil.Backend) {
	t.Helper()
	b := testutil.NewBackend(t)
	h := testutil.NewHarness(t, b.URL(), request.Config{})
	return New(h.Client), b
}

func TestListGoods(t *testing.T) {
	svc, b := newService(t)
	b.Reply(http.MethodGet, pathProducts, 200, "ok", map[string]any{
		"list": []map[string]any{
			{"id": 1, "name": "茶杯", "main_image": "a.png", "price": 19.9, "sub_title": "新品"},
			{"id": 2, "name": "茶壶", "main_image": "b.png", "price": 99},
		},
		"total": 2,
	})

	cards := svc.ListGoods(context.Background(), ListParams{CategoryID: 3, Keyword: "茶"})
	require.Len(t, cards, 2)
	assert.Equal(t, GoodsCard{SpuID: 1, Thumb: "a.png", Title: "茶杯", Price: 19.9, OriginPrice: 19.9, Tags: []string{"新品"}, ETitle: "新品"}, cards[0])
	assert.Empty(t, cards[1].Tags)

	q := b.Last().Query
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "20", q.Get("limit"))
	assert.Equal(t, "3", q.Get("category_id"))
	assert.Equal(t, "茶", q.Get("keyword"))
}

func TestListGoodsOmitsEmptyFilters(t *testing.T) {
	svc, b := newService(t)
	b.Reply(http.MethodGet, pathProducts, 200, "ok", map[string]any{"data": []map[string]any{{"id": 5}}})

	cards := svc.ListGoods(context.Background(), ListParams{Page: 2, Limit: 5})
	require.Len(t, cards, 1)
	assert.Equal(t, int64(5), cards[0].SpuID)

	q := b.Last().Query
	assert.Equal(t, "2", q.Get("page"))
	assert.False(t, q.Has("category_id"))
	assert.False(t, q.Has("keyword"))
}

func TestListGoodsFailureIsEmpty(t *testing.T) {
	svc, b := newService(t)
	b.Reply(http.MethodGet, pathProducts, 500, "服务器内部错误", nil)

	cards := svc.ListGoods(context.Background(), ListParams{})
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestGetGoods(t *testing.T) {
	svc, b := newService(t)
	b.Reply(http.MethodGet, "/api/v1/products/9", 200, "ok", map[string]any{
		"id": 9, "name": "茶叶", "main_image": "m.png", "sub_images": "x.png,y.png",
		"stock": 3, "status": 1, "category": map[string]any{"id": 2, "name": "茶"},
	})

	d, err := svc.GetGoods(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.png", "y.png"}, d.Images)
	assert.Equal(t, "茶", d.Category)
	assert.True(t, d.IsOnSale)
	assert.Equal(t, 3, d.Stock)
}

func TestGetGoodsPropagatesErrors(t *testing.T) {
	svc, b := newService(t)
	b.Reply(http.MethodGet, "/api/v1/products/9", 404, "商品不存在", nil)

	_, err := svc.GetGoods(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, mallerrors.IsApplication(err))
}

func TestToDetailFallsBackToMainImage(t *testing.T) {
	d := ToDetail(Product{ID: 1, MainImage: "m.png", Status: 2})
	assert.Equal(t, []string{"m.png"}, d.Images)
	assert.False(t, d.IsOnSale)
	assert.Empty(t, d.Category)
}

func TestListCategories(t *testing.T) {
	svc, b := newService(t)
	b.Reply(http.MethodGet, pathCategories, 200, "ok", []map[string]any{{"id": 1, "name": "茶", "icon": "t.png"}})

	groups := svc.ListCategories(context.Background())
	require.Len(t, groups, 1)
	assert.Equal(t, CategoryGroup{GroupID: 1, Name: "茶", Thumbnail: "t.png", Children: []CategoryGroup{}}, groups[0])

	b.Reply(http.MethodGet, pathCategories, 500, "boom", nil)
	assert.Empty(t, svc.ListCategories(context.Background()))
}
