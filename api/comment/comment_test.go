package comment

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/mallkit/request"
	"github.com/kbukum/mallkit/testutil"
)

func TestFromRecord(t *testing.T) {
	c := FromRecord(Record{ID: 1, Rating: 5, Content: "好", Images: "a.png,b.png", CreatedAt: "2024-01-02"})
	assert.Equal(t, DefaultUserName, c.UserName)
	assert.Equal(t, []string{"a.png", "b.png"}, c.Images)
	assert.Equal(t, "2024-01-02", c.CreateTime)

	c = FromRecord(Record{User: &Author{NickName: "小李", Avatar: "x.png"}})
	assert.Equal(t, "小李", c.UserName)
	assert.Equal(t, "x.png", c.Avatar)
	assert.Empty(t, c.Images)
}

func TestListForProduct(t *testing.T) {
	b := testutil.NewBackend(t)
	h := testutil.NewHarness(t, b.URL(), request.Config{})
	svc := New(h.Client)

	b.Reply(http.MethodGet, "/api/v1/comments/product/3", 200, "ok", map[string]any{
		"list": []map[string]any{{"id": 1, "rating": 4, "content": "不错", "user": map[string]any{"nick_name": "阿明"}}},
	})
	got := svc.ListForProduct(context.Background(), 3, 0, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "阿明", got[0].UserName)
	assert.Equal(t, "1", b.Last().Query.Get("page"))
	assert.Equal(t, "10", b.Last().Query.Get("limit"))

	b.ReplyRaw(http.MethodGet, "/api/v1/comments/product/3", http.StatusBadGateway, "")
	got = svc.ListForProduct(context.Background(), 3, 1, 10)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCreateJoinsImages(t *testing.T) {
	b := testutil.NewBackend(t)
	h := testutil.NewHarness(t, b.URL(), request.Config{})
	h.Login(t, "tok")
	svc := New(h.Client)
	b.ReplyStatus(http.MethodPost, pathComments, http.StatusCreated, 200, "创建成功", nil)

	err := svc.Create(context.Background(), NewComment{ProductID: 3, OrderID: 9, Rating: 5, Content: "好", Images: []string{"a.png", "b.png"}})
	require.NoError(t, err)

	var body map[string]any
	b.Last().JSON(t, &body)
	assert.Equal(t, "a.png,b.png", body["images"])
	assert.Equal(t, float64(9), body["order_id"])
}
