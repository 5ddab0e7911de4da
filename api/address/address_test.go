package address

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/mallkit/request"
	"github.com/kbukum/mallkit/testutil"
	"github.com/kbukum/mallkit/validation"
)

func validAddress() Address {
	return Address{
		ReceiverName: "张三",
		Phone:        "13812345678",
		Province:     "浙江省",
		City:         "杭州市",
		District:     "西湖区",
		Detail:       "文三路 1 号",
	}
}

func TestValidate(t *testing.T) {
	res := Validate(validAddress())
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)

	res = Validate(Address{Phone: "12345", ReceiverName: "  "})
	assert.False(t, res.IsValid)
	assert.Equal(t, []string{
		"请输入收货人姓名",
		"请输入正确的手机号码",
		"请选择省份",
		"请选择城市",
		"请选择区县",
		"请输入详细地址",
	}, res.Errors)
}

func TestValidatePhone(t *testing.T) {
	for phone, ok := range map[string]bool{
		"13812345678":  true,
		"19912345678":  true,
		"12812345678":  false,
		"1381234567":   false,
		"138123456789": false,
		"":             false,
	} {
		a := validAddress()
		a.Phone = phone
		assert.Equal(t, ok, Validate(a).IsValid, phone)
	}
}

func TestFormat(t *testing.T) {
	a := validAddress()
	assert.Equal(t, "浙江省杭州市西湖区文三路 1 号", Format(&a))
	assert.Empty(t, Format(nil))
}

func TestCreateValidatesBeforeCalling(t *testing.T) {
	b := testutil.NewBackend(t)
	h := testutil.NewHarness(t, b.URL(), request.Config{})
	svc := New(h.Client)

	_, err := svc.Create(context.Background(), Address{})
	require.Error(t, err)
	verr, ok := validation.AsError(err)
	require.True(t, ok)
	assert.Len(t, verr.Fields, 6)
	assert.Empty(t, b.Requests())
	assert.Empty(t, h.Recorder.Effects())
}

func TestCRUD(t *testing.T) {
	b := testutil.NewBackend(t)
	h := testutil.NewHarness(t, b.URL(), request.Config{})
	h.Login(t, "tok")
	svc := New(h.Client)
	ctx := context.Background()

	b.Reply(http.MethodGet, pathAddresses, 200, "ok", []Address{validAddress()})
	b.ReplyStatus(http.MethodPost, pathAddresses, http.StatusCreated, 200, "创建成功", map[string]any{"id": 8, "receiver_name": "张三"})
	b.Reply(http.MethodPut, "/api/v1/addresses/8", 200, "ok", map[string]any{"id": 8})
	b.Reply(http.MethodPut, "/api/v1/addresses/8/default", 200, "ok", nil)
	b.Reply(http.MethodDelete, "/api/v1/addresses/8", 200, "ok", nil)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	created, err := svc.Create(ctx, validAddress())
	require.NoError(t, err)
	assert.Equal(t, int64(8), created.ID)
	var body map[string]any
	b.Last().JSON(t, &body)
	assert.Equal(t, "13812345678", body["phone"])

	_, err = svc.Update(ctx, 8, validAddress())
	require.NoError(t, err)
	require.NoError(t, svc.SetDefault(ctx, 8))
	assert.Equal(t, "/api/v1/addresses/8/default", b.Last().Path)
	require.NoError(t, svc.Delete(ctx, 8))
	assert.Equal(t, http.MethodDelete, b.Last().Method)
}
