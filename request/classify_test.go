package request

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/mallkit/effect"
	mallerrors "github.com/kbukum/mallkit/errors"
	"github.com/kbukum/mallkit/httpclient"
)

func defaultConfig(profile Profile) Config {
	cfg := Config{Profile: profile}
	cfg.ApplyDefaults()
	return cfg
}

func TestClassify(t *testing.T) {
	mp := defaultConfig(ProfileMiniProgram)
	resp := func(status int, body string) *httpclient.Response {
		return &httpclient.Response{StatusCode: status, Body: []byte(body)}
	}

	tests := []struct {
		name     string
		resp     *httpclient.Response
		err      error
		category mallerrors.Category
		message  string
		effects  []effect.Effect
	}{
		{
			name:     "no response",
			err:      errors.New("dial tcp: refused"),
			category: mallerrors.CategoryNetwork,
			message:  mallerrors.MsgConnectionFailed,
			effects:  []effect.Effect{effect.Toast{Title: "网络连接失败", Icon: effect.IconNone}},
		},
		{
			name:     "nil response without error",
			category: mallerrors.CategoryNetwork,
			message:  mallerrors.MsgConnectionFailed,
			effects:  []effect.Effect{effect.Toast{Title: "网络连接失败", Icon: effect.IconNone}},
		},
		{
			name:     "status 404",
			resp:     resp(404, `{"code":200}`),
			err:      httpclient.ClassifyStatusCode(404, nil),
			category: mallerrors.CategoryNetwork,
			message:  mallerrors.MsgNetworkError,
			effects:  []effect.Effect{effect.Toast{Title: "网络错误", Icon: effect.IconNone}},
		},
		{
			name:     "unauthorized",
			resp:     resp(200, `{"code":401,"message":"token expired"}`),
			category: mallerrors.CategoryUnauthorized,
			message:  mallerrors.MsgUnauthorized,
			effects: []effect.Effect{
				effect.ClearCredentials{},
				effect.Toast{Title: "请重新登录", Icon: effect.IconNone},
				effect.Redirect{Path: DefaultLoginPath},
			},
		},
		{
			name:     "application",
			resp:     resp(200, `{"code":10001,"message":"优惠券已领完"}`),
			category: mallerrors.CategoryApplication,
			message:  "优惠券已领完",
			effects:  []effect.Effect{effect.Toast{Title: "优惠券已领完", Icon: effect.IconNone}},
		},
		{
			name:     "malformed body",
			resp:     resp(200, `<html>`),
			category: mallerrors.CategoryApplication,
			message:  "malformed response body",
			effects:  []effect.Effect{effect.Toast{Title: "malformed response body", Icon: effect.IconNone}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Classify(mp, tc.resp, tc.err)
			if assert.NotNil(t, res.Err) {
				assert.Equal(t, tc.category, res.Err.Category)
				assert.Equal(t, tc.message, res.Err.Message)
			}
			assert.Nil(t, res.Payload)
			assert.Equal(t, tc.effects, res.Effects)
			assert.Error(t, res.Error())
		})
	}
}

func TestClassifyEncodeFailure(t *testing.T) {
	cause := httpclient.NewEncodeError(errors.New("json: unsupported type: chan int"))
	res := Classify(defaultConfig(ProfileMiniProgram), nil, cause)
	require.NotNil(t, res.Err)
	assert.Equal(t, mallerrors.CategoryApplication, res.Err.Category)
	assert.Equal(t, mallerrors.MsgInvalidRequest, res.Err.Message)
	assert.ErrorIs(t, res.Error(), cause)
	assert.False(t, mallerrors.IsNetwork(res.Error()))
	assert.Empty(t, res.Effects)
}

func TestClassifyFallbackMessage(t *testing.T) {
	cfg := defaultConfig(ProfileMiniProgram)
	cfg.Messages.Fallback = "稍后再试"
	res := Classify(cfg, &httpclient.Response{StatusCode: 200, Body: []byte(`{"code":500}`)}, nil)
	require.NotNil(t, res.Err)
	assert.Equal(t, "稍后再试", res.Err.Message)
	assert.Equal(t, []effect.Effect{effect.Toast{Title: "稍后再试", Icon: effect.IconNone}}, res.Effects)
}

func TestClassifyEmptyBody(t *testing.T) {
	res := Classify(defaultConfig(ProfileMiniProgram), &httpclient.Response{StatusCode: http.StatusNoContent}, nil)
	assert.True(t, res.OK())
	assert.Empty(t, res.Payload)
	assert.Empty(t, res.Effects)
}

func TestClassifySuccess(t *testing.T) {
	res := Classify(defaultConfig(ProfileMiniProgram), &httpclient.Response{StatusCode: 200, Body: []byte(`{"code":200,"data":{"a":1}}`)}, nil)
	assert.True(t, res.OK())
	assert.NoError(t, res.Error())
	assert.Equal(t, OutcomeSuccess, res.Outcome())
	assert.JSONEq(t, `{"a":1}`, string(res.Payload))
	assert.Empty(t, res.Effects)
	assert.True(t, res.HasCode)
	assert.Equal(t, 200, res.Code)
}

func TestClassifyRedirectOmittedWithoutLoginPath(t *testing.T) {
	cfg := defaultConfig(ProfileMiniProgram)
	cfg.LoginPath = ""
	res := Classify(cfg, &httpclient.Response{StatusCode: 200, Body: []byte(`{"code":401}`)}, nil)
	assert.Equal(t, []effect.Effect{
		effect.ClearCredentials{},
		effect.Toast{Title: "请重新登录", Icon: effect.IconNone},
	}, res.Effects)
}

func TestClassifySilent(t *testing.T) {
	cfg := defaultConfig(ProfileStorefront)
	res := Classify(cfg, nil, errors.New("refused"))
	assert.True(t, mallerrors.IsNetwork(res.Error()))
	assert.Empty(t, res.Effects)

	res = Classify(cfg, &httpclient.Response{StatusCode: 200, Body: []byte(`{"code":500,"message":"x"}`)}, nil)
	assert.True(t, mallerrors.IsApplication(res.Error()))
	assert.Empty(t, res.Effects)
}
