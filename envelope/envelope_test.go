package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		name    string
		body    string
		policy  Policy
		kind    Kind
		payload string
		message string
	}{
		{"success unwraps data", `{"code":200,"data":{"id":1}}`, p, KindSuccess, `{"id":1}`, ""},
		{"success without data returns body", `{"code":200,"message":"ok"}`, p, KindSuccess, `{"code":200,"message":"ok"}`, "ok"},
		{"null data is present", `{"code":200,"data":null}`, p, KindSuccess, `null`, ""},
		{"unauthorized", `{"code":401,"message":"未授权"}`, p, KindUnauthorized, "", "未授权"},
		{"failure keeps message", `{"code":500,"message":"库存不足"}`, p, KindFailure, "", "库存不足"},
		{"failure without message", `{"code":400}`, p, KindFailure, "", ""},
		{"null code fails", `{"code":null,"data":1}`, p, KindFailure, "", ""},
		{"string code fails", `{"code":"200","data":1}`, p, KindFailure, "", ""},
		{"float integral code", `{"code":200.0,"data":2}`, p, KindSuccess, `2`, ""},
		{"missing code success", `{"id":5}`, p, KindSuccess, `{"id":5}`, ""},
		{"missing code with data unwraps", `{"data":[1]}`, p, KindSuccess, `[1]`, ""},
		{"non-object json", `[1,2]`, p, KindSuccess, `[1,2]`, ""},
		{"malformed body", `<html>`, p, KindFailure, "", MsgMalformed},
		{"empty body", ``, p, KindSuccess, "", ""},
		{"whitespace body", " \n\t", p, KindSuccess, "", ""},
		{"empty body failure policy", ``, Policy{SuccessCode: 200, MissingCode: MissingCodeFailure}, KindFailure, "", ""},
		{"missing code failure policy", `{"id":5}`, Policy{SuccessCode: 200, MissingCode: MissingCodeFailure}, KindFailure, "", ""},
		{"401 without unauthorized code", `{"code":401,"message":"未授权"}`, Policy{SuccessCode: 200}, KindFailure, "", "未授权"},
		{"whole envelope when not unwrapping", `{"code":200,"data":{"id":1}}`, Policy{SuccessCode: 200}, KindSuccess, `{"code":200,"data":{"id":1}}`, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Decode([]byte(tc.body), tc.policy)
			assert.Equal(t, tc.kind, out.Kind)
			assert.Equal(t, tc.message, out.Message)
			if tc.kind == KindSuccess {
				if tc.payload == "" {
					assert.Empty(t, out.Payload(tc.policy))
				} else {
					assert.JSONEq(t, tc.payload, string(out.Payload(tc.policy)))
				}
			}
		})
	}
}

func TestDecodeCode(t *testing.T) {
	out := Decode([]byte(`{"code":403,"message":"forbidden"}`), DefaultPolicy())
	assert.True(t, out.HasCode)
	assert.Equal(t, 403, out.Code)

	out = Decode([]byte(`{"data":1}`), DefaultPolicy())
	assert.False(t, out.HasCode)
	assert.True(t, out.HasData)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "success", KindSuccess.String())
	assert.Equal(t, "unauthorized", KindUnauthorized.String())
	assert.Equal(t, "failure", KindFailure.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func TestMissingCodeText(t *testing.T) {
	var m MissingCode
	require.NoError(t, m.UnmarshalText([]byte("failure")))
	assert.Equal(t, MissingCodeFailure, m)
	require.NoError(t, m.UnmarshalText([]byte(" Success ")))
	assert.Equal(t, MissingCodeSuccess, m)
	assert.Error(t, m.UnmarshalText([]byte("maybe")))

	text, err := MissingCodeFailure.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "failure", string(text))
}
