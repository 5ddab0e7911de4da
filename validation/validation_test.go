package validation

import (
	"fmt"
	"testing"
)

type form struct {
	Name   string `json:"receiver_name" validate:"notblank" msg:"请输入收货人姓名"`
	Phone  string `json:"phone" validate:"mobile" msg:"请输入正确的手机号码"`
	Rating int    `json:"rating" validate:"gte=1,lte=5"`
	Remark string `validate:"max=5"`
}

func TestStructValid(t *testing.T) {
	err := Struct(form{Name: "张三", Phone: "13800138000", Rating: 5})
	if err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestStructCustomMessages(t *testing.T) {
	err := Struct(&form{Name: "   ", Phone: "12345", Rating: 3})
	ve, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	want := []string{"请输入收货人姓名", "请输入正确的手机号码"}
	got := ve.Messages()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("messages = %v, want %v", got, want)
	}
	if ve.Fields[0].Field != "receiver_name" {
		t.Errorf("expected json field name, got %q", ve.Fields[0].Field)
	}
	if ve.Error() != "请输入收货人姓名; 请输入正确的手机号码" {
		t.Errorf("unexpected Error() %q", ve.Error())
	}
}

func TestStructGeneratedMessages(t *testing.T) {
	err := Struct(form{Name: "a", Phone: "13800138000", Rating: 9, Remark: "toolong"})
	ve, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", ve.Fields)
	}
	if ve.Fields[0].Field != "rating" || ve.Fields[0].Message != "must be 5 or less" {
		t.Errorf("unexpected %+v", ve.Fields[0])
	}
	if ve.Fields[1].Field != "remark" || ve.Fields[1].Message != "must be at most 5" {
		t.Errorf("unexpected %+v", ve.Fields[1])
	}
}

func TestMobilePattern(t *testing.T) {
	for _, ok := range []string{"13800138000", "19912345678"} {
		if !MobilePattern.MatchString(ok) {
			t.Errorf("expected %s to match", ok)
		}
	}
	for _, bad := range []string{"12800138000", "1380013800", "138001380001", "+8613800138000"} {
		if MobilePattern.MatchString(bad) {
			t.Errorf("expected %s not to match", bad)
		}
	}
}

func TestValidatorChecks(t *testing.T) {
	v := New().
		Required("content", "  ", "请输入评价内容").
		Range("rating", 0, 1, 5, "").
		Positive("product_id", 0, "").
		MaxRunes("content", "好好好", 2, "").
		OneOf("status", "all", []string{"default", "available"}, "").
		Custom(true, "ok", "never")

	if !v.HasErrors() || len(v.Errors()) != 5 {
		t.Fatalf("expected 5 errors, got %v", v.Errors())
	}
	if v.Errors()[0].Message != "请输入评价内容" {
		t.Errorf("expected custom message, got %q", v.Errors()[0].Message)
	}
	if v.Errors()[1].Message != "must be between 1 and 5" {
		t.Errorf("unexpected %q", v.Errors()[1].Message)
	}
	if _, ok := AsError(v.Validate()); !ok {
		t.Error("expected *Error from Validate")
	}
}

func TestValidatorNoErrors(t *testing.T) {
	if err := New().Required("a", "x", "").Validate(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"ReceiverName": "receiver_name",
		"id":           "id",
		"IsDefault":    "is_default",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
