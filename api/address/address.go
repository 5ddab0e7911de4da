// Package address manages shipping addresses.
package address

import (
	"context"
	"fmt"

	"github.com/kbukum/mallkit/request"
	"github.com/kbukum/mallkit/validation"
)

const pathAddresses = "/api/v1/addresses"

// Address is a shipping address. Tags carry the form validation rules.
type Address struct {
	ID           int64  `json:"id,omitempty"`
	ReceiverName string `json:"receiver_name" validate:"notblank" msg:"请输入收货人姓名"`
	Phone        string `json:"phone" validate:"mobile" msg:"请输入正确的手机号码"`
	Province     string `json:"province" validate:"notblank" msg:"请选择省份"`
	City         string `json:"city" validate:"notblank" msg:"请选择城市"`
	District     string `json:"district" validate:"notblank" msg:"请选择区县"`
	Detail       string `json:"detail" validate:"notblank" msg:"请输入详细地址"`
	PostalCode   string `json:"postal_code,omitempty"`
	IsDefault    bool   `json:"is_default"`
}

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Validate checks an address form and lists every failing rule in field order.
func Validate(a Address) ValidationResult {
	err := validation.Struct(a)
	if err == nil {
		return ValidationResult{IsValid: true, Errors: []string{}}
	}
	if verr, ok := validation.AsError(err); ok {
		return ValidationResult{Errors: verr.Messages()}
	}
	return ValidationResult{Errors: []string{err.Error()}}
}

// Format joins the region and detail into one display line.
func Format(a *Address) string {
	if a == nil {
		return ""
	}
	return a.Province + a.City + a.District + a.Detail
}

// Service calls the address endpoints.
type Service struct {
	client *request.Client
}

// New creates an address Service.
func New(c *request.Client) *Service {
	return &Service{client: c}
}

// List returns the user's addresses.
func (s *Service) List(ctx context.Context) ([]Address, error) {
	return request.GetAs[[]Address](ctx, s.client, pathAddresses, nil)
}

// Create validates and stores a new address. An invalid form returns a
// *validation.Error without calling the backend.
func (s *Service) Create(ctx context.Context, a Address) (Address, error) {
	if err := validation.Struct(a); err != nil {
		return Address{}, err
	}
	return request.PostAs[Address](ctx, s.client, pathAddresses, a)
}

// Update validates and replaces an address.
func (s *Service) Update(ctx context.Context, id int64, a Address) (Address, error) {
	if err := validation.Struct(a); err != nil {
		return Address{}, err
	}
	return request.PutAs[Address](ctx, s.client, addressPath(id, ""), a)
}

// Delete removes an address.
func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := s.client.Delete(ctx, addressPath(id, ""), nil)
	return err
}

// SetDefault makes an address the default one.
func (s *Service) SetDefault(ctx context.Context, id int64) error {
	_, err := s.client.Put(ctx, addressPath(id, "default"), nil)
	return err
}

func addressPath(id int64, action string) string {
	if action == "" {
		return fmt.Sprintf("%s/%d", pathAddresses, id)
	}
	return fmt.Sprintf("%s/%d/%s", pathAddresses, id, action)
}
