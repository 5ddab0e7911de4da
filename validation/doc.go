// Package validation checks user input before it is sent to the backend.
//
// Struct tags go through go-playground/validator with two extra rules,
// notblank and mobile. A `msg` tag overrides the generated message:
//
//	type Address struct {
//	    Phone string `json:"phone" validate:"mobile" msg:"请输入正确的手机号码"`
//	}
//	err := validation.Struct(addr)
//
// Checks that do not fit tags use the collecting Validator:
//
//	v := validation.New()
//	v.Range("rating", c.Rating, 1, 5, "")
//	err := v.Validate()
package validation
