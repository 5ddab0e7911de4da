// Package envelope decodes the {code, message, data} body the mall backend
// wraps every response in.
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind is the outcome class of a decoded envelope.
type Kind int

const (
	KindSuccess Kind = iota
	KindUnauthorized
	KindFailure
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindUnauthorized:
		return "unauthorized"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// MissingCode decides how a body without a code field is classified.
type MissingCode int

const (
	// MissingCodeSuccess treats a code-less body as success.
	MissingCodeSuccess MissingCode = iota
	// MissingCodeFailure treats a code-less body as an application failure.
	MissingCodeFailure
)

// String returns the policy name used in config files.
func (m MissingCode) String() string {
	if m == MissingCodeFailure {
		return "failure"
	}
	return "success"
}

// MarshalText implements encoding.TextMarshaler.
func (m MissingCode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts "success" or "failure".
func (m *MissingCode) UnmarshalText(text []byte) error {
	switch string(bytes.ToLower(bytes.TrimSpace(text))) {
	case "", "success":
		*m = MissingCodeSuccess
	case "failure":
		*m = MissingCodeFailure
	default:
		return fmt.Errorf("envelope: unknown missing_code policy %q", text)
	}
	return nil
}

// MsgMalformed is the failure message for a body that is not JSON at all.
const MsgMalformed = "malformed response body"

// Policy controls envelope classification.
type Policy struct {
	// SuccessCode is the application code meaning success.
	SuccessCode int `yaml:"success_code" mapstructure:"success_code"`
	// UnauthorizedCode triggers the unauthorized outcome. 0 disables it.
	UnauthorizedCode int `yaml:"unauthorized_code" mapstructure:"unauthorized_code"`
	// MissingCode applies when the body carries no code.
	MissingCode MissingCode `yaml:"missing_code" mapstructure:"missing_code"`
	// UnwrapData resolves with the data field instead of the whole body.
	UnwrapData bool `yaml:"unwrap_data" mapstructure:"unwrap_data"`
}

// DefaultPolicy is the mini-program policy.
func DefaultPolicy() Policy {
	return Policy{
		SuccessCode:      200,
		UnauthorizedCode: 401,
		MissingCode:      MissingCodeSuccess,
		UnwrapData:       true,
	}
}

// Outcome is the result of Decode.
type Outcome struct {
	Kind Kind
	// Code is the numeric code; valid only when HasCode.
	Code    int
	HasCode bool
	Message string
	// Data is the raw data field; valid only when HasData. A JSON null data
	// field is present and equals "null".
	Data    json.RawMessage
	HasData bool
	// Raw is the whole body.
	Raw json.RawMessage
}

// Payload returns what a successful call resolves with.
func (o Outcome) Payload(p Policy) json.RawMessage {
	if p.UnwrapData && o.HasData {
		return o.Data
	}
	return o.Raw
}

// Decode classifies body under p.
func Decode(body []byte, p Policy) Outcome {
	out := Outcome{Raw: json.RawMessage(body)}

	fields, isObject := parseObject(body)
	if isObject {
		if raw, ok := fields["message"]; ok {
			_ = json.Unmarshal(raw, &out.Message)
		}
		if raw, ok := fields["data"]; ok {
			out.Data = raw
			out.HasData = true
		}
	}

	rawCode, hasCode := fields["code"]
	if !hasCode {
		if p.MissingCode == MissingCodeFailure {
			out.Kind = KindFailure
			return out
		}
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) == 0 {
			// No content: success with an empty payload.
			out.Raw = nil
			out.Kind = KindSuccess
			return out
		}
		if !isObject && !json.Valid(trimmed) {
			out.Kind = KindFailure
			out.Message = MsgMalformed
			return out
		}
		out.Kind = KindSuccess
		return out
	}

	code, ok := numericCode(rawCode)
	if !ok {
		out.Kind = KindFailure
		return out
	}
	out.Code = code
	out.HasCode = true

	switch {
	case code == p.SuccessCode:
		out.Kind = KindSuccess
	case p.UnauthorizedCode != 0 && code == p.UnauthorizedCode:
		out.Kind = KindUnauthorized
	default:
		out.Kind = KindFailure
	}
	return out
}

func parseObject(body []byte) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

// numericCode accepts integral JSON numbers only.
func numericCode(raw json.RawMessage) (int, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '-' && (trimmed[0] < '0' || trimmed[0] > '9')) {
		return 0, false
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil || f != float64(int64(f)) {
			return 0, false
		}
		i = int64(f)
	}
	return int(i), true
}
