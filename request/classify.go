package request

import (
	"encoding/json"
	stderrors "errors"

	"github.com/kbukum/mallkit/effect"
	"github.com/kbukum/mallkit/envelope"
	"github.com/kbukum/mallkit/errors"
	"github.com/kbukum/mallkit/httpclient"
)

// Outcome labels used in logs, spans and metrics.
const (
	OutcomeSuccess = "success"
)

// Result is a classified call. Exactly one of Payload and Err is meaningful.
// Effects lists the host side effects the outcome calls for, in order.
type Result struct {
	Payload json.RawMessage
	Err     *errors.ClientError
	Effects []effect.Effect
	// HTTPStatus is 0 when no response arrived.
	HTTPStatus int
	// Code is the envelope code, when the body carried one.
	Code    int
	HasCode bool
}

// OK reports whether the call resolved.
func (r Result) OK() bool { return r.Err == nil }

// Outcome returns "success" or the error category name.
func (r Result) Outcome() string {
	if r.Err == nil {
		return OutcomeSuccess
	}
	return r.Err.Category.String()
}

// Error returns Err as an error, nil when the call resolved.
func (r Result) Error() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}

var errNoResponse = stderrors.New("no response")

// Classify turns a transport outcome into a Result under cfg. It has no side
// effects; cfg is expected to have defaults applied.
func Classify(cfg Config, resp *httpclient.Response, transportErr error) Result {
	if resp == nil {
		if httpclient.IsEncode(transportErr) {
			return Result{Err: errors.InvalidRequest(transportErr)}
		}
		if transportErr == nil {
			transportErr = errNoResponse
		}
		return Result{
			Err:     errors.ConnectionFailed(transportErr),
			Effects: toast(cfg, cfg.Messages.ConnectionFailed),
		}
	}

	if !resp.IsSuccess() {
		return Result{
			Err:        errors.NetworkError(resp.StatusCode),
			Effects:    toast(cfg, cfg.Messages.NetworkError),
			HTTPStatus: resp.StatusCode,
		}
	}

	out := envelope.Decode(resp.Body, cfg.Envelope)
	res := Result{HTTPStatus: resp.StatusCode, Code: out.Code, HasCode: out.HasCode}

	switch out.Kind {
	case envelope.KindSuccess:
		res.Payload = out.Payload(cfg.Envelope)

	case envelope.KindUnauthorized:
		res.Err = errors.Unauthorized(out.Code)
		res.Effects = append(res.Effects, effect.ClearCredentials{})
		res.Effects = append(res.Effects, toast(cfg, cfg.Messages.Relogin)...)
		if cfg.LoginPath != "" {
			res.Effects = append(res.Effects, effect.Redirect{Path: cfg.LoginPath})
		}

	default:
		res.Err = errors.Application(out.Code, out.Message, cfg.Messages.Fallback)
		res.Effects = toast(cfg, res.Err.Message)
	}
	return res
}

func toast(cfg Config, title string) []effect.Effect {
	if cfg.Silent {
		return nil
	}
	return []effect.Effect{effect.Toast{Title: title, Icon: effect.IconNone}}
}
