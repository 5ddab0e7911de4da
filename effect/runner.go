package effect

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbukum/mallkit/logger"
)

// Runner executes effects against host interfaces. Any of the collaborators
// may be nil, in which case effects of that kind are skipped.
type Runner struct {
	notifier    Notifier
	navigator   Navigator
	credentials CredentialClearer
	log         *logger.Logger
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithNotifier sets the toast host.
func WithNotifier(n Notifier) RunnerOption { return func(r *Runner) { r.notifier = n } }

// WithNavigator sets the navigation host.
func WithNavigator(n Navigator) RunnerOption { return func(r *Runner) { r.navigator = n } }

// WithCredentialClearer sets the credential store to clear.
func WithCredentialClearer(c CredentialClearer) RunnerOption {
	return func(r *Runner) { r.credentials = c }
}

// WithLogger sets the logger used for effect failures.
func WithLogger(l *logger.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{log: logger.Get(logger.ComponentEffect)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes effects in order. A failing effect is logged and the rest
// still run; the joined failures are returned for callers that care.
func (r *Runner) Run(ctx context.Context, effects []Effect) error {
	var failed []error
	for _, e := range effects {
		if err := r.apply(ctx, e); err != nil {
			r.log.WithContext(ctx).Warn("effect failed", logger.Fields(
				logger.FieldOperation, string(e.Kind()),
				logger.FieldError, err.Error(),
			))
			failed = append(failed, fmt.Errorf("%s: %w", e, err))
		}
	}
	return errors.Join(failed...)
}

func (r *Runner) apply(ctx context.Context, e Effect) error {
	switch v := e.(type) {
	case Toast:
		if r.notifier == nil {
			return nil
		}
		return r.notifier.ShowToast(ctx, v)
	case ClearCredentials:
		if r.credentials == nil {
			return nil
		}
		return r.credentials.Clear(ctx)
	case Redirect:
		if r.navigator == nil {
			return nil
		}
		return r.navigator.SwitchTab(ctx, v.Path)
	default:
		return fmt.Errorf("unknown effect %T", e)
	}
}
