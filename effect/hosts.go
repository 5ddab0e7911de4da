package effect

import (
	"context"
	"sync"

	"github.com/kbukum/mallkit/logger"
)

// LogNotifier renders toasts as log lines. It is the CLI host.
type LogNotifier struct {
	Log *logger.Logger
}

// ShowToast logs the toast title.
func (n LogNotifier) ShowToast(ctx context.Context, t Toast) error {
	l := n.Log
	if l == nil {
		l = logger.Get(logger.ComponentEffect)
	}
	l.WithContext(ctx).Warn(t.Title, logger.Fields("toast", true))
	return nil
}

// LogNavigator logs tab switches.
type LogNavigator struct {
	Log *logger.Logger
}

// SwitchTab logs the target path.
func (n LogNavigator) SwitchTab(ctx context.Context, path string) error {
	l := n.Log
	if l == nil {
		l = logger.Get(logger.ComponentEffect)
	}
	l.WithContext(ctx).Info("switch tab", logger.Fields(logger.FieldPath, path))
	return nil
}

// Recorder records every effect it receives. It implements Notifier,
// Navigator and CredentialClearer so one value can stand in for all hosts.
type Recorder struct {
	mu      sync.Mutex
	effects []Effect
	// ClearErr is returned from Clear when set.
	ClearErr error
}

// ShowToast records a toast.
func (r *Recorder) ShowToast(_ context.Context, t Toast) error {
	r.record(t)
	return nil
}

// SwitchTab records a redirect.
func (r *Recorder) SwitchTab(_ context.Context, path string) error {
	r.record(Redirect{Path: path})
	return nil
}

// Clear records a credential clear.
func (r *Recorder) Clear(_ context.Context) error {
	r.record(ClearCredentials{})
	return r.ClearErr
}

// Effects returns a copy of the recorded effects.
func (r *Recorder) Effects() []Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Effect, len(r.effects))
	copy(out, r.effects)
	return out
}

// Toasts returns the recorded toast titles.
func (r *Recorder) Toasts() []string {
	var titles []string
	for _, e := range r.Effects() {
		if t, ok := e.(Toast); ok {
			titles = append(titles, t.Title)
		}
	}
	return titles
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.effects = nil
	r.mu.Unlock()
}

func (r *Recorder) record(e Effect) {
	r.mu.Lock()
	r.effects = append(r.effects, e)
	r.mu.Unlock()
}
