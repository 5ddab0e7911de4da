package testutil

import (
	"context"
	"testing"

	"github.com/kbukum/mallkit/credential"
	"github.com/kbukum/mallkit/effect"
	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/request"
)

// Harness is a request client wired to in-memory credentials and an effect
// recorder.
type Harness struct {
	Client      *request.Client
	Recorder    *effect.Recorder
	Credentials *credential.Credentials
}

// NewHarness builds a client for baseURL. cfg.BaseURL is overwritten.
func NewHarness(t *testing.T, baseURL string, cfg request.Config) *Harness {
	t.Helper()
	cfg.BaseURL = baseURL
	creds := credential.New(credential.NewMemoryStore())
	rec := &effect.Recorder{}
	runner := effect.NewRunner(
		effect.WithNotifier(rec),
		effect.WithNavigator(rec),
		effect.WithCredentialClearer(recordingClearer{rec: rec, creds: creds}),
		effect.WithLogger(logger.Nop()),
	)
	c, err := request.New(cfg,
		request.WithCredentials(creds),
		request.WithEffects(runner),
		request.WithLogger(logger.Nop()),
	)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &Harness{Client: c, Recorder: rec, Credentials: creds}
}

// Login stores a token and user so the client sends Authorization.
func (h *Harness) Login(t *testing.T, token string) {
	t.Helper()
	if err := h.Credentials.Save(context.Background(), token, map[string]any{"id": 1}); err != nil {
		t.Fatalf("save credentials: %v", err)
	}
}

// recordingClearer clears the credentials and records the effect.
type recordingClearer struct {
	rec   *effect.Recorder
	creds *credential.Credentials
}

func (c recordingClearer) Clear(ctx context.Context) error {
	if err := c.creds.Clear(ctx); err != nil {
		return err
	}
	return c.rec.Clear(ctx)
}
