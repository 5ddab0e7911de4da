package credential

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/mallkit/logger"
)

// Credentials gives typed access to the token and user profile in a Store.
type Credentials struct {
	store Store
	log   *logger.Logger
	now   func() time.Time
}

// New wraps store.
func New(store Store) *Credentials {
	return &Credentials{
		store: store,
		log:   logger.Get(logger.ComponentCredential),
		now:   time.Now,
	}
}

// Store returns the wrapped store.
func (c *Credentials) Store() Store { return c.store }

// Token returns the stored token, or "" when there is none.
func (c *Credentials) Token(ctx context.Context) (string, error) {
	v, _, err := c.store.Get(ctx, KeyToken)
	return v, err
}

// SetToken stores token.
func (c *Credentials) SetToken(ctx context.Context, token string) error {
	return c.store.Set(ctx, KeyToken, token)
}

// UserInfo decodes the stored profile into out. It reports false when no
// profile is stored.
func (c *Credentials) UserInfo(ctx context.Context, out any) (bool, error) {
	v, found, err := c.store.Get(ctx, KeyUserInfo)
	if err != nil || !found || v == "" {
		return false, err
	}
	if err := json.Unmarshal([]byte(v), out); err != nil {
		return false, fmt.Errorf("credential: decode user info: %w", err)
	}
	return true, nil
}

// SetUserInfo stores v as JSON.
func (c *Credentials) SetUserInfo(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("credential: encode user info: %w", err)
	}
	return c.store.Set(ctx, KeyUserInfo, string(data))
}

// Save stores a fresh login.
func (c *Credentials) Save(ctx context.Context, token string, user any) error {
	if err := c.SetToken(ctx, token); err != nil {
		return err
	}
	return c.SetUserInfo(ctx, user)
}

// Clear removes the token and the profile.
func (c *Credentials) Clear(ctx context.Context) error {
	if err := c.store.Remove(ctx, KeyToken, KeyUserInfo); err != nil {
		return err
	}
	c.log.WithContext(ctx).Debug("credentials cleared")
	return nil
}

// Status describes the stored session.
type Status struct {
	// LoggedIn is true when both a token and a profile are stored.
	LoggedIn bool            `json:"logged_in"`
	Token    string          `json:"token,omitempty"`
	UserInfo json.RawMessage `json:"user_info,omitempty"`
	// ExpiresAt is the token's exp claim, zero when absent or not a JWT.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	Expired   bool      `json:"expired"`
}

// Status reads the stored session. The token signature is never verified;
// only the exp claim is inspected.
func (c *Credentials) Status(ctx context.Context) (Status, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return Status{}, err
	}
	info, found, err := c.store.Get(ctx, KeyUserInfo)
	if err != nil {
		return Status{}, err
	}

	st := Status{Token: token, LoggedIn: token != "" && found && info != ""}
	if found && json.Valid([]byte(info)) {
		st.UserInfo = json.RawMessage(info)
	}
	if exp, ok := tokenExpiry(token); ok {
		st.ExpiresAt = exp
		st.Expired = !c.now().Before(exp)
	}
	return st, nil
}

func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
