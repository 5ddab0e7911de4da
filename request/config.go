package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/mallkit/envelope"
	"github.com/kbukum/mallkit/httpclient"
)

// Profile selects a preset of defaults.
type Profile string

const (
	// ProfileMiniProgram unwraps data, toasts failures and handles 401.
	ProfileMiniProgram Profile = "miniprogram"
	// ProfileStorefront returns whole envelopes and has no host effects.
	ProfileStorefront Profile = "storefront"
)

// DefaultLoginPath is the tab the client switches to after a 401.
const DefaultLoginPath = "/pages/user/index"

// DefaultRequestIDHeader carries the per-call id.
const DefaultRequestIDHeader = "X-Request-Id"

// Messages are the toast texts shown to the user.
type Messages struct {
	ConnectionFailed string `mapstructure:"connection_failed"`
	NetworkError     string `mapstructure:"network_error"`
	Relogin          string `mapstructure:"relogin"`
	// Fallback is shown when a failing envelope carries no message.
	Fallback string `mapstructure:"fallback"`
}

// DefaultMessages returns the stock toast texts.
func DefaultMessages() Messages {
	return Messages{
		ConnectionFailed: "网络连接失败",
		NetworkError:     "网络错误",
		Relogin:          "请重新登录",
		Fallback:         "请求失败",
	}
}

// Config is fixed when the Client is built.
type Config struct {
	Profile Profile `mapstructure:"profile"`

	BaseURL   string                `mapstructure:"base_url"`
	Timeout   time.Duration         `mapstructure:"timeout"`
	Headers   map[string]string     `mapstructure:"headers"`
	TLS       *httpclient.TLSConfig `mapstructure:"tls"`
	CookieJar bool                  `mapstructure:"cookie_jar"`

	// Envelope is replaced by the profile policy when left zero.
	Envelope envelope.Policy `mapstructure:"envelope"`

	// Silent suppresses toasts. Always true for the storefront profile.
	Silent bool `mapstructure:"silent"`
	// LoginPath is the redirect target after a 401. Empty disables it.
	LoginPath string   `mapstructure:"login_path"`
	Messages  Messages `mapstructure:"messages"`

	RequestIDHeader string `mapstructure:"request_id_header"`
}

// ApplyDefaults fills zero-value fields from the profile.
func (c *Config) ApplyDefaults() {
	if c.Profile == "" {
		c.Profile = ProfileMiniProgram
	}

	defaults := DefaultMessages()
	if c.Messages.ConnectionFailed == "" {
		c.Messages.ConnectionFailed = defaults.ConnectionFailed
	}
	if c.Messages.NetworkError == "" {
		c.Messages.NetworkError = defaults.NetworkError
	}
	if c.Messages.Relogin == "" {
		c.Messages.Relogin = defaults.Relogin
	}
	if c.Messages.Fallback == "" {
		c.Messages.Fallback = defaults.Fallback
	}
	if c.RequestIDHeader == "" {
		c.RequestIDHeader = DefaultRequestIDHeader
	}

	switch c.Profile {
	case ProfileStorefront:
		if c.BaseURL == "" {
			c.BaseURL = "http://localhost:8080/api"
		}
		if c.Timeout <= 0 {
			c.Timeout = 15 * time.Second
		}
		if c.Envelope == (envelope.Policy{}) {
			c.Envelope = envelope.Policy{SuccessCode: 200, MissingCode: envelope.MissingCodeSuccess}
		}
		c.Silent = true
		c.LoginPath = ""
	default:
		if c.BaseURL == "" {
			c.BaseURL = "http://localhost:8080"
		}
		if c.Timeout <= 0 {
			c.Timeout = 10 * time.Second
		}
		if c.Envelope == (envelope.Policy{}) {
			c.Envelope = envelope.DefaultPolicy()
		}
		if c.LoginPath == "" {
			c.LoginPath = DefaultLoginPath
		}
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Profile {
	case ProfileMiniProgram, ProfileStorefront:
	default:
		return fmt.Errorf("request: unknown profile %q", c.Profile)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("request: timeout must be positive")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("request: base_url must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	if c.Envelope.UnauthorizedCode != 0 && c.Envelope.UnauthorizedCode == c.Envelope.SuccessCode {
		return fmt.Errorf("request: success and unauthorized codes must differ")
	}
	if c.TLS != nil {
		return c.TLS.Validate()
	}
	return nil
}

// transportConfig derives the adapter configuration.
func (c *Config) transportConfig() httpclient.Config {
	return httpclient.Config{
		Name:      string(c.Profile),
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		Headers:   c.Headers,
		TLS:       c.TLS,
		CookieJar: c.CookieJar,
	}
}
