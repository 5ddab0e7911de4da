package httpclient

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
)

// Config configures the HTTP transport adapter.
type Config struct {
	// Name identifies the adapter in logs.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a whole request, response body included. Defaults to 10s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// CookieJar keeps cookies between requests (storefront sessions).
	CookieJar bool `yaml:"cookie_jar" mapstructure:"cookie_jar"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Name == "" {
		c.Name = "httpclient"
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.BaseURL != "" && strings.ContainsAny(c.BaseURL, " \t\n") {
		return fmt.Errorf("httpclient: base_url %q contains whitespace", c.BaseURL)
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}
