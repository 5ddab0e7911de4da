package main

import (
	"fmt"

	"github.com/kbukum/mallkit/config"
	"github.com/kbukum/mallkit/credential"
	"github.com/kbukum/mallkit/request"
	"github.com/kbukum/mallkit/version"
)

// Config is the mallctl configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// Request configures the mini-program client.
	Request request.Config `yaml:"request" mapstructure:"request"`
	// Storefront configures the storefront client. Its profile is always
	// storefront.
	Storefront request.Config    `yaml:"storefront" mapstructure:"storefront"`
	Credential credential.Config `yaml:"credential" mapstructure:"credential"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "mallctl"
	}
	c.ServiceConfig.ApplyDefaults()
	userAgent(&c.Request)
	userAgent(&c.Storefront)
	c.Request.ApplyDefaults()
	c.Storefront.Profile = request.ProfileStorefront
	c.Storefront.ApplyDefaults()
	c.Credential.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Request.Validate(); err != nil {
		return fmt.Errorf("config.request: %w", err)
	}
	if err := c.Storefront.Validate(); err != nil {
		return fmt.Errorf("config.storefront: %w", err)
	}
	if err := c.Credential.Validate(); err != nil {
		return fmt.Errorf("config.credential: %w", err)
	}
	return nil
}

func userAgent(c *request.Config) {
	if _, ok := c.Headers["User-Agent"]; ok {
		return
	}
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	c.Headers["User-Agent"] = version.UserAgent(serviceName)
}
