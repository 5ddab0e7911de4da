package redis

import (
	"fmt"
	"time"
)

// Config holds the Redis connection used as a credential backend.
type Config struct {
	// Enabled controls whether credentials are kept in Redis.
	Enabled bool `mapstructure:"enabled"`

	// Addr is the Redis server address (host:port).
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// KeyPrefix namespaces every key, e.g. "mallkit:device-1:".
	KeyPrefix string `mapstructure:"key_prefix"`

	// TTL expires stored values. Empty means no expiry.
	TTL string `mapstructure:"ttl"`

	PoolSize     int    `mapstructure:"pool_size"`
	DialTimeout  string `mapstructure:"dial_timeout"`
	ReadTimeout  string `mapstructure:"read_timeout"`
	WriteTimeout string `mapstructure:"write_timeout"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.PoolSize <= 0 {
		c.PoolSize = 4
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "mallkit:"
	}
	if c.DialTimeout == "" {
		c.DialTimeout = "5s"
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "3s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "3s"
	}
}

// Validate checks that required fields are present and parseable.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Addr == "" {
		return fmt.Errorf("redis addr is required")
	}
	for name, v := range map[string]string{
		"dial_timeout":  c.DialTimeout,
		"read_timeout":  c.ReadTimeout,
		"write_timeout": c.WriteTimeout,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, v, err)
		}
	}
	if c.TTL != "" {
		d, err := time.ParseDuration(c.TTL)
		if err != nil {
			return fmt.Errorf("invalid ttl %q: %w", c.TTL, err)
		}
		if d < 0 {
			return fmt.Errorf("ttl must not be negative")
		}
	}
	return nil
}

// ttl returns the parsed TTL, 0 meaning no expiry.
func (c *Config) ttl() time.Duration {
	if c.TTL == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.TTL)
	return d
}
