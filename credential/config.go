package credential

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kbukum/mallkit/encryption"
	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/redis"
)

// Backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config selects and configures the credential backend.
type Config struct {
	Backend string       `mapstructure:"backend"`
	Path    string       `mapstructure:"path"`
	Redis   redis.Config `mapstructure:"redis"`

	// EncryptionKey, when set, seals the credentials file at rest.
	EncryptionKey string `mapstructure:"encryption_key"`
	Cipher        string `mapstructure:"cipher"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	if c.Backend == BackendFile && c.Path == "" {
		c.Path = defaultPath()
	}
	if c.Backend == BackendRedis {
		c.Redis.Enabled = true
		c.Redis.ApplyDefaults()
	}
}

// Validate checks the selected backend's settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendFile:
		if c.Path == "" {
			return fmt.Errorf("credential: file backend needs a path")
		}
		if _, err := encryption.ParseAlgorithm(c.Cipher); err != nil {
			return fmt.Errorf("credential: %w", err)
		}
		return nil
	case BackendRedis:
		return c.Redis.Validate()
	default:
		return fmt.Errorf("credential: unknown backend %q", c.Backend)
	}
}

// Open builds the configured Store. The returned close func releases
// backend resources and is never nil.
func Open(ctx context.Context, cfg Config) (Store, func() error, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	noop := func() error { return nil }

	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(), noop, nil
	case BackendFile:
		if cfg.EncryptionKey == "" {
			return NewFileStore(cfg.Path), noop, nil
		}
		alg, _ := encryption.ParseAlgorithm(cfg.Cipher)
		enc, err := encryption.New(cfg.EncryptionKey,
			encryption.WithAlgorithm(alg), encryption.WithContext("mallkit/credentials"))
		if err != nil {
			return nil, nil, err
		}
		return NewFileStore(cfg.Path, WithEncryptor(enc)), noop, nil
	default:
		client, err := redis.New(cfg.Redis, logger.Get(logger.ComponentCredential))
		if err != nil {
			return nil, nil, err
		}
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return NewRedisStore(client), client.Close, nil
	}
}

func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "mallkit", "credentials.json")
}
