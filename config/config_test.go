package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/mallkit/envelope"
	"github.com/kbukum/mallkit/logger"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "mallctl"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug logging in development, got %q", cfg.Logging.Level)
		}
		if cfg.Logging.ServiceName != "mallctl" {
			t.Errorf("expected logging service name to follow name, got %q", cfg.Logging.ServiceName)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "mallctl", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info logging, got %q", cfg.Logging.Level)
		}
		if cfg.Observability.Endpoint == "" {
			t.Error("expected observability defaults applied")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		cfg := ServiceConfig{Name: "mallctl", Environment: "staging"}
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		wantErr string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "config.name is required"},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "qa" }, "config.environment must be one of"},
		{"bad logging level", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "config.logging"},
		{"bad sample rate", func(c *ServiceConfig) { c.Observability.SampleRate = 2 }, "config.observability"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

type clientSection struct {
	BaseURL  string          `mapstructure:"base_url"`
	Timeout  time.Duration   `mapstructure:"timeout"`
	Envelope envelope.Policy `mapstructure:"envelope"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Client        clientSection `mapstructure:"client"`
}

func (c *testConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Client.Timeout == 0 {
		c.Client.Timeout = 10 * time.Second
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigWithYAML(t *testing.T) {
	path := writeConfig(t, `
name: mallctl
environment: staging
version: "1.0.0"
client:
  base_url: http://localhost:8080
  timeout: 3s
  envelope:
    success_code: 200
    missing_code: failure
`)

	var cfg testConfig
	if err := LoadConfig("mallctl", &cfg, WithConfigFile(path), WithLogger(logger.Nop())); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "mallctl" || cfg.Environment != "staging" || cfg.Version != "1.0.0" {
		t.Errorf("unexpected service fields: %+v", cfg.ServiceConfig)
	}
	if cfg.Client.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.Client.Timeout)
	}
	if cfg.Client.Envelope.MissingCode != envelope.MissingCodeFailure {
		t.Errorf("expected missing_code failure, got %v", cfg.Client.Envelope.MissingCode)
	}
}

func TestLoadAppliesDefaultsAndValidates(t *testing.T) {
	path := writeConfig(t, "name: mallctl\n")

	cfg, err := Load[testConfig]("mallctl", WithConfigFile(path), WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected development, got %q", cfg.Environment)
	}
	if cfg.Client.Timeout != 10*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.Client.Timeout)
	}

	bad := writeConfig(t, "name: mallctl\nenvironment: qa\n")
	if _, err := Load[testConfig]("mallctl", WithConfigFile(bad), WithLogger(logger.Nop())); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "name: mallctl\nclient:\n  base_url: http://file\n")
	t.Setenv("CLIENT_BASE_URL", "http://env")

	var cfg testConfig
	if err := LoadConfig("mallctl", &cfg, WithConfigFile(path), WithLogger(logger.Nop())); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Client.BaseURL != "http://env" {
		t.Errorf("expected env override, got %q", cfg.Client.BaseURL)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("mallctl", &cfg,
		WithFileSystem(&mockFS{}),
		WithDefaults(map[string]any{"name": "fallback", "client.base_url": "http://default"}),
		WithLogger(logger.Nop()),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "fallback" || cfg.Client.BaseURL != "http://default" {
		t.Errorf("expected defaults, got name=%q base_url=%q", cfg.Name, cfg.Client.BaseURL)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"), WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	t.Run("config next to the command", func(t *testing.T) {
		fs := &mockFS{files: map[string]bool{"./cmd/mallctl/config.yml": true}}
		files := (&Resolver{FileSystem: fs}).ResolveFiles("mallctl", LoaderConfig{})
		if files.ConfigFile != "./cmd/mallctl/config.yml" {
			t.Errorf("unexpected config file %q", files.ConfigFile)
		}
	})

	t.Run("short name after dash", func(t *testing.T) {
		fs := &mockFS{files: map[string]bool{"../cmd/mock/config.yml": true}}
		files := (&Resolver{FileSystem: fs}).ResolveFiles("mall-mock", LoaderConfig{})
		if files.ConfigFile != "../cmd/mock/config.yml" {
			t.Errorf("unexpected config file %q", files.ConfigFile)
		}
	})

	t.Run("service env file wins over plain .env", func(t *testing.T) {
		fs := &mockFS{files: map[string]bool{
			"cmd/mallctl/.env.mallctl": true,
			".env":                     true,
		}}
		files := (&Resolver{FileSystem: fs}).ResolveFiles("mallctl", LoaderConfig{})
		if files.EnvFile != "cmd/mallctl/.env.mallctl" {
			t.Errorf("unexpected env file %q", files.EnvFile)
		}
	})

	t.Run("explicit paths are kept", func(t *testing.T) {
		files := (&Resolver{FileSystem: &mockFS{}}).ResolveFiles("mallctl", LoaderConfig{ConfigFile: "a.yml", EnvFile: "b.env"})
		if files.ConfigFile != "a.yml" || files.EnvFile != "b.env" {
			t.Errorf("unexpected files %+v", files)
		}
	})
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }
func (m *mockFS) Getwd() (string, error)    { return "/mock", nil }

func TestGenerateEnvKeyVariants(t *testing.T) {
	variants := generateEnvKeyVariants("REQUEST_BASE_URL")
	want := map[string]bool{"request_base_url": false, "request.base.url": false, "request.base_url": false}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("expected variant %q in %v", k, variants)
		}
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	if lc.FileSystem == nil || lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("unexpected loader config %+v", lc)
	}
}
