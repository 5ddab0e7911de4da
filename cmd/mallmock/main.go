// Command mallmock serves the in-memory mall backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/mallkit/component"
	"github.com/kbukum/mallkit/config"
	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/mockserver"
	"github.com/kbukum/mallkit/observability"
)

// Config is the mallmock configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Mock mockserver.Config `yaml:"mock" mapstructure:"mock"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "mallmock"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Mock.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Mock.Validate(); err != nil {
		return fmt.Errorf("config.mock: %w", err)
	}
	return nil
}

func main() {
	configFile := flag.String("config", "", "path to config.yml")
	flag.Parse()

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	cfg, err := config.Load[Config]("mallmock", opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mallmock:", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)
	logger.RegisterDefaults()
	log := logger.Get(logger.ComponentMock)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := observability.Setup(ctx, cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	if err != nil {
		log.Fatal("observability setup failed", logger.Fields(logger.FieldError, err.Error()))
	}

	srv, err := mockserver.New(cfg.Mock, log, mockserver.WithVersion(cfg.Version))
	if err != nil {
		log.Fatal("mock server config invalid", logger.Fields(logger.FieldError, err.Error()))
	}

	registry := component.NewRegistry(logger.WithComponent("lifecycle"))
	_ = registry.Register(component.Func{ID: "telemetry", OnStop: shutdown})
	_ = registry.Register(srv)
	if err := registry.StartAll(ctx); err != nil {
		log.Fatal("mallmock failed to start", logger.Fields(logger.FieldError, err.Error()))
	}

	<-ctx.Done()
	if err := registry.StopAll(context.Background()); err != nil {
		log.Error("shutdown incomplete", logger.Fields(logger.FieldError, err.Error()))
	}
}
