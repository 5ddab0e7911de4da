// Command mallctl drives the mall APIs from a terminal.
//
//	mallctl [-config path] [-env-file path] [-base-url url] <command> [args]
//
// Results are printed to stdout as JSON; logs and toasts go to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/mallkit/config"
	"github.com/kbukum/mallkit/credential"
	"github.com/kbukum/mallkit/effect"
	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/observability"
	"github.com/kbukum/mallkit/request"
	"github.com/kbukum/mallkit/storefront"
)

const serviceName = "mallctl"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "mallctl:", err)
		}
		os.Exit(1)
	}
}

// app holds everything a command needs.
type app struct {
	cfg    *Config
	client *request.Client
	creds  *credential.Credentials
	out    io.Writer
	log    *logger.Logger

	sf *storefront.Client
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "path to config.yml")
	envFile := fs.String("env-file", "", "path to a .env file")
	baseURL := fs.String("base-url", "", "override request.base_url")
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fs.Usage()
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}
	cfg, err := config.Load[Config](serviceName, opts...)
	if err != nil {
		return err
	}
	if *baseURL != "" {
		cfg.Request.BaseURL = *baseURL
	}

	logger.Init(cfg.Logging)
	logger.RegisterDefaults()
	log := logger.Get(logger.ComponentRequest)

	shutdown, err := observability.Setup(ctx, cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("telemetry shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	store, closeStore, err := credential.Open(ctx, cfg.Credential)
	if err != nil {
		return fmt.Errorf("credential store: %w", err)
	}
	defer func() { _ = closeStore() }()
	creds := credential.New(store)

	client, err := newClient(cfg.Request, creds, cfg.Observability.Enabled)
	if err != nil {
		return err
	}

	a := &app{cfg: cfg, client: client, creds: creds, out: stdout, log: log}
	return cmd.run(ctx, a, fs.Args()[1:])
}

func newClient(cfg request.Config, creds *credential.Credentials, metrics bool) (*request.Client, error) {
	runner := effect.NewRunner(
		effect.WithNotifier(effect.LogNotifier{}),
		effect.WithNavigator(effect.LogNavigator{}),
		effect.WithCredentialClearer(creds),
	)
	opts := []request.ClientOption{
		request.WithCredentials(creds),
		request.WithEffects(runner),
	}
	if metrics {
		m, err := observability.NewRequestMetrics(observability.Meter())
		if err != nil {
			return nil, fmt.Errorf("request metrics: %w", err)
		}
		opts = append(opts, request.WithMetrics(m))
	}
	c, err := request.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("request client: %w", err)
	}
	return c, nil
}

// storefront builds the storefront client on first use.
func (a *app) storefront() (*storefront.Client, error) {
	if a.sf != nil {
		return a.sf, nil
	}
	c, err := newClient(a.cfg.Storefront, a.creds, a.cfg.Observability.Enabled)
	if err != nil {
		return nil, err
	}
	a.sf = storefront.New(c, a.creds)
	return a.sf, nil
}
