package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"xwitter/internal/cmd/flags"
	"xwitter/internal/config"
	"xwitter/pkg/clicfg"
)

const VERSION = "0.1.0"

// Lifecycle budgets of the service container. Init covers the NATS connect
// retries of the store.
const (
	initTimeout        = 5 * time.Second
	healthCheckTimeout = time.Second
	shutdownTimeout    = 10 * time.Second
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "xwitter",
		Usage:   "Xwitter is the backend-for-frontend of the Xwitter social network",
		Version: VERSION,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, initLogger(c.String(flags.LogLevel.Name))
		},
		Flags: []cli.Flag{
			flags.LogLevel,
		},
		Commands: []*cli.Command{
			serveCmd,
		},
	}
}

func Run() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the flags of c into a Config and checks the combinations
// the flag validators cannot.
func loadConfig(c *cli.Command) (*config.Config, error) {
	cfg := &config.Config{}
	if err := clicfg.ParseFlags(c, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, c *cli.Command, services ...pal.ServiceDef) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	slog.Info("starting xwitter",
		"version", VERSION,
		"command", c.Name,
		"addr", cfg.Addr,
		"backend", cfg.BackendURL,
		"store", cfg.Store,
	)

	return pal.New(append(services, pal.Provide(cfg))...).
		InjectSlog().
		InitTimeout(initTimeout).
		HealthCheckTimeout(healthCheckTimeout).
		ShutdownTimeout(shutdownTimeout).
		Run(ctx, syscall.SIGINT, syscall.SIGTERM)
}
