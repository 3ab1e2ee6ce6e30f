package flags

import (
	"fmt"
	"net/url"
	"slices"
	"time"

	libnats "github.com/nats-io/nats.go"
	"github.com/urfave/cli/v3"

	"xwitter/internal/config"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error"}
	validStores    = []string{config.StoreMemory, config.StoreNATS}
)

// oneOf builds a validator for enum-like string flags.
func oneOf(what string, allowed []string) func(string) error {
	return func(value string) error {
		if !slices.Contains(allowed, value) {
			return fmt.Errorf("invalid %s: %s, allowed values are: %s", what, value, allowed)
		}
		return nil
	}
}

var LogLevel = &cli.StringFlag{
	Name:      "log-level",
	Aliases:   []string{"l"},
	Usage:     "The level of the logs",
	Value:     "info",
	Validator: oneOf("log level", validLogLevels),
	Sources:   cli.EnvVars("LOG_LEVEL"),
}

var Addr = &cli.StringFlag{
	Name:    "addr",
	Aliases: []string{"a"},
	Usage:   "The address the BFF listens on",
	Value:   ":3000",
	Sources: cli.EnvVars("ADDR"),
}

var MetricsAddr = &cli.StringFlag{
	Name:    "metrics-addr",
	Usage:   "The address serving /metrics and /health",
	Value:   ":8080",
	Sources: cli.EnvVars("METRICS_ADDR"),
}

var SecureCookies = &cli.BoolFlag{
	Name:    "secure-cookies",
	Usage:   "Mark the auth cookie as Secure",
	Value:   false,
	Sources: cli.EnvVars("SECURE_COOKIES"),
}

var BackendURL = &cli.StringFlag{
	Name:     "backend-url",
	Aliases:  []string{"b"},
	Usage:    "The base URL of the Xwitter backend",
	Required: true,
	Validator: func(value string) error {
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid backend URL: %q", value)
		}
		return nil
	},
	Sources: cli.EnvVars("BACKEND_URL"),
}

var BackendTimeout = &cli.DurationFlag{
	Name:    "backend-timeout",
	Usage:   "Timeout of a single backend request",
	Value:   10 * time.Second,
	Sources: cli.EnvVars("BACKEND_TIMEOUT"),
}

var Store = &cli.StringFlag{
	Name:      "store",
	Usage:     "Where post details are cached: memory or nats",
	Value:     config.StoreMemory,
	Validator: oneOf("store", validStores),
	Sources:   cli.EnvVars("STORE"),
}

var CacheTTL = &cli.DurationFlag{
	Name:    "cache-ttl",
	Usage:   "How long cached post details are kept",
	Value:   10 * time.Minute,
	Sources: cli.EnvVars("CACHE_TTL"),
}

var NATSURL = &cli.StringFlag{
	Name:    "nats-url",
	Aliases: []string{"n"},
	Usage:   "The URL of the NATS server",
	Value:   libnats.DefaultURL,
	Sources: cli.EnvVars("NATS_URL"),
}

var NATSInit = &cli.BoolFlag{
	Name:        "nats-init",
	Aliases:     []string{"i"},
	Usage:       "Initialize the NATS server: create the key-value bucket",
	DefaultText: "false",
	Value:       false,
	Sources:     cli.EnvVars("NATS_INIT"),
}

var NATSBucket = &cli.StringFlag{
	Name:    "nats-bucket",
	Usage:   "The NATS key-value bucket holding post details",
	Value:   "xwitter-posts",
	Sources: cli.EnvVars("NATS_BUCKET"),
}
