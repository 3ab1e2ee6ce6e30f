package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	StoreMemory = "memory"
	StoreNATS   = "nats"
)

type Config struct {
	LogLevel string `flag:"log-level"`

	Addr          string `flag:"addr"`
	MetricsAddr   string `flag:"metrics-addr"`
	SecureCookies bool   `flag:"secure-cookies"`

	BackendURL     string        `flag:"backend-url"`
	BackendTimeout time.Duration `flag:"backend-timeout"`

	Store    string        `flag:"store"`
	CacheTTL time.Duration `flag:"cache-ttl"`

	NATSURL    string `flag:"nats-url"`
	NATSInit   bool   `flag:"nats-init"`
	NATSBucket string `flag:"nats-bucket"`
}

var ErrInvalid = errors.New("invalid configuration")

// Validate reports every inconsistency between flags that the individual flag
// validators cannot see.
func (c Config) Validate() error {
	var errs []error

	if c.Addr != "" && c.Addr == c.MetricsAddr {
		errs = append(errs, fmt.Errorf("%w: addr and metrics-addr are both %s", ErrInvalid, c.Addr))
	}
	if c.BackendTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: backend-timeout must not be negative", ErrInvalid))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("%w: cache-ttl must not be negative", ErrInvalid))
	}

	switch c.Store {
	case "", StoreMemory:
	case StoreNATS:
		if c.NATSURL == "" {
			errs = append(errs, fmt.Errorf("%w: nats-url is required by the nats store", ErrInvalid))
		}
		if c.NATSBucket == "" {
			errs = append(errs, fmt.Errorf("%w: nats-bucket is required by the nats store", ErrInvalid))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown store %q", ErrInvalid, c.Store))
	}

	return errors.Join(errs...)
}
