package metrics

import (
	"context"
	"log/slog"
	"time"

	"xwitter/internal/store"
)

const collectInterval = 15 * time.Second

// Collector periodically samples gauges that are not updated inline.
type Collector struct {
	Logger *slog.Logger
	Store  *store.Store
}

func (c *Collector) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "metrics.Collector")
	return nil
}

func (c *Collector) Run(ctx context.Context) error {
	ticker := time.NewTicker(collectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.Logger.Debug("Collecting metrics")
			if err := c.Collect(ctx); err != nil {
				c.Logger.Warn("failed to collect metrics", "error", err)
			}
		}
	}
}

func (c *Collector) Collect(ctx context.Context) error {
	size, err := c.Store.Size(ctx)
	if err != nil {
		return err
	}

	CachedPosts.Set(float64(size))
	return nil
}
