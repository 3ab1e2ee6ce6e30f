// Package store holds the post details cached by the post-details view model.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"xwitter/internal/config"
	"xwitter/internal/core"
)

const (
	defaultTTL    = 10 * time.Minute
	sweepInterval = time.Minute
)

type backingStore interface {
	core.PostStore
	Size(ctx context.Context) (int, error)
}

// Store is the configured core.PostStore: in-process memory or a NATS
// JetStream key-value bucket.
type Store struct {
	Logger *slog.Logger
	Config *config.Config

	backend backingStore
	memory  *Memory
	nats    *NATSKV
}

func (s *Store) Init(ctx context.Context) error {
	s.Logger = s.Logger.With("component", "store.Store")

	ttl := s.Config.CacheTTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	switch s.Config.Store {
	case config.StoreMemory, "":
		s.memory = NewMemory(ttl)
		s.backend = s.memory
	case config.StoreNATS:
		s.nats = &NATSKV{Logger: s.Logger, Config: s.Config}
		if err := s.nats.Init(ctx); err != nil {
			return err
		}
		s.backend = s.nats
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStore, s.Config.Store)
	}

	s.Logger.Info("Post store initialized", "kind", s.Config.Store, "ttl", ttl)
	return nil
}

func (s *Store) Run(ctx context.Context) error {
	if s.memory == nil {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := s.memory.Sweep(); removed > 0 {
				s.Logger.Debug("expired post details dropped", "count", removed)
			}
		}
	}
}

func (s *Store) HealthCheck(ctx context.Context) error {
	if s.nats != nil {
		return s.nats.HealthCheck(ctx)
	}
	return nil
}

func (s *Store) Shutdown(ctx context.Context) error {
	if s.nats != nil {
		return s.nats.Shutdown(ctx)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (core.PostDetails, bool, error) {
	return s.backend.Get(ctx, key)
}

func (s *Store) Put(ctx context.Context, key string, post core.PostDetails) error {
	return s.backend.Put(ctx, key, post)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

func (s *Store) Size(ctx context.Context) (int, error) {
	return s.backend.Size(ctx)
}
