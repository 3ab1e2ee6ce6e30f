package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	libnats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"xwitter/internal/config"
	"xwitter/internal/core"
	"xwitter/pkg/retry"
)

const defaultBucket = "xwitter-posts"

var connectPolicy = retry.Policy{
	Attempts: 5,
	Delay:    100 * time.Millisecond,
	MaxDelay: time.Second,
}

// NATSKV keeps post details as JSON in a JetStream key-value bucket.
type NATSKV struct {
	Logger *slog.Logger
	Config *config.Config

	js jetstream.JetStream
	kv jetstream.KeyValue
}

func (n *NATSKV) Init(ctx context.Context) error {
	var nc *libnats.Conn

	err := connectPolicy.Do(ctx, func(context.Context) error {
		var err error
		nc, err = libnats.Connect(n.Config.NATSURL)
		if err != nil {
			n.Logger.Warn("failed to connect to NATS", "url", n.Config.NATSURL, "error", err)
		}
		return err
	})
	if err != nil {
		return err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return err
	}
	n.js = js

	bucket := n.bucket()

	if n.Config.NATSInit {
		if err := n.initBucket(ctx, bucket); err != nil {
			return err
		}
	}

	kv, err := js.KeyValue(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to open bucket %s: %w", bucket, err)
	}
	n.kv = kv

	return nil
}

func (n *NATSKV) HealthCheck(_ context.Context) error {
	_, err := n.js.Conn().RTT()
	return err
}

func (n *NATSKV) Shutdown(_ context.Context) error {
	return n.js.Conn().Drain()
}

func (n *NATSKV) Get(ctx context.Context, key string) (core.PostDetails, bool, error) {
	e, err := n.kv.Get(ctx, encodeKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return core.PostDetails{}, false, nil
		}
		return core.PostDetails{}, false, err
	}

	var post core.PostDetails
	if err := json.Unmarshal(e.Value(), &post); err != nil {
		return core.PostDetails{}, false, err
	}
	return post, true, nil
}

func (n *NATSKV) Put(ctx context.Context, key string, post core.PostDetails) error {
	payload, err := json.Marshal(post)
	if err != nil {
		return err
	}

	_, err = n.kv.Put(ctx, encodeKey(key), payload)
	if err != nil {
		return fmt.Errorf("failed to store key %s: %w", key, err)
	}
	return nil
}

func (n *NATSKV) Delete(ctx context.Context, key string) error {
	err := n.kv.Delete(ctx, encodeKey(key))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (n *NATSKV) Size(ctx context.Context) (int, error) {
	keys, err := n.kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return 0, nil
		}
		return 0, err
	}
	return len(keys), nil
}

func (n *NATSKV) bucket() string {
	if n.Config.NATSBucket != "" {
		return n.Config.NATSBucket
	}
	return defaultBucket
}

func (n *NATSKV) initBucket(ctx context.Context, bucket string) error {
	n.Logger.Info("Initializing NATS")

	_, err := n.js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: bucket,
		TTL:    n.Config.CacheTTL,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("KeyValue created or updated", "name", bucket)

	return nil
}

// encodeKey maps an arbitrary cache key onto the NATS key alphabet.
func encodeKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}
