package store

import (
	"encoding/base64"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"xwitter/internal/config"
	"xwitter/internal/core"
)

func post(id string, comments int) core.PostDetails {
	return core.PostDetails{TimelinePost: core.TimelinePost{ID: id, CommentCount: comments}}
}

func TestMemory(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		m := NewMemory(time.Minute)

		_, ok, err := m.Get(t.Context(), "k")
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, m.Put(t.Context(), "k", post("p1", 3)))

		got, ok, err := m.Get(t.Context(), "k")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, post("p1", 3), got)

		require.NoError(t, m.Delete(t.Context(), "k"))

		_, ok, err = m.Get(t.Context(), "k")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("expiry", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		m := NewMemory(time.Minute)
		m.now = func() time.Time { return now }

		require.NoError(t, m.Put(t.Context(), "a", post("p1", 0)))
		now = now.Add(30 * time.Second)
		require.NoError(t, m.Put(t.Context(), "b", post("p2", 0)))

		now = now.Add(45 * time.Second)

		_, ok, err := m.Get(t.Context(), "a")
		require.NoError(t, err)
		require.False(t, ok)

		_, ok, err = m.Get(t.Context(), "b")
		require.NoError(t, err)
		require.True(t, ok)

		require.Equal(t, 1, m.Sweep())

		size, err := m.Size(t.Context())
		require.NoError(t, err)
		require.Equal(t, 1, size)
	})
}

func TestStore_Init(t *testing.T) {
	t.Parallel()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()

		s := &Store{
			Logger: slog.New(slog.DiscardHandler),
			Config: &config.Config{Store: config.StoreMemory},
		}
		require.NoError(t, s.Init(t.Context()))
		require.NotNil(t, s.memory)

		require.NoError(t, s.Put(t.Context(), "k", post("p1", 1)))
		got, ok, err := s.Get(t.Context(), "k")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "p1", got.ID)

		require.NoError(t, s.HealthCheck(t.Context()))
		require.NoError(t, s.Shutdown(t.Context()))
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		s := &Store{
			Logger: slog.New(slog.DiscardHandler),
			Config: &config.Config{Store: "redis"},
		}
		require.ErrorIs(t, s.Init(t.Context()), ErrUnknownStore)
	})
}

func TestEncodeKey(t *testing.T) {
	t.Parallel()

	valid := regexp.MustCompile(`^[-/_=.a-zA-Z0-9]+$`)

	for _, key := range []string{
		core.Session{Token: "tok"}.Key("8f14e45f-ceea-467f-a0e6-2b3c4d5e6f70"),
		"abc.post with spaces/and?query",
	} {
		encoded := encodeKey(key)
		require.Regexp(t, valid, encoded)

		decoded, err := base64.RawURLEncoding.DecodeString(encoded)
		require.NoError(t, err)
		require.Equal(t, key, string(decoded))
	}
}
