package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"xwitter/pkg/retry"
)

var errBoom = errors.New("boom")

func TestPolicy_Do(t *testing.T) {
	t.Parallel()

	t.Run("succeeds after failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := retry.Policy{Attempts: 3, Delay: time.Millisecond}.Do(t.Context(), func(context.Context) error {
			calls++
			if calls < 3 {
				return errBoom
			}
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := retry.Policy{Attempts: 2, Delay: time.Millisecond}.Do(t.Context(), func(context.Context) error {
			calls++
			return errBoom
		})

		require.ErrorIs(t, err, errBoom)
		require.Equal(t, 2, calls)
	})

	t.Run("should retry", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := retry.Policy{
			Attempts: 5,
			Delay:    time.Millisecond,
			ShouldRetry: func(_ error, attempt int) bool {
				return attempt < 2
			},
		}.Do(t.Context(), func(context.Context) error {
			calls++
			return errBoom
		})

		require.ErrorIs(t, err, errBoom)
		require.Equal(t, 2, calls)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		calls := 0
		err := retry.Policy{Attempts: 5, Delay: time.Hour}.Do(ctx, func(context.Context) error {
			calls++
			return errBoom
		})

		require.ErrorIs(t, err, errBoom)
		require.Equal(t, 1, calls)
	})
}
