package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryForever(t *testing.T) {
	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0

		err := RetryForever(context.Background(), time.Millisecond, func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("not yet")
			}

			return nil
		})

		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("stops when context is done", func(t *testing.T) {
		ctx, cancelFn := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancelFn()

		err := RetryForever(ctx, time.Millisecond, func(ctx context.Context) error {
			return errors.New("always")
		})

		require.Error(t, err)
	})
}

func TestExecuteWithRetry(t *testing.T) {
	errRecoverable := errors.New("recoverable")
	errFatal := errors.New("fatal")
	isRecoverable := func(err error) bool { return errors.Is(err, errRecoverable) }

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0

		err := ExecuteWithRetry(context.Background(), 2, time.Millisecond, func(ctx context.Context) error {
			calls++

			return errRecoverable
		}, isRecoverable)

		require.ErrorIs(t, err, errRecoverable)
		require.Equal(t, 3, calls)
	})

	t.Run("does not retry unrecoverable errors", func(t *testing.T) {
		calls := 0

		err := ExecuteWithRetry(context.Background(), 5, time.Millisecond, func(ctx context.Context) error {
			calls++

			return errFatal
		}, isRecoverable)

		require.ErrorIs(t, err, errFatal)
		require.Equal(t, 1, calls)
	})
}
