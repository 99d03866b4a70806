package common

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
)

func IsContextDoneErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// RetryForever calls fn every interval until it succeeds or ctx is done
func RetryForever(ctx context.Context, interval time.Duration, fn func(context.Context) error) error {
	return retry.Do(ctx, retry.NewConstant(interval), func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil || IsContextDoneErr(err) {
			return err
		}

		return retry.RetryableError(err)
	})
}

// ExecuteWithRetry calls fn with exponential backoff starting at waitTime.
// fn is retried at most numRetries times and only while isRecoverableError reports true.
func ExecuteWithRetry(
	ctx context.Context, numRetries uint64, waitTime time.Duration,
	fn func(context.Context) error, isRecoverableError func(error) bool,
) error {
	backoff := retry.WithMaxRetries(numRetries, retry.NewExponential(waitTime))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil || IsContextDoneErr(err) {
			return err
		}

		if isRecoverableError == nil || isRecoverableError(err) {
			return retry.RetryableError(err)
		}

		return err
	})
}
