package summarizer

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	apperrors "yt-summary/errors"
)

// withRetry runs fn with exponential backoff until it succeeds, the
// context expires, or maxElapsed is reached. Errors marked permanent
// are returned immediately.
func withRetry(ctx context.Context, maxElapsed time.Duration, fn func() (string, error)) (string, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = maxElapsed

	var result string
	operation := func() error {
		summary, err := fn()
		if err != nil {
			if apperrors.IsKind(err, apperrors.KindInputTooLarge) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = summary
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	return result, nil
}
