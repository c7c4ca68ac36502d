package classifier

import (
	"context"
	"errors"
	"time"

	"analyse-juridique/config"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

// retryDelay is the first backoff step; it doubles on each attempt
var retryDelay = time.Second

// withRetry runs fn until it succeeds, fails permanently, or the attempts run out
func withRetry(ctx context.Context, attempts int, backend string, logger *zap.Logger, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(uint(attemptsOrDefault(attempts))),
		retry.Delay(retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("Classifier call failed, retrying",
				zap.String("backend", backend),
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	)
}

// Deadline bounds one Classify call: every attempt at its full timeout plus
// the backoff waited between attempts
func Deadline(cfg config.ClassifierConfig) time.Duration {
	attempts := attemptsOrDefault(cfg.MaxAttempts)
	total := timeoutOrDefault(cfg.Timeout) * time.Duration(attempts)
	for n := 1; n < attempts; n++ {
		total += retryDelay << (n - 1)
	}
	return total
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrMalformedResponse) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}

	// Transport failures
	return true
}
