package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const (
	pgErrDeadlockDetected    = "40P01"
	pgErrSerializationFailed = "40001"
)

// Retrier retries transient database failures with exponential backoff.
// Only deadlocks and serialization failures are retried; every other error
// is returned to the caller immediately.
type Retrier struct {
	logger      zerolog.Logger
	maxRetries  uint64
	maxInterval time.Duration
}

// NewRetrier creates a new Retrier.
func NewRetrier(logger zerolog.Logger, maxRetries uint64, maxInterval time.Duration) *Retrier {
	return &Retrier{
		logger:      logger,
		maxRetries:  maxRetries,
		maxInterval: maxInterval,
	}
}

// Retry runs op, retrying while it fails with a retryable database error.
func (r *Retrier) Retry(ctx context.Context, op func() error) error {
	attempt := 0

	wrapped := func() error {
		attempt++

		err := op()
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Msg("retrying transient database error")

		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxInterval = r.maxInterval

	return backoff.Retry(wrapped, backoff.WithContext(backoff.WithMaxRetries(policy, r.maxRetries), ctx))
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgErrDeadlockDetected || pgErr.Code == pgErrSerializationFailed
}
