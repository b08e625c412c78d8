package usecase

import "time"

const (
	// DefaultPageSize is applied when a list request carries no limit.
	DefaultPageSize = 50

	// MaxPageSize caps list requests regardless of the requested limit.
	MaxPageSize = 200

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// accountNumberAttempts bounds the retry loop when a generated account
	// number collides with an existing one.
	accountNumberAttempts = 3
)
