package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidOwnerName = errors.New("invalid owner name")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrAmountTooLarge   = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxOwnerNameLength   = 100
	MaxDescriptionLength = 255
	MaxTransferAmount    = "1000000000" // 1 billion
	MonetaryScale        = 2
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateAmount validates a monetary amount: strictly positive, at most two
// decimal places (sub-cent precision is rejected rather than rounded), capped
// to keep NUMERIC(18,2) columns safe.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.Exponent() < -MonetaryScale {
		return ErrAmountPrecision
	}

	maxAmount, _ := decimal.NewFromString(MaxTransferAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxTransferAmount)
	}

	return nil
}

// ValidateNonNegativeAmount validates a starting balance: zero is allowed,
// precision and cap rules are the same as ValidateAmount.
func ValidateNonNegativeAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	if amount.IsZero() {
		return nil
	}

	return ValidateAmount(amount)
}

// ValidateDescription validates a ledger record description.
func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)

	if description == "" {
		return ErrEmptyDescription
	}

	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrEmptyDescription, MaxDescriptionLength)
	}

	return nil
}

// ValidateOwnerName validates an account owner name.
func ValidateOwnerName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidOwnerName)
	}

	if len(name) > MaxOwnerNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidOwnerName, MaxOwnerNameLength)
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}
