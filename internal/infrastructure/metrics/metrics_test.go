package metrics

import (
	"errors"
	"testing"

	"github.com/openbanklab/bankd/internal/domain"
)

func TestErrorReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrAccountNotFound, "account_not_found"},
		{domain.ErrInsufficientFunds, "insufficient_funds"},
		{domain.ErrSameAccount, "same_account"},
		{domain.ErrInvalidAmount, "invalid_amount"},
		{domain.ErrAmountPrecision, "invalid_amount"},
		{domain.ErrEmptyDescription, "invalid_description"},
		{errors.New("connection refused"), "persistence"},
	}

	for _, tt := range tests {
		if got := ErrorReason(tt.err); got != tt.want {
			t.Errorf("ErrorReason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
