package domain

import "github.com/shopspring/decimal"

// TransferRequest is a validated request to move funds between two accounts.
type TransferRequest struct {
	SenderID    string
	ReceiverID  string
	Amount      decimal.Decimal
	Description string
}

// Validate checks the request shape. Account existence and balance
// sufficiency are checked against the store, not here.
func (r *TransferRequest) Validate() error {
	if r.SenderID == r.ReceiverID {
		return ErrSameAccount
	}

	if err := ValidateAmount(r.Amount); err != nil {
		return err
	}

	if err := ValidateDescription(r.Description); err != nil {
		return err
	}

	return nil
}
