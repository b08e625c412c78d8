package dto

import (
	"github.com/shopspring/decimal"

	"github.com/openbanklab/bankd/internal/domain"
)

// CreateTransactionRequest represents a request to move funds between two
// accounts.
type CreateTransactionRequest struct {
	SenderID    string          `json:"senderId"`
	ReceiverID  string          `json:"receiverId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ToDomain converts to a domain transfer request.
func (r *CreateTransactionRequest) ToDomain() domain.TransferRequest {
	return domain.TransferRequest{
		SenderID:    r.SenderID,
		ReceiverID:  r.ReceiverID,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	OwnerName       string          `json:"ownerName"`
	Email           string          `json:"email"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
}

// DepositRequest represents a request to credit an account.
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}
