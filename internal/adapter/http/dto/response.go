package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbanklab/bankd/internal/domain"
)

// TransactionResponse represents a ledger record in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	TransferID  string          `json:"transferId,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	FromAccount string          `json:"fromAccount,omitempty"`
	ToAccount   string          `json:"toAccount,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Status      string          `json:"status"`
}

// TransactionFromDomain converts a domain ledger record to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		TransferID:  t.TransferID,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Description: t.Description,
		FromAccount: t.FromAccount,
		ToAccount:   t.ToAccount,
		Timestamp:   t.Timestamp,
		Status:      string(t.Status),
	}
}

// TransactionsFromDomain converts domain ledger records to responses.
func TransactionsFromDomain(records []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(records))
	for i, t := range records {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	OwnerName     string          `json:"ownerName"`
	Email         string          `json:"email"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		OwnerName:     a.OwnerName,
		Email:         a.Email,
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Message string `json:"message"`
}
