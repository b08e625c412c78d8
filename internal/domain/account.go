package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a balance-holding entity owned by a single user. The ID doubles
// as the user identifier and the account number is the human-facing handle
// referenced by ledger records.
type Account struct {
	ID            string
	OwnerName     string
	Email         string
	AccountNumber string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanDebit checks whether the account holds enough balance to be debited by
// amount. Accounts never go negative.
func (a *Account) CanDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the balance after a debit of amount.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit of amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
