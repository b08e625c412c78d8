package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound         = errors.New("account not found")
	ErrDuplicateAccountNumber  = errors.New("account number already in use")
	ErrDuplicateEmail          = errors.New("email already in use")
	ErrInsufficientFunds       = errors.New("insufficient balance")

	// Transfer errors
	ErrSameAccount      = errors.New("cannot transfer to same account")
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrAmountPrecision  = errors.New("amount must have at most two decimal places")
	ErrEmptyDescription = errors.New("description is required")

	// Ledger errors
	ErrTransactionNotFound = errors.New("transaction not found")
)
