package usecase

import (
	"context"

	"github.com/openbanklab/bankd/internal/domain"
)

// LedgerUseCase handles read access to the transaction ledger.
type LedgerUseCase struct {
	ledgerRepo  LedgerRepository
	accountRepo AccountRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository, accountRepo AccountRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

// ListTransactionsInput represents input for listing ledger records.
type ListTransactionsInput struct {
	Limit  int
	Offset int
}

// ListTransactions lists ledger records, newest first.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	return uc.ledgerRepo.List(ctx, limit, offset)
}

// ListTransactionsByUserInput represents input for listing a user's records.
type ListTransactionsByUserInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListTransactionsByUser lists ledger records touching the given user's
// account, newest first. The user ID is the account ID.
func (uc *LedgerUseCase) ListTransactionsByUser(ctx context.Context, input ListTransactionsByUserInput) ([]*domain.Transaction, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	limit, offset := clampPage(input.Limit, input.Offset)

	return uc.ledgerRepo.ListByAccount(ctx, account.AccountNumber, limit, offset)
}

// GetTransaction retrieves a single ledger record by ID.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.ledgerRepo.GetByID(ctx, id)
}
