package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbanklab/bankd/internal/domain"
	"github.com/openbanklab/bankd/internal/infrastructure/metrics"
)

// AccountUseCase handles account creation, lookup and funding.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
	idGen       IDGenerator
	numberGen   AccountNumberGenerator
	retrier     Retrier
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	ledgerRepo LedgerRepository,
	idGen IDGenerator,
	numberGen AccountNumberGenerator,
	retrier Retrier,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		idGen:       idGen,
		numberGen:   numberGen,
		retrier:     retrier,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	OwnerName       string
	Email           string
	StartingBalance decimal.Decimal
}

// CreateAccount creates a new account with a generated account number and the
// given starting balance. The starting balance is the only balance mutation
// that happens outside a transfer.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateOwnerName(input.OwnerName); err != nil {
		return nil, err
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidateNonNegativeAmount(input.StartingBalance); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		OwnerName: input.OwnerName,
		Email:     input.Email,
		Balance:   input.StartingBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Account numbers are short and random, so collisions are possible.
	// Regenerate a bounded number of times before giving up.
	var err error
	for range accountNumberAttempts {
		account.AccountNumber = uc.numberGen.Generate()

		err = uc.accountRepo.Create(ctx, account)
		if !errors.Is(err, domain.ErrDuplicateAccountNumber) {
			break
		}
	}

	if err != nil {
		return nil, err
	}

	metrics.AccountsCreated.Inc()

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	return uc.accountRepo.List(ctx, limit, offset)
}

// DepositInput represents an external funding event for a single account.
type DepositInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Description string
}

// Deposit credits an account and appends a single credit ledger record with
// only the receiving account populated. Runs as one atomic unit, like a
// transfer, so the balance and the ledger cannot diverge.
func (uc *AccountUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	var credit *domain.Transaction

	err := uc.retrier.Retry(ctx, func() error {
		var execErr error

		credit, execErr = uc.executeDeposit(ctx, input)

		return execErr
	})
	if err != nil {
		return nil, err
	}

	metrics.DepositsCreated.Inc()

	return credit, nil
}

func (uc *AccountUseCase) executeDeposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, []string{input.AccountID})
	if err != nil {
		return nil, err
	}

	if len(accounts) != 1 {
		return nil, domain.ErrAccountNotFound
	}

	account := accounts[0]
	now := time.Now().UTC()

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, account.ApplyCredit(input.Amount), now); err != nil {
		return nil, err
	}

	credit := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		TransferID:  uc.idGen.Generate(),
		Amount:      input.Amount,
		Type:        domain.TypeCredit,
		Description: input.Description,
		ToAccount:   account.AccountNumber,
		Timestamp:   now,
		Status:      domain.StatusCompleted,
	}

	if err := uc.ledgerRepo.Create(ctx, tx, credit); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return credit, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
