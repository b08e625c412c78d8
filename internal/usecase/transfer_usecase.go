package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/openbanklab/bankd/internal/domain"
	"github.com/openbanklab/bankd/internal/infrastructure/metrics"
)

// TransferUseCase executes validated, atomic funds movements between two
// accounts and records the paired debit/credit ledger entries.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
	idGen       IDGenerator
	retrier     Retrier
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	ledgerRepo LedgerRepository,
	idGen IDGenerator,
	retrier Retrier,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		idGen:       idGen,
		retrier:     retrier,
	}
}

// Transfer moves input.Amount from the sender to the receiver and returns the
// debit-perspective ledger record. Either every side effect commits (both
// balance changes plus the debit/credit pair) or none do.
func (uc *TransferUseCase) Transfer(ctx context.Context, input domain.TransferRequest) (*domain.Transaction, error) {
	start := time.Now()

	record, err := uc.transfer(ctx, input)
	metrics.ObserveTransfer(input.Amount, time.Since(start).Seconds(), err)

	return record, err
}

func (uc *TransferUseCase) transfer(ctx context.Context, input domain.TransferRequest) (*domain.Transaction, error) {
	// Resolve both parties first so an unknown account reports not-found
	// regardless of other problems with the request.
	sender, err := uc.accountRepo.GetByID(ctx, input.SenderID)
	if err != nil {
		return nil, err
	}

	receiver, err := uc.accountRepo.GetByID(ctx, input.ReceiverID)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Early sufficiency check from the unlocked read. The authoritative check
	// runs again inside the atomic unit; this one only short-circuits requests
	// that cannot possibly succeed.
	if err := sender.CanDebit(input.Amount); err != nil {
		return nil, err
	}

	var debit *domain.Transaction

	err = uc.retrier.Retry(ctx, func() error {
		var execErr error

		debit, execErr = uc.execute(ctx, input, sender.ID, receiver.ID)

		return execErr
	})
	if err != nil {
		return nil, err
	}

	return debit, nil
}

// execute runs one attempt of the atomic unit: lock both account rows in
// sorted ID order, re-check sufficiency, adjust balances, append the ledger
// pair, commit.
func (uc *TransferUseCase) execute(ctx context.Context, input domain.TransferRequest, senderID, receiverID string) (*domain.Transaction, error) {
	ids := []string{senderID, receiverID}
	sort.Strings(ids)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	var sender, receiver *domain.Account
	for _, acc := range accounts {
		switch acc.ID {
		case senderID:
			sender = acc
		case receiverID:
			receiver = acc
		}
	}

	if sender == nil || receiver == nil {
		return nil, domain.ErrAccountNotFound
	}

	// Authoritative sufficiency check under the row lock. A concurrent
	// transfer may have drained the sender since the unlocked read.
	if err := sender.CanDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.UpdateBalance(ctx, tx, sender.ID, sender.ApplyDebit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, receiver.ID, receiver.ApplyCredit(input.Amount), now); err != nil {
		return nil, err
	}

	transferID := uc.idGen.Generate()

	debit := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		TransferID:  transferID,
		Amount:      input.Amount,
		Type:        domain.TypeDebit,
		Description: input.Description,
		FromAccount: sender.AccountNumber,
		ToAccount:   receiver.AccountNumber,
		Timestamp:   now,
		Status:      domain.StatusCompleted,
	}

	credit := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		TransferID:  transferID,
		Amount:      input.Amount,
		Type:        domain.TypeCredit,
		Description: input.Description,
		FromAccount: sender.AccountNumber,
		ToAccount:   receiver.AccountNumber,
		Timestamp:   now,
		Status:      domain.StatusCompleted,
	}

	if err := uc.ledgerRepo.Create(ctx, tx, debit); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.Create(ctx, tx, credit); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return debit, nil
}
