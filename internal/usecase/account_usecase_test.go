package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/openbanklab/bankd/internal/domain"
	"github.com/openbanklab/bankd/internal/usecase"
	"github.com/openbanklab/bankd/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account with generated number and starting balance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		idGen := mocks.NewMockIDGenerator(ctrl)
		numberGen := mocks.NewMockAccountNumberGenerator(ctrl)

		idGen.EXPECT().Generate().Return("acc-1")
		numberGen.EXPECT().Generate().Return("10004321")
		accountRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		uc := usecase.NewAccountUseCase(nil, accountRepo, nil, idGen, numberGen, nil)

		account, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{
			OwnerName:       "John Doe",
			Email:           "john@example.com",
			StartingBalance: decimal.NewFromInt(5000),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if account.ID != "acc-1" {
			t.Errorf("ID = %s, want acc-1", account.ID)
		}
		if account.AccountNumber != "10004321" {
			t.Errorf("AccountNumber = %s, want 10004321", account.AccountNumber)
		}
		if !account.Balance.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("Balance = %s, want 5000", account.Balance)
		}
	})

	t.Run("regenerates number on collision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		idGen := mocks.NewMockIDGenerator(ctrl)
		numberGen := mocks.NewMockAccountNumberGenerator(ctrl)

		idGen.EXPECT().Generate().Return("acc-1")
		numberGen.EXPECT().Generate().Return("10001000")
		numberGen.EXPECT().Generate().Return("10002000")
		gomock.InOrder(
			accountRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicateAccountNumber),
			accountRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
		)

		uc := usecase.NewAccountUseCase(nil, accountRepo, nil, idGen, numberGen, nil)

		account, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{
			OwnerName:       "John Doe",
			Email:           "john@example.com",
			StartingBalance: decimal.Zero,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if account.AccountNumber != "10002000" {
			t.Errorf("AccountNumber = %s, want regenerated 10002000", account.AccountNumber)
		}
	})

	t.Run("rejects invalid input without touching the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accountRepo := mocks.NewMockAccountRepository(ctrl)
		uc := usecase.NewAccountUseCase(nil, accountRepo, nil, nil, nil, nil)

		tests := []struct {
			name    string
			input   usecase.CreateAccountInput
			wantErr error
		}{
			{
				name:    "empty owner name",
				input:   usecase.CreateAccountInput{OwnerName: " ", Email: "a@b.co", StartingBalance: decimal.Zero},
				wantErr: domain.ErrInvalidOwnerName,
			},
			{
				name:    "bad email",
				input:   usecase.CreateAccountInput{OwnerName: "A", Email: "nope", StartingBalance: decimal.Zero},
				wantErr: domain.ErrInvalidEmail,
			},
			{
				name:    "negative starting balance",
				input:   usecase.CreateAccountInput{OwnerName: "A", Email: "a@b.co", StartingBalance: decimal.NewFromInt(-1)},
				wantErr: domain.ErrInvalidAmount,
			},
		}

		for _, tt := range tests {
			_, err := uc.CreateAccount(ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("%s: got %v, want %v", tt.name, err, tt.wantErr)
			}
		}
	})
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	// Limit clamped to defaults when zero, offset clamped to zero.
	accountRepo.EXPECT().List(gomock.Any(), usecase.DefaultPageSize, 0).Return([]*domain.Account{{ID: "acc-1"}}, nil)

	uc := usecase.NewAccountUseCase(nil, accountRepo, nil, nil, nil, nil)

	accounts, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Limit: 0, Offset: -5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 1 {
		t.Errorf("got %d accounts, want 1", len(accounts))
	}
}

func TestAccountUseCase_Deposit(t *testing.T) {
	ctx := context.Background()

	t.Run("credits the account and appends a single credit record", func(t *testing.T) {
		store := newFakeStore(testAccount("acc-1", "10001111", 1000))
		idGen := &seqIDGen{}

		uc := usecase.NewAccountUseCase(store, store, ledgerAdapter{store}, idGen, nil, passRetrier{})

		credit, err := uc.Deposit(ctx, usecase.DepositInput{
			AccountID:   "acc-1",
			Amount:      decimal.RequireFromString("250.50"),
			Description: "Initial funding",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !store.balanceOf("acc-1").Equal(decimal.RequireFromString("1250.50")) {
			t.Errorf("balance = %s, want 1250.50", store.balanceOf("acc-1"))
		}

		if credit.Type != domain.TypeCredit {
			t.Errorf("record type = %s, want credit", credit.Type)
		}
		if credit.FromAccount != "" || credit.ToAccount != "10001111" {
			t.Errorf("record accounts = %q -> %q, want only toAccount set", credit.FromAccount, credit.ToAccount)
		}
		if store.ledgerLen() != 1 {
			t.Errorf("ledger has %d records, want 1", store.ledgerLen())
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		store := newFakeStore()
		uc := usecase.NewAccountUseCase(store, store, ledgerAdapter{store}, &seqIDGen{}, nil, passRetrier{})

		_, err := uc.Deposit(ctx, usecase.DepositInput{
			AccountID:   "acc-missing",
			Amount:      decimal.NewFromInt(10),
			Description: "x",
		})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		store := newFakeStore(testAccount("acc-1", "10001111", 1000))
		uc := usecase.NewAccountUseCase(store, store, ledgerAdapter{store}, &seqIDGen{}, nil, passRetrier{})

		_, err := uc.Deposit(ctx, usecase.DepositInput{
			AccountID:   "acc-1",
			Amount:      decimal.Zero,
			Description: "x",
		})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}

		if store.ledgerLen() != 0 {
			t.Error("ledger must stay empty")
		}
	})
}
