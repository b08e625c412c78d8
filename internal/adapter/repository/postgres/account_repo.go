package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/openbanklab/bankd/internal/domain"
	"github.com/openbanklab/bankd/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// AccountRepository implements usecase.AccountRepository over pgx.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const createAccountSQL = `
	INSERT INTO accounts (id, owner_name, email, account_number, balance, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Create creates a new account. Unique violations on the generated account
// number or the email surface as the matching domain error so the caller can
// regenerate or reject.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, createAccountSQL,
		account.ID,
		account.OwnerName,
		account.Email,
		account.AccountNumber,
		decimalToNumeric(account.Balance),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			switch pgErr.ConstraintName {
			case "accounts_email_key":
				return domain.ErrDuplicateEmail
			default:
				return domain.ErrDuplicateAccountNumber
			}
		}

		return err
	}

	return nil
}

const getAccountSQL = `
	SELECT id, owner_name, email, account_number, balance, created_at, updated_at
	FROM accounts
	WHERE id = $1`

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, getAccountSQL, id))
}

const getAccountsForUpdateSQL = `
	SELECT id, owner_name, email, account_number, balance, created_at, updated_at
	FROM accounts
	WHERE id = ANY($1)
	ORDER BY id
	FOR UPDATE`

// GetByIDsForUpdate retrieves accounts by ID with row locks, in sorted ID
// order. Callers lock in the same order everywhere, which prevents lock-order
// deadlocks between concurrent transfers.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, getAccountsForUpdateSQL, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

const updateBalanceSQL = `
	UPDATE accounts
	SET balance = $2, updated_at = $3
	WHERE id = $1`

// UpdateBalance sets the balance of an account inside a transaction.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, updateBalanceSQL, id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

const listAccountsSQL = `
	SELECT id, owner_name, email, account_number, balance, created_at, updated_at
	FROM accounts
	ORDER BY created_at DESC, id DESC
	LIMIT $1 OFFSET $2`

// List lists accounts with pagination, newest first.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, listAccountsSQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0, limit)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account   domain.Account
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.OwnerName,
		&account.Email,
		&account.AccountNumber,
		&balance,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.Balance = numericToDecimal(balance)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
