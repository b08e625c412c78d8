package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbanklab/bankd/internal/domain"
	"github.com/openbanklab/bankd/internal/usecase"
)

// TransactionRepository implements usecase.LedgerRepository over pgx. Ledger
// rows are append only; nothing in this repository updates or deletes them.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const createTransactionSQL = `
	INSERT INTO transactions (id, transfer_id, amount, type, description, from_account, to_account, timestamp, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Create inserts a ledger record inside a transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createTransactionSQL,
		record.ID,
		nullableText(record.TransferID),
		decimalToNumeric(record.Amount),
		string(record.Type),
		record.Description,
		nullableText(record.FromAccount),
		nullableText(record.ToAccount),
		timeToPgTimestamptz(record.Timestamp),
		string(record.Status),
	)

	return err
}

const getTransactionSQL = `
	SELECT id, transfer_id, amount, type, description, from_account, to_account, timestamp, status
	FROM transactions
	WHERE id = $1`

// GetByID retrieves a single ledger record by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	record, err := scanTransaction(r.pool.QueryRow(ctx, getTransactionSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return record, nil
}

const listTransactionsSQL = `
	SELECT id, transfer_id, amount, type, description, from_account, to_account, timestamp, status
	FROM transactions
	ORDER BY timestamp DESC, id DESC
	LIMIT $1 OFFSET $2`

// List lists ledger records with pagination, newest first.
func (r *TransactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, listTransactionsSQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows, limit)
}

const listTransactionsByAccountSQL = `
	SELECT id, transfer_id, amount, type, description, from_account, to_account, timestamp, status
	FROM transactions
	WHERE from_account = $1 OR to_account = $1
	ORDER BY timestamp DESC, id DESC
	LIMIT $2 OFFSET $3`

// ListByAccount lists ledger records where the account appears on either side.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountNumber string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, listTransactionsByAccountSQL, accountNumber, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows, limit)
}

func collectTransactions(rows pgx.Rows, limit int) ([]*domain.Transaction, error) {
	records := make([]*domain.Transaction, 0, limit)
	for rows.Next() {
		record, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		record      domain.Transaction
		transferID  pgtype.Text
		amount      pgtype.Numeric
		txType      string
		fromAccount pgtype.Text
		toAccount   pgtype.Text
		timestamp   pgtype.Timestamptz
		status      string
	)

	err := row.Scan(
		&record.ID,
		&transferID,
		&amount,
		&txType,
		&record.Description,
		&fromAccount,
		&toAccount,
		&timestamp,
		&status,
	)
	if err != nil {
		return nil, err
	}

	record.TransferID = transferID.String
	record.Amount = numericToDecimal(amount)
	record.Type = domain.TransactionType(txType)
	record.FromAccount = fromAccount.String
	record.ToAccount = toAccount.String
	record.Timestamp = timestamp.Time
	record.Status = domain.TransactionStatus(status)

	return &record, nil
}

func nullableText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
