package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the perspective of a ledger record relative to the
// account it describes: the sender sees a debit, the receiver a credit.
type TransactionType string

const (
	TypeDebit  TransactionType = "debit"
	TypeCredit TransactionType = "credit"
)

// TransactionStatus is the lifecycle state of a ledger record. Records created
// by a committed transfer are always completed; pending and failed exist for
// flows outside the transfer critical path.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is a single immutable ledger record. A completed transfer
// produces a debit/credit pair sharing the same TransferID; a deposit produces
// a single credit record with only ToAccount set.
type Transaction struct {
	ID          string
	TransferID  string
	Amount      decimal.Decimal
	Type        TransactionType
	Description string
	FromAccount string
	ToAccount   string
	Timestamp   time.Time
	Status      TransactionStatus
}
