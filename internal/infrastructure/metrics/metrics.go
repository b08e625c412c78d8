// Package metrics registers the Prometheus instruments for the transfer core.
// Instruments are package-level so any layer can record without plumbing a
// registry through constructors; registration happens once at init.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/openbanklab/bankd/internal/domain"
)

var (
	TransfersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bankd_transfers_created_total",
		Help: "Total number of completed transfers",
	})

	TransferErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankd_transfer_errors_total",
			Help: "Total number of failed transfers by reason",
		},
		[]string{"reason"},
	)

	TransferAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bankd_transfer_amount",
		Help:    "Transfer amounts",
		Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
	})

	TransferDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bankd_transfer_duration_seconds",
		Help:    "Duration of transfer operations",
		Buckets: prometheus.DefBuckets,
	})

	AccountsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bankd_accounts_created_total",
		Help: "Total number of accounts created",
	})

	DepositsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bankd_deposits_created_total",
		Help: "Total number of account funding deposits",
	})
)

// ObserveTransfer records the outcome of a single transfer attempt.
func ObserveTransfer(amount decimal.Decimal, seconds float64, err error) {
	if err != nil {
		TransferErrors.WithLabelValues(ErrorReason(err)).Inc()
		return
	}

	TransfersCreated.Inc()
	TransferAmount.Observe(amount.InexactFloat64())
	TransferDuration.Observe(seconds)
}

// ErrorReason maps a transfer error to a low-cardinality metric label.
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountPrecision),
		errors.Is(err, domain.ErrAmountTooLarge):
		return "invalid_amount"
	case errors.Is(err, domain.ErrEmptyDescription):
		return "invalid_description"
	default:
		return "persistence"
	}
}
