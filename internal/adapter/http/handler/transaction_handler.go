package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openbanklab/bankd/internal/adapter/http/dto"
	"github.com/openbanklab/bankd/internal/domain"
	"github.com/openbanklab/bankd/internal/usecase"
)

// TransferService defines the behavior needed by TransactionHandler for
// moving funds.
type TransferService interface {
	Transfer(ctx context.Context, input domain.TransferRequest) (*domain.Transaction, error)
}

// LedgerService defines the behavior needed by TransactionHandler for
// reading the ledger.
type LedgerService interface {
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
	ListTransactionsByUser(ctx context.Context, input usecase.ListTransactionsByUserInput) ([]*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transferSvc TransferService
	ledgerSvc   LedgerService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transferSvc TransferService, ledgerSvc LedgerService) *TransactionHandler {
	return &TransactionHandler{transferSvc: transferSvc, ledgerSvc: ledgerSvc}
}

// Create moves funds between two accounts and returns the sender's ledger
// record.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.transferSvc.Transfer(r.Context(), req.ToDomain())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// List lists ledger records, newest first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	records, err := h.ledgerSvc.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(records))
}

// ListByUser lists ledger records where the user's account appears on either
// side.
func (h *TransactionHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID")
		return
	}

	limit, offset := parsePagination(r)

	records, err := h.ledgerSvc.ListTransactionsByUser(r.Context(), usecase.ListTransactionsByUserInput{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(records))
}

// Get retrieves a single ledger record by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID")
		return
	}

	record, err := h.ledgerSvc.GetTransaction(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(record))
}
