package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/openbanklab/bankd/internal/adapter/http/dto"
	"github.com/openbanklab/bankd/internal/domain"
	"github.com/openbanklab/bankd/internal/usecase"
)

type transferServiceStub struct {
	transferFn func(ctx context.Context, input domain.TransferRequest) (*domain.Transaction, error)
}

func (s *transferServiceStub) Transfer(ctx context.Context, input domain.TransferRequest) (*domain.Transaction, error) {
	return s.transferFn(ctx, input)
}

type ledgerServiceStub struct {
	listFn       func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
	listByUserFn func(ctx context.Context, input usecase.ListTransactionsByUserInput) ([]*domain.Transaction, error)
	getFn        func(ctx context.Context, id string) (*domain.Transaction, error)
}

func (s *ledgerServiceStub) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
	return s.listFn(ctx, input)
}

func (s *ledgerServiceStub) ListTransactionsByUser(ctx context.Context, input usecase.ListTransactionsByUserInput) ([]*domain.Transaction, error) {
	return s.listByUserFn(ctx, input)
}

func (s *ledgerServiceStub) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.getFn(ctx, id)
}

// withChiURLParam attaches a chi route parameter to a request so handlers can
// be exercised without a full router.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func debitRecord() *domain.Transaction {
	return &domain.Transaction{
		ID:          "tx-1",
		TransferID:  "tf-1",
		Amount:      decimal.RequireFromString("150.25"),
		Type:        domain.TypeDebit,
		Description: "rent",
		FromAccount: "10001234",
		ToAccount:   "10005678",
		Timestamp:   time.Now().UTC(),
		Status:      domain.StatusCompleted,
	}
}

func TestTransactionHandler_Create_Success(t *testing.T) {
	var captured domain.TransferRequest

	handler := NewTransactionHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input domain.TransferRequest) (*domain.Transaction, error) {
			captured = input
			return debitRecord(), nil
		},
	}, nil)

	body, _ := json.Marshal(dto.CreateTransactionRequest{
		SenderID:    "u-1",
		ReceiverID:  "u-2",
		Amount:      decimal.RequireFromString("150.25"),
		Description: "rent",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	if captured.SenderID != "u-1" || captured.ReceiverID != "u-2" {
		t.Fatalf("unexpected input: %+v", captured)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "tx-1" || resp.Type != "debit" || resp.TransferID != "tf-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTransactionHandler_Create_InvalidBody(t *testing.T) {
	handler := NewTransactionHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input domain.TransferRequest) (*domain.Transaction, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHandler_Create_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"sender not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusBadRequest},
		{"same account", domain.ErrSameAccount, http.StatusBadRequest},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"precision", domain.ErrAmountPrecision, http.StatusBadRequest},
		{"empty description", domain.ErrEmptyDescription, http.StatusBadRequest},
		{"persistence", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransactionHandler(&transferServiceStub{
				transferFn: func(ctx context.Context, input domain.TransferRequest) (*domain.Transaction, error) {
					return nil, tt.err
				},
			}, nil)

			body, _ := json.Marshal(dto.CreateTransactionRequest{
				SenderID:   "u-1",
				ReceiverID: "u-2",
				Amount:     decimal.NewFromInt(10),
			})

			req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}

			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Message == "" {
				t.Fatal("expected non-empty error message")
			}
		})
	}
}

func TestTransactionHandler_List(t *testing.T) {
	var captured usecase.ListTransactionsInput

	handler := NewTransactionHandler(nil, &ledgerServiceStub{
		listFn: func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
			captured = input
			return []*domain.Transaction{debitRecord()}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/transactions?limit=10&offset=5", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Limit != 10 || captured.Offset != 5 {
		t.Fatalf("unexpected pagination: %+v", captured)
	}

	var resp []*dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "tx-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTransactionHandler_ListByUser(t *testing.T) {
	var captured usecase.ListTransactionsByUserInput

	handler := NewTransactionHandler(nil, &ledgerServiceStub{
		listByUserFn: func(ctx context.Context, input usecase.ListTransactionsByUserInput) ([]*domain.Transaction, error) {
			captured = input
			return []*domain.Transaction{debitRecord()}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/transactions/user/u-1", nil)
	req = withChiURLParam(req, "userId", "u-1")
	rec := httptest.NewRecorder()

	handler.ListByUser(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.UserID != "u-1" {
		t.Fatalf("unexpected input: %+v", captured)
	}
}

func TestTransactionHandler_ListByUser_UnknownUser(t *testing.T) {
	handler := NewTransactionHandler(nil, &ledgerServiceStub{
		listByUserFn: func(ctx context.Context, input usecase.ListTransactionsByUserInput) ([]*domain.Transaction, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/transactions/user/ghost", nil)
	req = withChiURLParam(req, "userId", "ghost")
	rec := httptest.NewRecorder()

	handler.ListByUser(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransactionHandler_Get_NotFound(t *testing.T) {
	handler := NewTransactionHandler(nil, &ledgerServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transaction, error) {
			return nil, domain.ErrTransactionNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/transactions/missing", nil)
	req = withChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
