package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	adaptershttp "github.com/openbanklab/bankd/internal/adapter/http"
	"github.com/openbanklab/bankd/internal/adapter/http/handler"
	"github.com/openbanklab/bankd/internal/adapter/repository/postgres"
	redisrepo "github.com/openbanklab/bankd/internal/adapter/repository/redis"
	infraredis "github.com/openbanklab/bankd/internal/infrastructure/redis"
	"github.com/openbanklab/bankd/internal/usecase"
	"github.com/openbanklab/bankd/tests/testutil"
)

type testStack struct {
	DB         *testutil.TestDB
	Router     http.Handler
	TransferUC *usecase.TransferUseCase
	AccountUC  *usecase.AccountUseCase
	LedgerUC   *usecase.LedgerUseCase
}

// testKey returns a unique idempotency key for a test run.
func testKey() string {
	return "it-" + testutil.GenerateID()
}

// newTestStack wires the full application against the test database and a
// real redis instance.
func newTestStack(t *testing.T, ctx context.Context) *testStack {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	ledgerRepo := postgres.NewTransactionRepository(pool)
	idGen := postgres.NewULIDGenerator()
	numberGen := postgres.NewAccountNumberGenerator()
	retrier := postgres.NewRetrier(zerolog.Nop(), 3, 100*time.Millisecond)

	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, ledgerRepo, idGen, retrier)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, ledgerRepo, idGen, numberGen, retrier)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, accountRepo)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = redisClient.Close() })

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(transferUC, ledgerUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   redisrepo.NewIdempotencyStore(redisClient),
		IdempotencyTTL:     time.Hour,
		Logger:             zerolog.Nop(),
	})

	return &testStack{
		DB:         testDB,
		Router:     router,
		TransferUC: transferUC,
		AccountUC:  accountUC,
		LedgerUC:   ledgerUC,
	}
}
