package postgres

import (
	cryptorand "crypto/rand"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates lexicographically sortable unique IDs.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	var seed [32]byte
	_, _ = cryptorand.Read(seed[:])

	return &ULIDGenerator{
		entropy: ulid.Monotonic(rand.NewChaCha8(seed), 0),
	}
}

// Generate returns a new ULID string.
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

// AccountNumberGenerator generates 8 digit account numbers with a fixed
// "1000" prefix. Uniqueness is enforced by the database; callers retry on
// collision.
type AccountNumberGenerator struct{}

// NewAccountNumberGenerator creates a new AccountNumberGenerator.
func NewAccountNumberGenerator() *AccountNumberGenerator {
	return &AccountNumberGenerator{}
}

// Generate returns a new candidate account number.
func (g *AccountNumberGenerator) Generate() string {
	return fmt.Sprintf("1000%04d", 1000+rand.IntN(9000))
}
