package ports

import (
	"context"
	"time"

	"merch-shop/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

// HashService handles credential hashing (Argon2id). Opaque to the core.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(accountID uuid.UUID, username string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	AccountID uuid.UUID
	Username  string
}

// CatalogCache caches the rendered merchandise listing (read-mostly data).
type CatalogCache interface {
	Get(ctx context.Context) ([]byte, error) // Returns cached listing JSON or nil
	Set(ctx context.Context, value []byte, ttl time.Duration) error
}

// --- Service Ports (Business Logic) ---

// AuthService defines registration and login.
type AuthService interface {
	// Register creates an account with the starting balance and returns a token.
	Register(ctx context.Context, username, password string) (string, time.Time, error)
	// Login validates credentials and returns a token. Bad credentials are
	// rejected; login never creates accounts.
	Login(ctx context.Context, username, password string) (string, time.Time, error)
}

// CoinService is the transaction engine: every balance-affecting operation
// goes through it as one atomic unit.
type CoinService interface {
	Transfer(ctx context.Context, fromAccountID uuid.UUID, toUsername string, amount int64) (*domain.Transfer, error)
	Purchase(ctx context.Context, accountID uuid.UUID, itemName string) (*domain.InventoryEntry, error)
}

// AccountInfo aggregates everything GET /api/info reports.
type AccountInfo struct {
	Coins     int64
	Inventory []domain.OwnedItem
	History   *domain.CoinHistory
}

// InfoService assembles the per-account report.
type InfoService interface {
	GetInfo(ctx context.Context, accountID uuid.UUID) (*AccountInfo, error)
}

// CatalogService exposes the merchandise listing and startup seeding.
type CatalogService interface {
	ListMerchandise(ctx context.Context) ([]domain.Item, error)
	SeedBuiltin(ctx context.Context) error
}
