package ports

import (
	"context"

	"merch-shop/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks

// AccountRepository defines persistence operations for accounts.
// Methods accepting pgx.Tx run inside a transaction block so balance
// mutations commit or roll back with the rest of the atomic unit.
type AccountRepository interface {
	// Create inserts a new account. Returns domain.ErrUsernameTaken when the
	// unique username constraint rejects the insert; uniqueness is enforced
	// by the storage layer, never by a check-then-insert.
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	// AdjustBalance applies delta as a single conditional update that refuses
	// to drive the balance negative, returning the new balance. Returns
	// domain.ErrInsufficientBalance when the condition matches no row.
	AdjustBalance(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, delta int64) (int64, error)
}

// LedgerRepository defines persistence for the append-only transfer ledger.
type LedgerRepository interface {
	// Record appends a completed transfer within a database transaction.
	// Pure append; validation happens in the coin service before recording.
	Record(ctx context.Context, tx pgx.Tx, transfer *domain.Transfer) error
	// HistoryFor resolves both directions of an account's history, joining
	// counterparty usernames at query time.
	HistoryFor(ctx context.Context, accountID uuid.UUID) (*domain.CoinHistory, error)
}

// CatalogRepository defines persistence for the merchandise catalog.
type CatalogRepository interface {
	FindItemByName(ctx context.Context, name string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	// Seed inserts builtin items keyed by unique name, skipping ones that
	// already exist. Safe to run on every startup.
	Seed(ctx context.Context, items []domain.SeedItem) error
}

// InventoryRepository defines persistence for per-account item ownership.
type InventoryRepository interface {
	// Add appends one owned unit within a database transaction.
	Add(ctx context.Context, tx pgx.Tx, entry *domain.InventoryEntry) error
	// OwnedBy aggregates an account's entries into name/quantity pairs.
	OwnedBy(ctx context.Context, accountID uuid.UUID) ([]domain.OwnedItem, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
