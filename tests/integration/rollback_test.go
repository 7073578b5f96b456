package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"merch-shop/internal/core/domain"
	"merch-shop/internal/core/ports"
	"merch-shop/internal/service"
	"merch-shop/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingLedgerRepo fails every Record call, simulating a storage fault
// that hits after the balances have already been adjusted.
type failingLedgerRepo struct {
	ports.LedgerRepository
}

func (r *failingLedgerRepo) Record(ctx context.Context, tx pgx.Tx, transfer *domain.Transfer) error {
	return errors.New("ledger unavailable")
}

// failingInventoryRepo fails every Add call, simulating a storage fault
// after the purchase debit.
type failingInventoryRepo struct {
	ports.InventoryRepository
}

func (r *failingInventoryRepo) Add(ctx context.Context, tx pgx.Tx, entry *domain.InventoryEntry) error {
	return errors.New("inventory unavailable")
}

func newTestAccount(t *testing.T, repo *inMemoryAccountRepo, username string) *domain.Account {
	t.Helper()
	account := &domain.Account{
		ID:        uuid.New(),
		Username:  username,
		Balance:   domain.StartingBalance,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), account))
	return account
}

func TestTransfer_RollsBackDebitOnLedgerFailure(t *testing.T) {
	ctx := context.Background()

	accountRepo := newInMemoryAccountRepo()
	ledgerRepo := newInMemoryLedgerRepo(accountRepo)
	catalogRepo := newInMemoryCatalogRepo()
	inventoryRepo := newInMemoryInventoryRepo(catalogRepo)
	transactor := newInMemoryTransactor()

	sender := newTestAccount(t, accountRepo, "ledger_fault_sender")
	receiver := newTestAccount(t, accountRepo, "ledger_fault_receiver")

	coinSvc := service.NewCoinService(
		accountRepo, &failingLedgerRepo{LedgerRepository: ledgerRepo},
		catalogRepo, inventoryRepo, transactor, zerolog.Nop(),
	)

	transfer, err := coinSvc.Transfer(ctx, sender.ID, receiver.Username, 100)
	assert.Nil(t, transfer)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SYS_001", appErr.Code)

	// The whole transaction rolled back: neither side's balance moved.
	got, err := accountRepo.GetByID(ctx, sender.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Balance, "debit must be rolled back when the ledger write fails")

	got, err = accountRepo.GetByID(ctx, receiver.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Balance, "credit must be rolled back when the ledger write fails")

	history, err := ledgerRepo.HistoryFor(ctx, sender.ID)
	require.NoError(t, err)
	assert.Empty(t, history.Sent, "no ledger entry should survive the rollback")
}

func TestPurchase_RollsBackDebitOnInventoryFailure(t *testing.T) {
	ctx := context.Background()

	accountRepo := newInMemoryAccountRepo()
	ledgerRepo := newInMemoryLedgerRepo(accountRepo)
	catalogRepo := newInMemoryCatalogRepo()
	inventoryRepo := newInMemoryInventoryRepo(catalogRepo)
	transactor := newInMemoryTransactor()

	require.NoError(t, catalogRepo.Seed(ctx, domain.BuiltinItems()))
	buyer := newTestAccount(t, accountRepo, "inventory_fault_buyer")

	coinSvc := service.NewCoinService(
		accountRepo, ledgerRepo, catalogRepo,
		&failingInventoryRepo{InventoryRepository: inventoryRepo},
		transactor, zerolog.Nop(),
	)

	entry, err := coinSvc.Purchase(ctx, buyer.ID, "cup")
	assert.Nil(t, entry)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SYS_001", appErr.Code)

	got, err := accountRepo.GetByID(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Balance, "debit must be rolled back when the inventory write fails")

	owned, err := inventoryRepo.OwnedBy(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, owned)
}
