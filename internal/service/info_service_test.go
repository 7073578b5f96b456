package service

import (
	"context"
	"errors"
	"testing"

	"merch-shop/internal/core/domain"
	"merch-shop/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupInfoService(t *testing.T) (
	*InfoServiceImpl,
	*mocks.MockAccountRepository,
	*mocks.MockInventoryRepository,
	*mocks.MockLedgerRepository,
	*gomock.Controller,
) {
	ctrl := gomock.NewController(t)
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	inventoryRepo := mocks.NewMockInventoryRepository(ctrl)
	ledgerRepo := mocks.NewMockLedgerRepository(ctrl)

	svc := NewInfoService(accountRepo, inventoryRepo, ledgerRepo, zerolog.Nop())
	return svc, accountRepo, inventoryRepo, ledgerRepo, ctrl
}

func TestInfoService_GetInfo_Success(t *testing.T) {
	svc, accountRepo, inventoryRepo, ledgerRepo, ctrl := setupInfoService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()

	accountRepo.EXPECT().GetByID(ctx, accountID).Return(&domain.Account{
		ID:       accountID,
		Username: "alice",
		Balance:  880,
	}, nil)
	inventoryRepo.EXPECT().OwnedBy(ctx, accountID).Return([]domain.OwnedItem{
		{Name: "cup", Quantity: 2},
		{Name: "pen", Quantity: 1},
	}, nil)
	ledgerRepo.EXPECT().HistoryFor(ctx, accountID).Return(&domain.CoinHistory{
		Received: []domain.HistoryEntry{{Counterparty: "bob", Amount: 50}},
		Sent:     []domain.HistoryEntry{{Counterparty: "carol", Amount: 100}},
	}, nil)

	info, err := svc.GetInfo(ctx, accountID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, int64(880), info.Coins)
	assert.Len(t, info.Inventory, 2)
	assert.Len(t, info.History.Received, 1)
	assert.Len(t, info.History.Sent, 1)
}

func TestInfoService_GetInfo_AccountMissing(t *testing.T) {
	svc, accountRepo, _, _, ctrl := setupInfoService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	accountRepo.EXPECT().GetByID(ctx, accountID).Return(nil, nil)

	info, err := svc.GetInfo(ctx, accountID)
	assert.Nil(t, info)
	assertAppError(t, err, "AUTH_003")
}

func TestInfoService_GetInfo_HistoryError(t *testing.T) {
	svc, accountRepo, inventoryRepo, ledgerRepo, ctrl := setupInfoService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()

	accountRepo.EXPECT().GetByID(ctx, accountID).Return(&domain.Account{
		ID:      accountID,
		Balance: 1000,
	}, nil)
	inventoryRepo.EXPECT().OwnedBy(ctx, accountID).Return(nil, nil)
	ledgerRepo.EXPECT().HistoryFor(ctx, accountID).Return(nil, errors.New("query failed"))

	info, err := svc.GetInfo(ctx, accountID)
	assert.Nil(t, info)
	assertAppError(t, err, "SYS_001")
}
