package service

import (
	"context"
	"fmt"

	"merch-shop/internal/core/ports"
	"merch-shop/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InfoServiceImpl implements ports.InfoService.
type InfoServiceImpl struct {
	accountRepo   ports.AccountRepository
	inventoryRepo ports.InventoryRepository
	ledgerRepo    ports.LedgerRepository
	log           zerolog.Logger
}

// NewInfoService creates a new info service.
func NewInfoService(
	accountRepo ports.AccountRepository,
	inventoryRepo ports.InventoryRepository,
	ledgerRepo ports.LedgerRepository,
	log zerolog.Logger,
) *InfoServiceImpl {
	return &InfoServiceImpl{
		accountRepo:   accountRepo,
		inventoryRepo: inventoryRepo,
		ledgerRepo:    ledgerRepo,
		log:           log,
	}
}

// GetInfo assembles the account's balance, owned items and transfer
// history. Each part is read independently; the report is a snapshot,
// not a transactional view.
func (s *InfoServiceImpl) GetInfo(ctx context.Context, accountID uuid.UUID) (*ports.AccountInfo, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("fetching account: %w", err))
	}
	if account == nil {
		// A valid token for a missing account means the account was
		// removed after the token was issued.
		return nil, apperror.ErrInvalidToken()
	}

	inventory, err := s.inventoryRepo.OwnedBy(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("fetching inventory: %w", err))
	}

	history, err := s.ledgerRepo.HistoryFor(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("fetching history: %w", err))
	}

	return &ports.AccountInfo{
		Coins:     account.Balance,
		Inventory: inventory,
		History:   history,
	}, nil
}
