package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"merch-shop/internal/core/domain"
	"merch-shop/internal/core/ports"
	"merch-shop/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CoinServiceImpl implements ports.CoinService. It is the single choke
// point for balance changes: every transfer and purchase runs as one
// database transaction, and the conditional balance update in the
// account repository guarantees no balance ever goes negative.
type CoinServiceImpl struct {
	accountRepo   ports.AccountRepository
	ledgerRepo    ports.LedgerRepository
	catalogRepo   ports.CatalogRepository
	inventoryRepo ports.InventoryRepository
	transactor    ports.DBTransactor
	log           zerolog.Logger
}

// NewCoinService creates a new coin service.
func NewCoinService(
	accountRepo ports.AccountRepository,
	ledgerRepo ports.LedgerRepository,
	catalogRepo ports.CatalogRepository,
	inventoryRepo ports.InventoryRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *CoinServiceImpl {
	return &CoinServiceImpl{
		accountRepo:   accountRepo,
		ledgerRepo:    ledgerRepo,
		catalogRepo:   catalogRepo,
		inventoryRepo: inventoryRepo,
		transactor:    transactor,
		log:           log,
	}
}

// Transfer moves coins from one account to another and records the
// movement in the ledger, all inside a single transaction. Balance rows
// are adjusted in ascending account-ID order so two concurrent transfers
// between the same pair of accounts cannot deadlock.
func (s *CoinServiceImpl) Transfer(ctx context.Context, fromAccountID uuid.UUID, toUsername string, amount int64) (*domain.Transfer, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	recipient, err := s.accountRepo.GetByUsername(ctx, toUsername)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("fetching recipient: %w", err))
	}
	if recipient == nil {
		return nil, apperror.ErrRecipientNotFound()
	}
	if recipient.ID == fromAccountID {
		return nil, apperror.ErrInvalidRecipient()
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	type adjustment struct {
		accountID uuid.UUID
		delta     int64
	}
	adjustments := []adjustment{
		{accountID: fromAccountID, delta: -amount},
		{accountID: recipient.ID, delta: amount},
	}
	if bytes.Compare(adjustments[1].accountID[:], adjustments[0].accountID[:]) < 0 {
		adjustments[0], adjustments[1] = adjustments[1], adjustments[0]
	}

	for _, adj := range adjustments {
		if _, err := s.accountRepo.AdjustBalance(ctx, tx, adj.accountID, adj.delta); err != nil {
			if errors.Is(err, domain.ErrInsufficientBalance) {
				return nil, apperror.ErrInsufficientFunds()
			}
			return nil, apperror.ErrDatabaseError(fmt.Errorf("adjusting balance: %w", err))
		}
	}

	transfer := &domain.Transfer{
		ID:            uuid.New(),
		FromAccountID: fromAccountID,
		ToAccountID:   recipient.ID,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.ledgerRepo.Record(ctx, tx, transfer); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("recording transfer: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("committing transfer: %w", err))
	}

	s.log.Info().
		Str("transfer_id", transfer.ID.String()).
		Str("from_account_id", fromAccountID.String()).
		Str("to_username", toUsername).
		Int64("amount", amount).
		Msg("transfer completed")

	return transfer, nil
}

// Purchase debits the item price from the account and records the item
// in the account's inventory, inside a single transaction.
func (s *CoinServiceImpl) Purchase(ctx context.Context, accountID uuid.UUID, itemName string) (*domain.InventoryEntry, error) {
	item, err := s.catalogRepo.FindItemByName(ctx, itemName)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("fetching item: %w", err))
	}
	if item == nil {
		return nil, apperror.ErrItemNotFound()
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := s.accountRepo.AdjustBalance(ctx, tx, accountID, -item.Price); err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return nil, apperror.ErrInsufficientFunds()
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("debiting purchase: %w", err))
	}

	entry := &domain.InventoryEntry{
		ID:        uuid.New(),
		AccountID: accountID,
		ItemID:    item.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.inventoryRepo.Add(ctx, tx, entry); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("recording inventory: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("committing purchase: %w", err))
	}

	s.log.Info().
		Str("account_id", accountID.String()).
		Str("item", item.Name).
		Int64("price", item.Price).
		Msg("purchase completed")

	return entry, nil
}
