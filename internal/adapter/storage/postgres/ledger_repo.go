package postgres

import (
	"context"
	"fmt"

	"merch-shop/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerRepository over the append-only
// transfers table.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Record appends a completed transfer within a database transaction.
func (r *LedgerRepo) Record(ctx context.Context, tx pgx.Tx, t *domain.Transfer) error {
	query := `INSERT INTO transfers (id, from_account_id, to_account_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.FromAccountID, t.ToAccountID, t.Amount, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// HistoryFor returns both directions of an account's transfer history with
// counterparty usernames resolved at query time. The LEFT JOIN keeps ledger
// rows visible even if a counterparty row ever disappears; such entries
// render with an empty username.
func (r *LedgerRepo) HistoryFor(ctx context.Context, accountID uuid.UUID) (*domain.CoinHistory, error) {
	received, err := r.historyQuery(ctx,
		`SELECT COALESCE(a.username, ''), t.amount
			FROM transfers t
			LEFT JOIN accounts a ON a.id = t.from_account_id
			WHERE t.to_account_id = $1
			ORDER BY t.created_at`, accountID)
	if err != nil {
		return nil, fmt.Errorf("received history: %w", err)
	}

	sent, err := r.historyQuery(ctx,
		`SELECT COALESCE(a.username, ''), t.amount
			FROM transfers t
			LEFT JOIN accounts a ON a.id = t.to_account_id
			WHERE t.from_account_id = $1
			ORDER BY t.created_at`, accountID)
	if err != nil {
		return nil, fmt.Errorf("sent history: %w", err)
	}

	return &domain.CoinHistory{Received: received, Sent: sent}, nil
}

func (r *LedgerRepo) historyQuery(ctx context.Context, query string, accountID uuid.UUID) ([]domain.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.Counterparty, &e.Amount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
