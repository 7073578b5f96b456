package postgres

import (
	"context"
	"fmt"

	"merch-shop/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InventoryRepo implements ports.InventoryRepository. One row per owned unit.
type InventoryRepo struct {
	pool Pool
}

// NewInventoryRepo creates a new InventoryRepo.
func NewInventoryRepo(pool Pool) *InventoryRepo {
	return &InventoryRepo{pool: pool}
}

// Add appends one owned unit within a database transaction.
func (r *InventoryRepo) Add(ctx context.Context, tx pgx.Tx, e *domain.InventoryEntry) error {
	query := `INSERT INTO inventory (id, account_id, item_id, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := tx.Exec(ctx, query, e.ID, e.AccountID, e.ItemID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert inventory entry: %w", err)
	}
	return nil
}

// OwnedBy aggregates an account's unit rows into name/quantity pairs.
func (r *InventoryRepo) OwnedBy(ctx context.Context, accountID uuid.UUID) ([]domain.OwnedItem, error) {
	query := `SELECT i.name, COUNT(*)
		FROM inventory inv
		JOIN items i ON i.id = inv.item_id
		WHERE inv.account_id = $1
		GROUP BY i.name
		ORDER BY i.name`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("aggregate inventory: %w", err)
	}
	defer rows.Close()

	owned := []domain.OwnedItem{}
	for rows.Next() {
		var o domain.OwnedItem
		if err := rows.Scan(&o.Name, &o.Quantity); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		owned = append(owned, o)
	}
	return owned, rows.Err()
}
