package postgres

import (
	"context"
	"errors"
	"fmt"

	"merch-shop/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CatalogRepo implements ports.CatalogRepository.
type CatalogRepo struct {
	pool Pool
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(pool Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// FindItemByName fetches a catalog item by its unique name.
func (r *CatalogRepo) FindItemByName(ctx context.Context, name string) (*domain.Item, error) {
	query := `SELECT id, name, price FROM items WHERE name = $1`

	item := &domain.Item{}
	err := r.pool.QueryRow(ctx, query, name).Scan(&item.ID, &item.Name, &item.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by name: %w", err)
	}
	return item, nil
}

// ListItems returns the full catalog ordered by name.
func (r *CatalogRepo) ListItems(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT id, name, price FROM items ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Seed inserts builtin items, skipping names that already exist. ON CONFLICT
// on the unique name keeps the operation idempotent across restarts.
func (r *CatalogRepo) Seed(ctx context.Context, items []domain.SeedItem) error {
	query := `INSERT INTO items (id, name, price) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING`

	for _, item := range items {
		if _, err := r.pool.Exec(ctx, query, uuid.New(), item.Name, item.Price); err != nil {
			return fmt.Errorf("seed item %q: %w", item.Name, err)
		}
	}
	return nil
}
