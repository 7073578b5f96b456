package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"merch-shop/internal/core/domain"
	"merch-shop/internal/core/ports"
	"merch-shop/pkg/apperror"

	"github.com/rs/zerolog"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogServiceImpl implements ports.CatalogService.
type CatalogServiceImpl struct {
	catalogRepo ports.CatalogRepository
	cache       ports.CatalogCache
	log         zerolog.Logger
}

// NewCatalogService creates a new catalog service. cache may be nil,
// in which case every listing goes to the database.
func NewCatalogService(catalogRepo ports.CatalogRepository, cache ports.CatalogCache, log zerolog.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		catalogRepo: catalogRepo,
		cache:       cache,
		log:         log,
	}
}

// ListMerchandise returns the purchasable items, served from cache
// when possible. Cache failures degrade to a database read.
func (s *CatalogServiceImpl) ListMerchandise(ctx context.Context) ([]domain.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("catalog cache read failed")
		} else if cached != nil {
			var items []domain.Item
			jsonErr := json.Unmarshal(cached, &items)
			if jsonErr == nil {
				return items, nil
			}
			s.log.Warn().Err(jsonErr).Msg("catalog cache entry corrupt")
		}
	}

	items, err := s.catalogRepo.ListItems(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("listing items: %w", err))
	}

	if s.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(ctx, data, catalogCacheTTL); err != nil {
				s.log.Warn().Err(err).Msg("catalog cache write failed")
			}
		}
	}

	return items, nil
}

// SeedBuiltin inserts the built-in merchandise. Safe to run on every
// startup; existing items are left untouched.
func (s *CatalogServiceImpl) SeedBuiltin(ctx context.Context) error {
	seed := domain.BuiltinItems()
	if err := s.catalogRepo.Seed(ctx, seed); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}

	s.log.Info().Int("items", len(seed)).Msg("merchandise catalog seeded")
	return nil
}
