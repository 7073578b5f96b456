package postgres

import (
	"context"
	"testing"

	"merch-shop/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepo_FindItemByName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)
	itemID := uuid.New()

	mock.ExpectQuery("SELECT id, name, price FROM items WHERE name").
		WithArgs("cup").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "price"}).
			AddRow(itemID, "cup", int64(20)))

	item, err := repo.FindItemByName(context.Background(), "cup")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, itemID, item.ID)
	assert.Equal(t, int64(20), item.Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_FindItemByName_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectQuery("SELECT id, name, price FROM items WHERE name").
		WithArgs("yacht").
		WillReturnError(pgx.ErrNoRows)

	item, err := repo.FindItemByName(context.Background(), "yacht")
	assert.NoError(t, err)
	assert.Nil(t, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_ListItems(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectQuery("SELECT id, name, price FROM items ORDER BY name").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "price"}).
			AddRow(uuid.New(), "book", int64(50)).
			AddRow(uuid.New(), "cup", int64(20)))

	items, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "book", items[0].Name)
	assert.Equal(t, "cup", items[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_Seed_Idempotent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)
	seed := []domain.SeedItem{
		{Name: "cup", Price: 20},
		{Name: "pen", Price: 10},
	}

	// Second run inserts nothing; ON CONFLICT swallows the duplicates.
	mock.ExpectExec("INSERT INTO items .+ ON CONFLICT \\(name\\) DO NOTHING").
		WithArgs(pgxmock.AnyArg(), "cup", int64(20)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO items .+ ON CONFLICT \\(name\\) DO NOTHING").
		WithArgs(pgxmock.AnyArg(), "pen", int64(10)).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err = repo.Seed(context.Background(), seed)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
