package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"merch-shop/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(username string) *domain.Account {
	return &domain.Account{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "$argon2id$hashed",
		Balance:      domain.StartingBalance,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func accountColumns() []string {
	return []string{"id", "username", "password_hash", "balance", "created_at"}
}

func accountRow(a *domain.Account) *pgxmock.Rows {
	return pgxmock.NewRows(accountColumns()).AddRow(
		a.ID, a.Username, a.PasswordHash, a.Balance, a.CreatedAt,
	)
}

func TestAccountRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount("alice")

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(a.ID, a.Username, a.PasswordHash, a.Balance, a.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_Create_DuplicateUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount("alice")

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(a.ID, a.Username, a.PasswordHash, a.Balance, a.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err = repo.Create(context.Background(), a)
	assert.True(t, errors.Is(err, domain.ErrUsernameTaken))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	a := newTestAccount("alice")

	mock.ExpectQuery("SELECT .+ FROM accounts WHERE id").
		WithArgs(a.ID).
		WillReturnRows(accountRow(a))

	result, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, a.Username, result.Username)
	assert.Equal(t, a.Balance, result.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_GetByUsername_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM accounts WHERE username").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetByUsername(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_AdjustBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	accountID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE accounts SET balance = balance \+ \$1`).
		WithArgs(int64(-100), accountID).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(900)))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	balance, err := repo.AdjustBalance(context.Background(), tx, accountID, -100)
	require.NoError(t, err)
	assert.Equal(t, int64(900), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_AdjustBalance_Insufficient(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAccountRepo(mock)
	accountID := uuid.New()

	// The conditional WHERE clause matches no row when the adjustment would
	// drive the balance negative.
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE accounts SET balance = balance \+ \$1`).
		WithArgs(int64(-5000), accountID).
		WillReturnError(pgx.ErrNoRows)

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	balance, err := repo.AdjustBalance(context.Background(), tx, accountID, -5000)
	assert.True(t, errors.Is(err, domain.ErrInsufficientBalance))
	assert.Equal(t, int64(0), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
