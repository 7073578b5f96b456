package service

import (
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

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	accountRepo ports.AccountRepository
	hashSvc     ports.HashService
	tokenSvc    ports.TokenService
	log         zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	accountRepo ports.AccountRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		accountRepo: accountRepo,
		hashSvc:     hashSvc,
		tokenSvc:    tokenSvc,
		log:         log,
	}
}

// Register creates an account seeded with the starting balance and returns
// a session token, so a fresh user can act immediately.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (string, time.Time, error) {
	passwordHash, err := s.hashSvc.Hash(password)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("hashing password: %w", err))
	}

	account := &domain.Account{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Balance:      domain.StartingBalance,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return "", time.Time{}, apperror.ErrUsernameExists()
		}
		return "", time.Time{}, apperror.ErrDatabaseError(fmt.Errorf("creating account: %w", err))
	}

	token, expiresAt, err := s.tokenSvc.Generate(account.ID, account.Username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generating token: %w", err))
	}

	s.log.Info().
		Str("account_id", account.ID.String()).
		Str("username", account.Username).
		Int64("starting_balance", account.Balance).
		Msg("account registered")

	return token, expiresAt, nil
}

// Login validates credentials and issues a token. Unknown usernames and
// wrong passwords both map to the same error so login reveals nothing
// about which accounts exist.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, apperror.ErrDatabaseError(fmt.Errorf("fetching account: %w", err))
	}
	if account == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, account.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verifying password: %w", err))
	}
	if !valid {
		s.log.Warn().
			Str("username", username).
			Msg("login failed: wrong password")
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiresAt, err := s.tokenSvc.Generate(account.ID, account.Username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generating token: %w", err))
	}

	s.log.Info().
		Str("account_id", account.ID.String()).
		Str("username", account.Username).
		Msg("login succeeded")

	return token, expiresAt, nil
}
