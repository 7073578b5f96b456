package domain

import (
	"time"

	"github.com/google/uuid"
)

// StartingBalance is the number of coins granted to every account at registration.
const StartingBalance int64 = 1000

// Account represents a registered user holding a coin balance.
// Balance is mutated only through the conditional update in the account store,
// so it can never be observed below zero.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Owned by the authenticator, never expose
	Balance      int64     `json:"balance"`
	CreatedAt    time.Time `json:"created_at"`
}
