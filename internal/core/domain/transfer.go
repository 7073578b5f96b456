package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transfer is an immutable ledger entry for a completed coin transfer.
// Entries are append-only; nothing in the system updates or deletes them.
type Transfer struct {
	ID            uuid.UUID `json:"id"`
	FromAccountID uuid.UUID `json:"from_account_id"`
	ToAccountID   uuid.UUID `json:"to_account_id"`
	Amount        int64     `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistoryEntry is one side of a transfer resolved to the counterparty's
// username at read time.
type HistoryEntry struct {
	Counterparty string `json:"counterparty"`
	Amount       int64  `json:"amount"`
}

// CoinHistory groups an account's transfer history by direction.
type CoinHistory struct {
	Received []HistoryEntry `json:"received"`
	Sent     []HistoryEntry `json:"sent"`
}
