package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item is a purchasable catalog entry. Reference data: seeded at startup,
// never mutated afterwards.
type Item struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price int64     `json:"price"`
}

// InventoryEntry records ownership of a single item unit. Owning N units of
// an item means N entries exist.
type InventoryEntry struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	ItemID    uuid.UUID `json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnedItem is the aggregated view of an account's inventory.
type OwnedItem struct {
	Name     string `json:"type"`
	Quantity int64  `json:"quantity"`
}

// SeedItem describes a builtin catalog item before it has an identity.
type SeedItem struct {
	Name  string
	Price int64
}

// BuiltinItems returns the fixed merchandise list seeded on every startup.
func BuiltinItems() []SeedItem {
	return []SeedItem{
		{Name: "t-shirt", Price: 80},
		{Name: "cup", Price: 20},
		{Name: "book", Price: 50},
		{Name: "pen", Price: 10},
		{Name: "powerbank", Price: 200},
		{Name: "hoody", Price: 300},
		{Name: "umbrella", Price: 200},
		{Name: "socks", Price: 10},
		{Name: "wallet", Price: 50},
		{Name: "pink-hoody", Price: 500},
	}
}
