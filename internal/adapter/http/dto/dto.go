package dto

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,safe_id"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// AuthRequest is the request body for login.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the response body for successful registration or login.
type TokenResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// SendCoinRequest is the request body for coin transfers. Amount carries
// no binding tag so non-positive values reach the service and map to the
// coin error taxonomy instead of a generic validation failure.
type SendCoinRequest struct {
	ToUser string `json:"toUser" binding:"required,max=50"`
	Amount int64  `json:"amount"`
}

// SendCoinResponse is the response body for a completed transfer.
type SendCoinResponse struct {
	TransferID string `json:"transfer_id"`
	ToUser     string `json:"toUser"`
	Amount     int64  `json:"amount"`
	CreatedAt  string `json:"created_at"`
}

// PurchaseResponse is the response body for a completed purchase.
type PurchaseResponse struct {
	Item       string `json:"item"`
	PurchaseID string `json:"purchase_id"`
	CreatedAt  string `json:"created_at"`
}

// InventoryItem is one aggregated inventory row in the info report.
type InventoryItem struct {
	Type     string `json:"type"`
	Quantity int64  `json:"quantity"`
}

// ReceivedEntry is one incoming transfer in the info report.
type ReceivedEntry struct {
	FromUser string `json:"fromUser"`
	Amount   int64  `json:"amount"`
}

// SentEntry is one outgoing transfer in the info report.
type SentEntry struct {
	ToUser string `json:"toUser"`
	Amount int64  `json:"amount"`
}

// CoinHistoryResponse groups transfer history by direction.
type CoinHistoryResponse struct {
	Received []ReceivedEntry `json:"received"`
	Sent     []SentEntry     `json:"sent"`
}

// InfoResponse is the aggregated account report.
type InfoResponse struct {
	Coins       int64               `json:"coins"`
	Inventory   []InventoryItem     `json:"inventory"`
	CoinHistory CoinHistoryResponse `json:"coinHistory"`
}

// MerchandiseItem is one purchasable item in the catalog listing.
type MerchandiseItem struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
