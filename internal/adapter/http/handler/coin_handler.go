package handler

import (
	"time"

	"merch-shop/internal/adapter/http/dto"
	"merch-shop/internal/adapter/http/middleware"
	"merch-shop/internal/core/ports"
	"merch-shop/pkg/apperror"
	"merch-shop/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CoinHandler handles coin transfer and purchase endpoints.
type CoinHandler struct {
	coinSvc ports.CoinService
}

// NewCoinHandler creates a new CoinHandler.
func NewCoinHandler(coinSvc ports.CoinService) *CoinHandler {
	return &CoinHandler{coinSvc: coinSvc}
}

// SendCoin handles POST /api/sendCoin.
func (h *CoinHandler) SendCoin(c *gin.Context) {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.SendCoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	transfer, err := h.coinSvc.Transfer(c.Request.Context(), accountID, req.ToUser, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SendCoinResponse{
		TransferID: transfer.ID.String(),
		ToUser:     req.ToUser,
		Amount:     transfer.Amount,
		CreatedAt:  transfer.CreatedAt.Format(time.RFC3339),
	})
}

// Buy handles GET /api/buy/:item.
func (h *CoinHandler) Buy(c *gin.Context) {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	itemName := c.Param("item")

	entry, err := h.coinSvc.Purchase(c.Request.Context(), accountID, itemName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PurchaseResponse{
		Item:       itemName,
		PurchaseID: entry.ID.String(),
		CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
	})
}

// accountIDFromContext extracts the authenticated account ID set by JWTAuth.
func accountIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.CtxAccountID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
