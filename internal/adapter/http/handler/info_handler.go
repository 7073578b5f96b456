package handler

import (
	"merch-shop/internal/adapter/http/dto"
	"merch-shop/internal/core/ports"
	"merch-shop/pkg/apperror"
	"merch-shop/pkg/response"

	"github.com/gin-gonic/gin"
)

// InfoHandler handles the aggregated account report endpoint.
type InfoHandler struct {
	infoSvc ports.InfoService
}

// NewInfoHandler creates a new InfoHandler.
func NewInfoHandler(infoSvc ports.InfoService) *InfoHandler {
	return &InfoHandler{infoSvc: infoSvc}
}

// GetInfo handles GET /api/info.
func (h *InfoHandler) GetInfo(c *gin.Context) {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	info, err := h.infoSvc.GetInfo(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.InfoResponse{
		Coins:     info.Coins,
		Inventory: make([]dto.InventoryItem, 0, len(info.Inventory)),
		CoinHistory: dto.CoinHistoryResponse{
			Received: make([]dto.ReceivedEntry, 0),
			Sent:     make([]dto.SentEntry, 0),
		},
	}
	for _, owned := range info.Inventory {
		resp.Inventory = append(resp.Inventory, dto.InventoryItem{
			Type:     owned.Name,
			Quantity: owned.Quantity,
		})
	}
	if info.History != nil {
		for _, e := range info.History.Received {
			resp.CoinHistory.Received = append(resp.CoinHistory.Received, dto.ReceivedEntry{
				FromUser: e.Counterparty,
				Amount:   e.Amount,
			})
		}
		for _, e := range info.History.Sent {
			resp.CoinHistory.Sent = append(resp.CoinHistory.Sent, dto.SentEntry{
				ToUser: e.Counterparty,
				Amount: e.Amount,
			})
		}
	}

	response.OK(c, resp)
}
