package handler

import (
	"merch-shop/internal/adapter/http/dto"
	"merch-shop/internal/core/ports"
	"merch-shop/pkg/response"

	"github.com/gin-gonic/gin"
)

// ShopHandler handles the merchandise catalog endpoint.
type ShopHandler struct {
	catalogSvc ports.CatalogService
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(catalogSvc ports.CatalogService) *ShopHandler {
	return &ShopHandler{catalogSvc: catalogSvc}
}

// Merchandise handles GET /api/merchandise.
func (h *ShopHandler) Merchandise(c *gin.Context) {
	items, err := h.catalogSvc.ListMerchandise(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	listing := make([]dto.MerchandiseItem, 0, len(items))
	for _, item := range items {
		listing = append(listing, dto.MerchandiseItem{
			Name:  item.Name,
			Price: item.Price,
		})
	}

	response.OK(c, listing)
}
