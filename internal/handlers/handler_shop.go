package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// shopHandler handles HTTP requests related to shops.
type shopHandler struct {
	shopService portssvc.ShopSvcFacade
}

// registerShopRoutes registers routes related to shops.
func registerShopRoutes(rg *gin.RouterGroup, shopService portssvc.ShopSvcFacade) {
	h := &shopHandler{shopService: shopService}

	shops := rg.Group("/shops")
	{
		shops.POST("", h.createShop)
		shops.GET("", h.listShops)
		shops.GET("/:shopID", h.getShop)
		shops.PUT("/:shopID", h.updateShop)
		shops.DELETE("/:shopID", h.deleteShop)
	}
}

// createShop godoc
// @Summary Create a new shop
// @Tags shops
// @Accept  json
// @Produce  json
// @Param   shop body dto.CreateShopRequest true "Shop details"
// @Success 201 {object} dto.ShopResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create shop"
// @Security BearerAuth
// @Router /shops [post]
func (h *shopHandler) createShop(c *gin.Context) {
	var req dto.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), req.Name, req.Address)
	if err != nil {
		respondServiceError(c, err, "create shop")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Shop created successfully", slog.String("shop_id", shop.ShopID))
	c.JSON(http.StatusCreated, dto.ToShopResponse(shop))
}

// listShops godoc
// @Summary List shops
// @Tags shops
// @Produce  json
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListShopsResponse
// @Security BearerAuth
// @Router /shops [get]
func (h *shopHandler) listShops(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	shops, err := h.shopService.ListShops(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "list shops")
		return
	}
	c.JSON(http.StatusOK, dto.ToListShopsResponse(shops))
}

// getShop godoc
// @Summary Get a shop by ID
// @Tags shops
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Success 200 {object} dto.ShopResponse
// @Failure 404 {object} map[string]string "Shop not found"
// @Security BearerAuth
// @Router /shops/{shopID} [get]
func (h *shopHandler) getShop(c *gin.Context) {
	shop, err := h.shopService.GetShopByID(c.Request.Context(), c.Param("shopID"))
	if err != nil {
		respondServiceError(c, err, "retrieve shop")
		return
	}
	c.JSON(http.StatusOK, dto.ToShopResponse(shop))
}

// updateShop godoc
// @Summary Update a shop
// @Tags shops
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   shop body dto.UpdateShopRequest true "Fields to update"
// @Success 200 {object} dto.ShopResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Shop not found"
// @Security BearerAuth
// @Router /shops/{shopID} [put]
func (h *shopHandler) updateShop(c *gin.Context) {
	var req dto.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	shop, err := h.shopService.UpdateShop(c.Request.Context(), c.Param("shopID"), req.Name, req.Address)
	if err != nil {
		respondServiceError(c, err, "update shop")
		return
	}
	c.JSON(http.StatusOK, dto.ToShopResponse(shop))
}

// deleteShop godoc
// @Summary Delete a shop with all its links, transactions and settlements
// @Tags shops
// @Param   shopID path string true "Shop ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Shop not found"
// @Security BearerAuth
// @Router /shops/{shopID} [delete]
func (h *shopHandler) deleteShop(c *gin.Context) {
	shopID := c.Param("shopID")
	if err := h.shopService.DeleteShop(c.Request.Context(), shopID); err != nil {
		respondServiceError(c, err, "delete shop")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Shop deleted", slog.String("shop_id", shopID))
	c.Status(http.StatusNoContent)
}
