package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type preferenceHandler struct {
	preferenceService portssvc.PreferenceSvc
}

func registerPreferenceRoutes(rg *gin.RouterGroup, preferenceService portssvc.PreferenceSvc) {
	h := &preferenceHandler{preferenceService: preferenceService}
	rg.GET("/preferences/:key", h.get)
	rg.PUT("/preferences/:key", h.set)
}

func (h *preferenceHandler) get(c *gin.Context) {
	pref, err := h.preferenceService.GetPreference(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondServiceError(c, err, "retrieve preference")
		return
	}
	c.JSON(http.StatusOK, dto.ToPreferenceResponse(pref))
}

func (h *preferenceHandler) set(c *gin.Context) {
	var req dto.SetPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	pref, err := h.preferenceService.SetPreference(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		respondServiceError(c, err, "save preference")
		return
	}
	c.JSON(http.StatusOK, dto.ToPreferenceResponse(pref))
}
