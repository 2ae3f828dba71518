package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settlementHandler exposes the settlement engine.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := &settlementHandler{settlementService: settlementService}

	shop := rg.Group("/shops/:shopID")
	{
		shop.POST("/settlements", h.closeSettlement)
		shop.GET("/settlements", h.listSettlements)
		shop.GET("/outstanding", h.outstanding)
	}
	rg.GET("/settlements/:settlementID", h.getSettlement)
	rg.POST("/settlement-entries/:entryID/payments", h.recordPayment)
}

// closeSettlement godoc
// @Summary Close the shop's next settlement period
// @Description Computes fair shares for [periodStart, periodEnd) and persists the settlement with its entries atomically.
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   settlement body dto.CloseSettlementRequest true "Period to close"
// @Success 201 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Invalid or non-contiguous period, or no active investors"
// @Failure 404 {object} map[string]string "Shop not found"
// @Security BearerAuth
// @Router /shops/{shopID}/settlements [post]
func (h *settlementHandler) closeSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CloseSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	shopID := c.Param("shopID")
	var start time.Time
	if req.PeriodStart != nil {
		start = *req.PeriodStart
	} else {
		next, err := h.settlementService.NextPeriodStart(c.Request.Context(), shopID)
		if err != nil {
			respondServiceError(c, err, "close settlement")
			return
		}
		start = next
	}

	settlement, err := h.settlementService.CloseSettlement(c.Request.Context(), shopID, start, req.PeriodEnd, req.CarryForward, req.Note)
	if err != nil {
		respondServiceError(c, err, "close settlement")
		return
	}

	closedBy, ok := middleware.GetSubjectFromContext(c)
	if !ok {
		closedBy = "anonymous"
	}
	logger.Info("Settlement closed",
		slog.String("settlement_id", settlement.SettlementID),
		slog.String("shop_id", shopID),
		slog.String("closed_by", closedBy))
	c.JSON(http.StatusCreated, dto.ToSettlementResponse(settlement))
}

func (h *settlementHandler) listSettlements(c *gin.Context) {
	settlements, err := h.settlementService.ListSettlements(c.Request.Context(), c.Param("shopID"))
	if err != nil {
		respondServiceError(c, err, "list settlements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSettlementsResponse(settlements))
}

func (h *settlementHandler) getSettlement(c *gin.Context) {
	settlement, err := h.settlementService.GetSettlement(c.Request.Context(), c.Param("settlementID"))
	if err != nil {
		respondServiceError(c, err, "retrieve settlement")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}

func (h *settlementHandler) outstanding(c *gin.Context) {
	shopID := c.Param("shopID")
	balances, err := h.settlementService.OutstandingBalances(c.Request.Context(), shopID)
	if err != nil {
		respondServiceError(c, err, "compute outstanding balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOutstandingResponse(shopID, balances))
}

// recordPayment godoc
// @Summary Record a disbursement against a settlement entry
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Settlement entry ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment"
// @Success 200 {object} dto.SettlementEntryResponse
// @Failure 400 {object} map[string]string "Invalid amount or payment exceeds balance"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /settlement-entries/{entryID}/payments [post]
func (h *settlementHandler) recordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var paid time.Time
	if req.PaidDate != nil {
		paid = *req.PaidDate
	}
	entry, err := h.settlementService.RecordSettlementPayment(c.Request.Context(), c.Param("entryID"), req.Amount, paid)
	if err != nil {
		respondServiceError(c, err, "record settlement payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementEntryResponse(entry))
}
