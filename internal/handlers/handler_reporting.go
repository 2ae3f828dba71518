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

// reportingHandler handles HTTP requests related to shop reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := &reportingHandler{reportingService: reportingService}
	rg.GET("/shops/:shopID/reports/capital", h.getCapitalReport)
}

// getCapitalReport godoc
// @Summary Capital report for a shop
// @Description Per-investor contributions up to and including asOf, with active shares and outstanding settlement balances
// @Tags reports
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.CapitalReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Shop not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /shops/{shopID}/reports/capital [get]
func (h *reportingHandler) getCapitalReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var asOf time.Time
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		day, err := time.Parse("2006-01-02", asOfStr)
		if err != nil {
			logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		// The report covers the whole of the given day.
		asOf = day.AddDate(0, 0, 1)
	}

	report, err := h.reportingService.CapitalReport(c.Request.Context(), c.Param("shopID"), asOf)
	if err != nil {
		respondServiceError(c, err, "generate report")
		return
	}
	c.JSON(http.StatusOK, dto.ToCapitalReportResponse(report))
}
