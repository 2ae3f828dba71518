package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type investorHandler struct {
	investorService portssvc.InvestorSvcFacade
}

func registerInvestorRoutes(rg *gin.RouterGroup, investorService portssvc.InvestorSvcFacade) {
	h := &investorHandler{investorService: investorService}

	investors := rg.Group("/investors")
	{
		investors.POST("", h.createInvestor)
		investors.GET("", h.listInvestors)
		investors.GET("/:investorID", h.getInvestor)
		investors.PUT("/:investorID", h.updateInvestor)
		investors.DELETE("/:investorID", h.deleteInvestor)
	}
}

func (h *investorHandler) createInvestor(c *gin.Context) {
	var req dto.InvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	investor, err := h.investorService.CreateInvestor(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, err, "create investor")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvestorResponse(investor))
}

func (h *investorHandler) listInvestors(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	investors, err := h.investorService.ListInvestors(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "list investors")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvestorsResponse(investors))
}

func (h *investorHandler) getInvestor(c *gin.Context) {
	investor, err := h.investorService.GetInvestorByID(c.Request.Context(), c.Param("investorID"))
	if err != nil {
		respondServiceError(c, err, "retrieve investor")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvestorResponse(investor))
}

func (h *investorHandler) updateInvestor(c *gin.Context) {
	var req dto.InvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	investor, err := h.investorService.UpdateInvestor(c.Request.Context(), c.Param("investorID"), req.Name)
	if err != nil {
		respondServiceError(c, err, "update investor")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvestorResponse(investor))
}

// deleteInvestor removes the investor together with every link it holds.
func (h *investorHandler) deleteInvestor(c *gin.Context) {
	if err := h.investorService.DeleteInvestor(c.Request.Context(), c.Param("investorID")); err != nil {
		respondServiceError(c, err, "delete investor")
		return
	}
	c.Status(http.StatusNoContent)
}
