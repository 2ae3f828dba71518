package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// investmentHandler exposes the transaction ledger of a link.
type investmentHandler struct {
	investmentService portssvc.InvestmentSvcFacade
}

func registerInvestmentRoutes(rg *gin.RouterGroup, investmentService portssvc.InvestmentSvcFacade) {
	h := &investmentHandler{investmentService: investmentService}

	txns := rg.Group("/links/:linkID/transactions")
	{
		txns.POST("", h.record)
		txns.GET("", h.list)
		txns.GET("/sum", h.sum)
	}
}

// record godoc
// @Summary Record a capital movement on a link
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   linkID path string true "Link ID"
// @Param   transaction body dto.RecordTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid amount, phase or inactive link"
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /links/{linkID}/transactions [post]
func (h *investmentHandler) record(c *gin.Context) {
	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var date time.Time
	if req.TransactionDate != nil {
		date = *req.TransactionDate
	}
	txn, err := h.investmentService.Record(c.Request.Context(), c.Param("linkID"), req.Amount, date, req.Phase, req.Note)
	if err != nil {
		respondServiceError(c, err, "record transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// list godoc
// @Summary List a link's transactions, newest first
// @Tags transactions
// @Produce  json
// @Param   linkID path string true "Link ID"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Security BearerAuth
// @Router /links/{linkID}/transactions [get]
func (h *investmentHandler) list(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	txns, next, err := h.investmentService.ListTransactions(c.Request.Context(), c.Param("linkID"), params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, next))
}

func (h *investmentHandler) sum(c *gin.Context) {
	var params dto.SumTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	linkID := c.Param("linkID")
	total, err := h.investmentService.SumByLinkInPeriod(c.Request.Context(), linkID, params.Start, params.End)
	if err != nil {
		respondServiceError(c, err, "sum transactions")
		return
	}
	c.JSON(http.StatusOK, dto.SumTransactionsResponse{
		LinkID: linkID,
		Start:  params.Start,
		End:    params.End,
		Total:  utils.FormatMoney(total),
	})
}
