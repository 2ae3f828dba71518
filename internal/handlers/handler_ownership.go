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

// ownershipHandler exposes the ownership registry.
type ownershipHandler struct {
	ownershipService portssvc.OwnershipSvcFacade
}

func registerOwnershipRoutes(rg *gin.RouterGroup, ownershipService portssvc.OwnershipSvcFacade) {
	h := &ownershipHandler{ownershipService: ownershipService}

	shopInvestors := rg.Group("/shops/:shopID/investors")
	{
		shopInvestors.POST("", h.addInvestor)
		shopInvestors.GET("", h.listLinks)
		shopInvestors.GET("/:investorID/share", h.activeShare)
	}

	links := rg.Group("/links/:linkID")
	{
		links.GET("", h.getLink)
		links.POST("/deactivate", h.deactivate)
		links.POST("/share", h.changeShare)
	}
}

// addInvestor godoc
// @Summary Link an investor to a shop
// @Tags ownership
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   link body dto.AddInvestorRequest true "Investor and share"
// @Success 201 {object} dto.LinkResponse
// @Failure 400 {object} map[string]string "Invalid share or share cap exceeded"
// @Failure 404 {object} map[string]string "Shop or investor not found"
// @Failure 409 {object} map[string]string "Investor already active in the shop"
// @Security BearerAuth
// @Router /shops/{shopID}/investors [post]
func (h *ownershipHandler) addInvestor(c *gin.Context) {
	var req dto.AddInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var joined time.Time
	if req.JoinedDate != nil {
		joined = *req.JoinedDate
	}
	link, err := h.ownershipService.AddInvestor(c.Request.Context(), c.Param("shopID"), req.InvestorID, req.SharePercentage, joined)
	if err != nil {
		respondServiceError(c, err, "add investor to shop")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Investor linked to shop",
		slog.String("link_id", link.LinkID), slog.String("shop_id", link.ShopID))
	c.JSON(http.StatusCreated, dto.ToLinkResponse(link))
}

func (h *ownershipHandler) listLinks(c *gin.Context) {
	var params dto.ListLinksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	links, err := h.ownershipService.ListLinks(c.Request.Context(), c.Param("shopID"), params.IncludeInactive)
	if err != nil {
		respondServiceError(c, err, "list shop investors")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLinksResponse(links))
}

func (h *ownershipHandler) activeShare(c *gin.Context) {
	var params dto.ShareParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	asOf := params.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	shopID, investorID := c.Param("shopID"), c.Param("investorID")
	share, err := h.ownershipService.ActiveShareOf(c.Request.Context(), shopID, investorID, asOf)
	if err != nil {
		respondServiceError(c, err, "retrieve share")
		return
	}
	c.JSON(http.StatusOK, dto.ToShareResponse(shopID, investorID, asOf, share))
}

func (h *ownershipHandler) getLink(c *gin.Context) {
	link, err := h.ownershipService.GetLink(c.Request.Context(), c.Param("linkID"))
	if err != nil {
		respondServiceError(c, err, "retrieve link")
		return
	}
	c.JSON(http.StatusOK, dto.ToLinkResponse(link))
}

// deactivate godoc
// @Summary Deactivate an investor's link; history is kept
// @Tags ownership
// @Produce  json
// @Param   linkID path string true "Link ID"
// @Success 200 {object} dto.LinkResponse
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /links/{linkID}/deactivate [post]
func (h *ownershipHandler) deactivate(c *gin.Context) {
	link, err := h.ownershipService.DeactivateInvestor(c.Request.Context(), c.Param("linkID"))
	if err != nil {
		respondServiceError(c, err, "deactivate investor")
		return
	}
	c.JSON(http.StatusOK, dto.ToLinkResponse(link))
}

// changeShare godoc
// @Summary Replace a link with one carrying a new share
// @Tags ownership
// @Accept  json
// @Produce  json
// @Param   linkID path string true "Link ID"
// @Param   share body dto.ChangeShareRequest true "New share"
// @Success 201 {object} dto.LinkResponse
// @Failure 400 {object} map[string]string "Invalid share or share cap exceeded"
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /links/{linkID}/share [post]
func (h *ownershipHandler) changeShare(c *gin.Context) {
	var req dto.ChangeShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var effective time.Time
	if req.EffectiveDate != nil {
		effective = *req.EffectiveDate
	}
	link, err := h.ownershipService.ChangeShare(c.Request.Context(), c.Param("linkID"), req.SharePercentage, effective)
	if err != nil {
		respondServiceError(c, err, "change share")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLinkResponse(link))
}
