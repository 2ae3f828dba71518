package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// sharePrecision is how many decimals a share percentage is rendered with.
const sharePrecision = 4

// AddInvestorRequest links an investor to a shop.
type AddInvestorRequest struct {
	InvestorID      string          `json:"investorID" binding:"required"`
	SharePercentage decimal.Decimal `json:"sharePercentage" binding:"decimalgt0"`
	JoinedDate      *time.Time      `json:"joinedDate"` // Optional, defaults to now
}

// ChangeShareRequest replaces a link with one carrying the new share.
type ChangeShareRequest struct {
	SharePercentage decimal.Decimal `json:"sharePercentage" binding:"decimalgt0"`
	EffectiveDate   *time.Time      `json:"effectiveDate"` // Optional, defaults to now
}

type ListLinksParams struct {
	IncludeInactive bool `form:"includeInactive"`
}

type ShareParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02T15:04:05Z07:00"`
}

// LinkResponse defines the data returned for an ownership link.
type LinkResponse struct {
	LinkID          string            `json:"linkID"`
	ShopID          string            `json:"shopID"`
	InvestorID      string            `json:"investorID"`
	SharePercentage string            `json:"sharePercentage"`
	Status          domain.LinkStatus `json:"status"`
	JoinedDate      time.Time         `json:"joinedDate"`
	EndedDate       *time.Time        `json:"endedDate,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	LastUpdatedAt   time.Time         `json:"lastUpdatedAt"`
}

type ListLinksResponse struct {
	Links []LinkResponse `json:"links"`
}

type ShareResponse struct {
	ShopID          string    `json:"shopID"`
	InvestorID      string    `json:"investorID"`
	AsOf            time.Time `json:"asOf"`
	SharePercentage string    `json:"sharePercentage"`
}

func ToLinkResponse(link *domain.OwnershipLink) LinkResponse {
	return LinkResponse{
		LinkID:          link.LinkID,
		ShopID:          link.ShopID,
		InvestorID:      link.InvestorID,
		SharePercentage: utils.FormatWithPrecision(link.SharePercentage, sharePrecision),
		Status:          link.Status,
		JoinedDate:      link.JoinedDate,
		EndedDate:       link.EndedDate,
		CreatedAt:       link.CreatedAt,
		LastUpdatedAt:   link.LastUpdatedAt,
	}
}

func ToListLinksResponse(links []domain.OwnershipLink) ListLinksResponse {
	res := make([]LinkResponse, len(links))
	for i := range links {
		res[i] = ToLinkResponse(&links[i])
	}
	return ListLinksResponse{Links: res}
}

func ToShareResponse(shopID, investorID string, asOf time.Time, share decimal.Decimal) ShareResponse {
	return ShareResponse{
		ShopID:          shopID,
		InvestorID:      investorID,
		AsOf:            asOf,
		SharePercentage: utils.FormatWithPrecision(share, sharePrecision),
	}
}
