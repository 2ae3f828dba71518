package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// InvestorRequest is used for both creating and renaming an investor.
type InvestorRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

type InvestorResponse struct {
	InvestorID    string    `json:"investorID"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

type ListInvestorsResponse struct {
	Investors []InvestorResponse `json:"investors"`
}

func ToInvestorResponse(investor *domain.Investor) InvestorResponse {
	return InvestorResponse{
		InvestorID:    investor.InvestorID,
		Name:          investor.Name,
		CreatedAt:     investor.CreatedAt,
		LastUpdatedAt: investor.LastUpdatedAt,
	}
}

func ToListInvestorsResponse(investors []domain.Investor) ListInvestorsResponse {
	res := make([]InvestorResponse, len(investors))
	for i := range investors {
		res[i] = ToInvestorResponse(&investors[i])
	}
	return ListInvestorsResponse{Investors: res}
}
