package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/utils"
)

// InvestorCapitalResponse is one row of the capital report.
type InvestorCapitalResponse struct {
	InvestorID   string `json:"investorID"`
	InvestorName string `json:"investorName"`
	ActiveShare  string `json:"activeShare"`
	Contributed  string `json:"contributed"`
	Outstanding  string `json:"outstanding"`
}

// CapitalReportResponse represents the capital report response
type CapitalReportResponse struct {
	ShopID           string                    `json:"shopID"`
	AsOf             time.Time                 `json:"asOf"`
	Investors        []InvestorCapitalResponse `json:"investors"`
	TotalContributed string                    `json:"totalContributed"`
	TotalShare       string                    `json:"totalShare"`
}

func ToCapitalReportResponse(r *domain.CapitalReport) CapitalReportResponse {
	resp := CapitalReportResponse{
		ShopID:           r.ShopID,
		AsOf:             r.AsOf,
		Investors:        make([]InvestorCapitalResponse, 0, len(r.Investors)),
		TotalContributed: utils.FormatMoney(r.TotalContributed),
		TotalShare:       utils.FormatWithPrecision(r.TotalShare, sharePrecision),
	}
	for _, row := range r.Investors {
		resp.Investors = append(resp.Investors, InvestorCapitalResponse{
			InvestorID:   row.InvestorID,
			InvestorName: row.InvestorName,
			ActiveShare:  utils.FormatWithPrecision(row.ActiveShare, sharePrecision),
			Contributed:  utils.FormatMoney(row.Contributed),
			Outstanding:  utils.FormatMoney(row.Outstanding),
		})
	}
	return resp
}
