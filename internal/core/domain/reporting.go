package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestorCapital is one investor's row in a shop's capital report.
type InvestorCapital struct {
	InvestorID   string          `json:"investorID"`
	InvestorName string          `json:"investorName"`
	ActiveShare  decimal.Decimal `json:"activeShare"`
	Contributed  decimal.Decimal `json:"contributed"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// CapitalReport summarises who put what into a shop up to AsOf (exclusive).
type CapitalReport struct {
	ShopID           string            `json:"shopID"`
	AsOf             time.Time         `json:"asOf"`
	Investors        []InvestorCapital `json:"investors"`
	TotalContributed decimal.Decimal   `json:"totalContributed"`
	TotalShare       decimal.Decimal   `json:"totalShare"`
}
