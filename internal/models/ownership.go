package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// ShopInvestor is a row of the shop_investor table.
type ShopInvestor struct {
	ID              string
	ShopID          string
	InvestorID      string
	SharePercentage decimal.Decimal
	Status          string
	JoinedDate      int64
	EndedDate       sql.NullInt64
	AuditFields
}
