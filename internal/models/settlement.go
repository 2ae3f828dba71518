package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// YearEndSettlement is a row of the year_end_settlement table.
type YearEndSettlement struct {
	ID               string
	ShopID           string
	SettlementDate   int64
	PeriodStartDate  int64
	TotalInvested    decimal.Decimal
	Note             sql.NullString
	IsCarriedForward bool
	CreatedAt        int64
}

// SettlementEntry is a row of the settlement_entry table.
type SettlementEntry struct {
	ID                   string
	SettlementID         string
	InvestorID           string
	FairShareAmount      decimal.Decimal
	ActualPaidAmount     decimal.Decimal
	BalanceAmount        decimal.Decimal
	SettlementPaidAmount decimal.Decimal
	SettlementPaidDate   sql.NullInt64
}
