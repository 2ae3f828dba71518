package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// InvestmentTransaction is a row of the investment_transaction table.
type InvestmentTransaction struct {
	ID              string
	ShopInvestorID  string
	Amount          decimal.Decimal
	TransactionDate int64
	Phase           string
	Note            sql.NullString
	CreatedAt       int64
}
