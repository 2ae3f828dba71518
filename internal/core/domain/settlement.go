package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearEndSettlement closes the half-open period [PeriodStartDate, SettlementDate) for a shop.
type YearEndSettlement struct {
	SettlementID     string            `json:"settlementID"`
	ShopID           string            `json:"shopID"`
	PeriodStartDate  time.Time         `json:"periodStartDate"`
	SettlementDate   time.Time         `json:"settlementDate"`
	TotalInvested    decimal.Decimal   `json:"totalInvested"`
	Note             string            `json:"note"`
	IsCarriedForward bool              `json:"isCarriedForward"`
	Entries          []SettlementEntry `json:"entries,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// SettlementEntry is one investor's line in a settlement.
// BalanceAmount is positive when the investor owes and negative when the
// investor overpaid.
type SettlementEntry struct {
	EntryID              string          `json:"entryID"`
	SettlementID         string          `json:"settlementID"`
	InvestorID           string          `json:"investorID"`
	FairShareAmount      decimal.Decimal `json:"fairShareAmount"`
	ActualPaidAmount     decimal.Decimal `json:"actualPaidAmount"`
	BalanceAmount        decimal.Decimal `json:"balanceAmount"`
	SettlementPaidAmount decimal.Decimal `json:"settlementPaidAmount"`
	SettlementPaidDate   *time.Time      `json:"settlementPaidDate,omitempty"`
}

// Outstanding returns the part of the balance not yet settled, keeping the
// balance's sign.
func (e SettlementEntry) Outstanding() decimal.Decimal {
	remaining := e.BalanceAmount.Abs().Sub(e.SettlementPaidAmount)
	if !remaining.IsPositive() {
		return decimal.Zero
	}
	if e.BalanceAmount.IsNegative() {
		return remaining.Neg()
	}
	return remaining
}

// IsSettled reports whether nothing remains to be paid on the entry.
func (e SettlementEntry) IsSettled() bool {
	return e.Outstanding().IsZero()
}

// OutstandingBalance is an investor's unsettled amount carried forward across settlements.
type OutstandingBalance struct {
	InvestorID string          `json:"investorID"`
	Amount     decimal.Decimal `json:"amount"`
}
