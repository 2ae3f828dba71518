package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// CloseSettlementRequest closes [periodStart, periodEnd) for a shop.
// When PeriodStart is omitted the shop's next period start is used.
type CloseSettlementRequest struct {
	PeriodStart  *time.Time `json:"periodStart"`
	PeriodEnd    time.Time  `json:"periodEnd" binding:"required"`
	CarryForward bool       `json:"carryForward"`
	Note         string     `json:"note" binding:"max=1000"`
}

// RecordPaymentRequest registers a disbursement against a settlement entry.
type RecordPaymentRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"decimalgt0"`
	PaidDate *time.Time      `json:"paidDate"` // Optional, defaults to now
}

type SettlementEntryResponse struct {
	EntryID              string     `json:"entryID"`
	SettlementID         string     `json:"settlementID"`
	InvestorID           string     `json:"investorID"`
	FairShareAmount      string     `json:"fairShareAmount"`
	ActualPaidAmount     string     `json:"actualPaidAmount"`
	BalanceAmount        string     `json:"balanceAmount"`
	SettlementPaidAmount string     `json:"settlementPaidAmount"`
	SettlementPaidDate   *time.Time `json:"settlementPaidDate,omitempty"`
	Outstanding          string     `json:"outstanding"`
}

type SettlementResponse struct {
	SettlementID     string                    `json:"settlementID"`
	ShopID           string                    `json:"shopID"`
	PeriodStartDate  time.Time                 `json:"periodStartDate"`
	SettlementDate   time.Time                 `json:"settlementDate"`
	TotalInvested    string                    `json:"totalInvested"`
	Note             string                    `json:"note"`
	IsCarriedForward bool                      `json:"isCarriedForward"`
	CreatedAt        time.Time                 `json:"createdAt"`
	Entries          []SettlementEntryResponse `json:"entries,omitempty"`
}

type ListSettlementsResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
}

type OutstandingBalanceResponse struct {
	InvestorID string `json:"investorID"`
	Amount     string `json:"amount"`
}

type ListOutstandingResponse struct {
	ShopID   string                       `json:"shopID"`
	Balances []OutstandingBalanceResponse `json:"balances"`
}

func ToSettlementEntryResponse(e *domain.SettlementEntry) SettlementEntryResponse {
	return SettlementEntryResponse{
		EntryID:              e.EntryID,
		SettlementID:         e.SettlementID,
		InvestorID:           e.InvestorID,
		FairShareAmount:      utils.FormatMoney(e.FairShareAmount),
		ActualPaidAmount:     utils.FormatMoney(e.ActualPaidAmount),
		BalanceAmount:        utils.FormatMoney(e.BalanceAmount),
		SettlementPaidAmount: utils.FormatMoney(e.SettlementPaidAmount),
		SettlementPaidDate:   e.SettlementPaidDate,
		Outstanding:          utils.FormatMoney(e.Outstanding()),
	}
}

func ToSettlementResponse(s *domain.YearEndSettlement) SettlementResponse {
	resp := SettlementResponse{
		SettlementID:     s.SettlementID,
		ShopID:           s.ShopID,
		PeriodStartDate:  s.PeriodStartDate,
		SettlementDate:   s.SettlementDate,
		TotalInvested:    utils.FormatMoney(s.TotalInvested),
		Note:             s.Note,
		IsCarriedForward: s.IsCarriedForward,
		CreatedAt:        s.CreatedAt,
	}
	for i := range s.Entries {
		resp.Entries = append(resp.Entries, ToSettlementEntryResponse(&s.Entries[i]))
	}
	return resp
}

func ToListSettlementsResponse(settlements []domain.YearEndSettlement) ListSettlementsResponse {
	res := make([]SettlementResponse, len(settlements))
	for i := range settlements {
		res[i] = ToSettlementResponse(&settlements[i])
	}
	return ListSettlementsResponse{Settlements: res}
}

func ToListOutstandingResponse(shopID string, balances []domain.OutstandingBalance) ListOutstandingResponse {
	res := make([]OutstandingBalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = OutstandingBalanceResponse{InvestorID: b.InvestorID, Amount: utils.FormatMoney(b.Amount)}
	}
	return ListOutstandingResponse{ShopID: shopID, Balances: res}
}
