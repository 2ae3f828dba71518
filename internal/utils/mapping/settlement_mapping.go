package mapping

import (
	"database/sql"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/models"
)

// ToModelSettlement converts a domain settlement to a year_end_settlement row
func ToModelSettlement(d domain.YearEndSettlement) models.YearEndSettlement {
	return models.YearEndSettlement{
		ID:               d.SettlementID,
		ShopID:           d.ShopID,
		SettlementDate:   ToMillis(d.SettlementDate),
		PeriodStartDate:  ToMillis(d.PeriodStartDate),
		TotalInvested:    d.TotalInvested,
		Note:             sql.NullString{String: d.Note, Valid: d.Note != ""},
		IsCarriedForward: d.IsCarriedForward,
		CreatedAt:        ToMillis(d.CreatedAt),
	}
}

// ToDomainSettlement converts a year_end_settlement row to a domain settlement (without entries)
func ToDomainSettlement(m models.YearEndSettlement) domain.YearEndSettlement {
	return domain.YearEndSettlement{
		SettlementID:     m.ID,
		ShopID:           m.ShopID,
		SettlementDate:   FromMillis(m.SettlementDate),
		PeriodStartDate:  FromMillis(m.PeriodStartDate),
		TotalInvested:    m.TotalInvested,
		Note:             m.Note.String,
		IsCarriedForward: m.IsCarriedForward,
		CreatedAt:        FromMillis(m.CreatedAt),
	}
}

// ToModelSettlementEntry converts a domain entry to a settlement_entry row
func ToModelSettlementEntry(d domain.SettlementEntry) models.SettlementEntry {
	m := models.SettlementEntry{
		ID:                   d.EntryID,
		SettlementID:         d.SettlementID,
		InvestorID:           d.InvestorID,
		FairShareAmount:      d.FairShareAmount,
		ActualPaidAmount:     d.ActualPaidAmount,
		BalanceAmount:        d.BalanceAmount,
		SettlementPaidAmount: d.SettlementPaidAmount,
	}
	if d.SettlementPaidDate != nil {
		m.SettlementPaidDate = sql.NullInt64{Int64: ToMillis(*d.SettlementPaidDate), Valid: true}
	}
	return m
}

// ToDomainSettlementEntry converts a settlement_entry row to a domain entry
func ToDomainSettlementEntry(m models.SettlementEntry) domain.SettlementEntry {
	d := domain.SettlementEntry{
		EntryID:              m.ID,
		SettlementID:         m.SettlementID,
		InvestorID:           m.InvestorID,
		FairShareAmount:      m.FairShareAmount,
		ActualPaidAmount:     m.ActualPaidAmount,
		BalanceAmount:        m.BalanceAmount,
		SettlementPaidAmount: m.SettlementPaidAmount,
	}
	if m.SettlementPaidDate.Valid {
		paid := FromMillis(m.SettlementPaidDate.Int64)
		d.SettlementPaidDate = &paid
	}
	return d
}
