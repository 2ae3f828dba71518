package services

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementReaderSvc defines read operations of the settlement engine
type SettlementReaderSvc interface {
	GetSettlement(ctx context.Context, settlementID string) (*domain.YearEndSettlement, error)
	ListSettlements(ctx context.Context, shopID string) ([]domain.YearEndSettlement, error)

	// NextPeriodStart is the period start the shop's next settlement must use.
	NextPeriodStart(ctx context.Context, shopID string) (time.Time, error)

	// OutstandingBalances sums unsettled balances of carried-forward settlements per investor.
	OutstandingBalances(ctx context.Context, shopID string) ([]domain.OutstandingBalance, error)
}

// SettlementWriterSvc defines write operations of the settlement engine
type SettlementWriterSvc interface {
	// CloseSettlement reconciles [periodStart, periodEnd) and persists the
	// settlement with one entry per active investor, atomically.
	CloseSettlement(ctx context.Context, shopID string, periodStart, periodEnd time.Time, carryForward bool, note string) (*domain.YearEndSettlement, error)

	// RecordSettlementPayment registers a disbursement against an entry's balance.
	RecordSettlementPayment(ctx context.Context, entryID string, amount decimal.Decimal, paidDate time.Time) (*domain.SettlementEntry, error)
}

// SettlementSvcFacade combines all settlement-related service interfaces
type SettlementSvcFacade interface {
	SettlementReaderSvc
	SettlementWriterSvc
}
