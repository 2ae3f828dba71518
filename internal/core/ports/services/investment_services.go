package services

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvestmentReaderSvc defines read operations of the transaction ledger
type InvestmentReaderSvc interface {
	// SumByLinkInPeriod adds up amounts with start <= transactionDate < end.
	SumByLinkInPeriod(ctx context.Context, linkID string, start, end time.Time) (decimal.Decimal, error)

	ListTransactions(ctx context.Context, linkID string, limit int, nextToken *string) ([]domain.InvestmentTransaction, *string, error)
}

// InvestmentWriterSvc defines write operations of the transaction ledger
type InvestmentWriterSvc interface {
	// Record appends an immutable capital movement to an active link.
	Record(ctx context.Context, linkID string, amount decimal.Decimal, date time.Time, phase, note string) (*domain.InvestmentTransaction, error)
}

// InvestmentSvcFacade combines all investment-related service interfaces
type InvestmentSvcFacade interface {
	InvestmentReaderSvc
	InvestmentWriterSvc
}
