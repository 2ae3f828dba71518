package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// InvestorReaderSvc defines read operations for investors
type InvestorReaderSvc interface {
	GetInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error)
	ListInvestors(ctx context.Context, limit int, offset int) ([]domain.Investor, error)
}

// InvestorWriterSvc defines write operations for investors
type InvestorWriterSvc interface {
	CreateInvestor(ctx context.Context, name string) (*domain.Investor, error)
	UpdateInvestor(ctx context.Context, investorID string, name string) (*domain.Investor, error)
	DeleteInvestor(ctx context.Context, investorID string) error
}

// InvestorSvcFacade combines all investor-related service interfaces
type InvestorSvcFacade interface {
	InvestorReaderSvc
	InvestorWriterSvc
}
