package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// InvestorReader defines read operations for investor data
type InvestorReader interface {
	FindInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error)
	ListInvestors(ctx context.Context, limit int, offset int) ([]domain.Investor, error)
}

// InvestorWriter defines write operations for investor data
type InvestorWriter interface {
	SaveInvestor(ctx context.Context, investor domain.Investor) error
	UpdateInvestor(ctx context.Context, investor domain.Investor) error
	// DeleteInvestor removes the investor, every ownership link it holds and its settlement entries.
	DeleteInvestor(ctx context.Context, investorID string) error
}

// InvestorRepositoryFacade combines all investor-related repository interfaces
type InvestorRepositoryFacade interface {
	InvestorReader
	InvestorWriter
}
