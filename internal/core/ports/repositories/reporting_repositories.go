package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// ReportingRepository defines operations for retrieving report data
type ReportingRepository interface {
	// GetContributionsByInvestor sums transactions dated before asOf across all
	// of each investor's links in the shop. Investors whose links joined before
	// asOf appear even when they contributed nothing. Only InvestorID,
	// InvestorName and Contributed are populated.
	GetContributionsByInvestor(ctx context.Context, shopID string, asOf time.Time) ([]domain.InvestorCapital, error)
}
