package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type reportingService struct {
	BaseService
	reportingRepo  portsrepo.ReportingRepository
	ownershipRepo  portsrepo.OwnershipReader
	settlementRepo portsrepo.SettlementReader
	shopRepo       portsrepo.ShopReader
}

func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	ownershipRepo portsrepo.OwnershipReader,
	settlementRepo portsrepo.SettlementReader,
	shopRepo portsrepo.ShopReader,
) portssvc.ReportingSvc {
	return &reportingService{
		reportingRepo:  reportingRepo,
		ownershipRepo:  ownershipRepo,
		settlementRepo: settlementRepo,
		shopRepo:       shopRepo,
	}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// CapitalReport takes ActiveShare from links that are active now and joined
// before asOf, and Outstanding from every carried-forward settlement.
func (s *reportingService) CapitalReport(ctx context.Context, shopID string, asOf time.Time) (*domain.CapitalReport, error) {
	if asOf.IsZero() {
		asOf = nowUTC()
	}
	asOf = asOf.UTC()
	logger := s.GetLogger(ctx).With(slog.String("shop_id", shopID), slog.Time("as_of", asOf))

	if _, err := s.shopRepo.FindShopByID(ctx, shopID); err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.GetContributionsByInvestor(ctx, shopID, asOf)
	if err != nil {
		logger.Error("Failed to load contributions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build capital report: %w", err)
	}
	links, err := s.ownershipRepo.ListLinksByShop(ctx, shopID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to build capital report: %w", err)
	}
	entries, err := s.settlementRepo.ListCarriedForwardEntries(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to build capital report: %w", err)
	}

	shares := make(map[string]decimal.Decimal, len(links))
	for _, l := range links {
		if l.ActiveAsOf(asOf) {
			shares[l.InvestorID] = shares[l.InvestorID].Add(l.SharePercentage)
		}
	}
	outstanding := make(map[string]decimal.Decimal)
	for _, e := range entries {
		outstanding[e.InvestorID] = outstanding[e.InvestorID].Add(e.Outstanding())
	}

	report := &domain.CapitalReport{
		ShopID:           shopID,
		AsOf:             asOf,
		Investors:        make([]domain.InvestorCapital, 0, len(rows)),
		TotalContributed: decimal.Zero,
		TotalShare:       decimal.Zero,
	}
	for _, row := range rows {
		row.ActiveShare = shares[row.InvestorID]
		row.Outstanding = outstanding[row.InvestorID]
		report.TotalContributed = report.TotalContributed.Add(row.Contributed)
		report.TotalShare = report.TotalShare.Add(row.ActiveShare)
		report.Investors = append(report.Investors, row)
	}

	logger.Debug("Capital report built", slog.Int("investors", len(report.Investors)))
	return report, nil
}
