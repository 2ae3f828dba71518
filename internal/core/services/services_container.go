package services

import (
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// syncer may be nil, in which case shop documents are not synced; m may be nil to disable metrics.
func NewServiceContainer(repos portsrepo.RepositoryProvider, syncer portssvc.ShopDocumentSyncer, m *metrics.LedgerMetrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Shop = NewShopService(repos.ShopRepo, syncer)
	container.Investor = NewInvestorService(repos.InvestorRepo)
	container.Ownership = NewOwnershipService(repos.OwnershipRepo, repos.ShopRepo, repos.InvestorRepo)
	container.Investment = NewInvestmentService(repos.InvestmentRepo, repos.OwnershipRepo, repos.SettlementRepo, m)
	container.Settlement = NewSettlementService(
		repos.SettlementRepo,
		repos.OwnershipRepo,
		repos.InvestmentRepo,
		repos.ShopRepo,
		syncer,
		m,
	)
	container.Preference = NewPreferenceService(repos.PreferenceRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.OwnershipRepo, repos.SettlementRepo, repos.ShopRepo)

	return container
}
