package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ShopRepo:       newSQLiteShopRepository(db),
		InvestorRepo:   newSQLiteInvestorRepository(db),
		OwnershipRepo:  newSQLiteOwnershipRepository(db),
		InvestmentRepo: newSQLiteInvestmentRepository(db),
		SettlementRepo: newSQLiteSettlementRepository(db),
		PreferenceRepo: newSQLitePreferenceRepository(db),
		ReportingRepo:  newSQLiteReportingRepository(db),
	}
}
