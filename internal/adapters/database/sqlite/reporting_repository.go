package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type SQLiteReportingRepository struct {
	BaseRepository
}

func newSQLiteReportingRepository(db *sql.DB) portsrepo.ReportingRepository {
	return &SQLiteReportingRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.ReportingRepository = (*SQLiteReportingRepository)(nil)

// Amounts are TEXT, so SUM() would go through floating point; rows are summed in Go.
const contributionsByInvestorQuery = `
	SELECT i.id, i.name, t.amount
	FROM shop_investor l
	JOIN investor i ON i.id = l.investorId
	LEFT JOIN investment_transaction t ON t.shopInvestorId = l.id AND t.transactionDate < ?
	WHERE l.shopId = ? AND l.joinedDate < ?
	ORDER BY i.name, i.id`

func (r *SQLiteReportingRepository) GetContributionsByInvestor(ctx context.Context, shopID string, asOf time.Time) ([]domain.InvestorCapital, error) {
	asOfMillis := mapping.ToMillis(asOf)
	rows, err := r.DB.QueryContext(ctx, contributionsByInvestorQuery, asOfMillis, shopID, asOfMillis)
	if err != nil {
		return nil, mapError(err, "get contributions of shop "+shopID)
	}
	defer rows.Close()

	var result []domain.InvestorCapital
	index := make(map[string]int)
	for rows.Next() {
		var (
			investorID, name string
			amount           decimal.NullDecimal
		)
		if err := rows.Scan(&investorID, &name, &amount); err != nil {
			return nil, mapError(err, "scan contribution row")
		}
		i, ok := index[investorID]
		if !ok {
			i = len(result)
			index[investorID] = i
			result = append(result, domain.InvestorCapital{
				InvestorID:   investorID,
				InvestorName: name,
				ActiveShare:  decimal.Zero,
				Contributed:  decimal.Zero,
				Outstanding:  decimal.Zero,
			})
		}
		if amount.Valid {
			result[i].Contributed = result[i].Contributed.Add(amount.Decimal)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "get contributions of shop "+shopID)
	}
	return result, nil
}
