package mapping

import (
	"database/sql"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/models"
)

// ToModelInvestmentTransaction converts a domain transaction to an investment_transaction row
func ToModelInvestmentTransaction(d domain.InvestmentTransaction) models.InvestmentTransaction {
	return models.InvestmentTransaction{
		ID:              d.TransactionID,
		ShopInvestorID:  d.LinkID,
		Amount:          d.Amount,
		TransactionDate: ToMillis(d.TransactionDate),
		Phase:           d.Phase,
		Note:            sql.NullString{String: d.Note, Valid: d.Note != ""},
		CreatedAt:       ToMillis(d.CreatedAt),
	}
}

// ToDomainInvestmentTransaction converts an investment_transaction row to a domain transaction
func ToDomainInvestmentTransaction(m models.InvestmentTransaction) domain.InvestmentTransaction {
	return domain.InvestmentTransaction{
		TransactionID:   m.ID,
		LinkID:          m.ShopInvestorID,
		Amount:          m.Amount,
		TransactionDate: FromMillis(m.TransactionDate),
		Phase:           m.Phase,
		Note:            m.Note.String,
		CreatedAt:       FromMillis(m.CreatedAt),
	}
}
