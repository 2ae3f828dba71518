package mapping

import (
	"database/sql"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/models"
)

// ToModelShopInvestor converts a domain OwnershipLink to a shop_investor row
func ToModelShopInvestor(d domain.OwnershipLink) models.ShopInvestor {
	m := models.ShopInvestor{
		ID:              d.LinkID,
		ShopID:          d.ShopID,
		InvestorID:      d.InvestorID,
		SharePercentage: d.SharePercentage,
		Status:          string(d.Status),
		JoinedDate:      ToMillis(d.JoinedDate),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.EndedDate != nil {
		m.EndedDate = sql.NullInt64{Int64: ToMillis(*d.EndedDate), Valid: true}
	}
	return m
}

// ToDomainOwnershipLink converts a shop_investor row to a domain OwnershipLink
func ToDomainOwnershipLink(m models.ShopInvestor) domain.OwnershipLink {
	d := domain.OwnershipLink{
		LinkID:          m.ID,
		ShopID:          m.ShopID,
		InvestorID:      m.InvestorID,
		SharePercentage: m.SharePercentage,
		Status:          domain.LinkStatus(m.Status),
		JoinedDate:      FromMillis(m.JoinedDate),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.EndedDate.Valid {
		ended := FromMillis(m.EndedDate.Int64)
		d.EndedDate = &ended
	}
	return d
}
