package mapping

import (
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/models"
)

// ToModelShop converts a domain Shop to a model Shop
func ToModelShop(d domain.Shop) models.Shop {
	return models.Shop{
		ShopID:      d.ShopID,
		Name:        d.Name,
		Address:     d.Address,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShop converts a model Shop to a domain Shop
func ToDomainShop(m models.Shop) domain.Shop {
	return domain.Shop{
		ShopID:      m.ShopID,
		Name:        m.Name,
		Address:     m.Address,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvestor converts a domain Investor to a model Investor
func ToModelInvestor(d domain.Investor) models.Investor {
	return models.Investor{
		InvestorID:  d.InvestorID,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvestor converts a model Investor to a domain Investor
func ToDomainInvestor(m models.Investor) domain.Investor {
	return domain.Investor{
		InvestorID:  m.InvestorID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
