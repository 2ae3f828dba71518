package mapping

import (
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/models"
)

// ToMillis converts a timestamp to the Unix milliseconds the store persists.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts stored Unix milliseconds back to a UTC timestamp.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     ToMillis(d.CreatedAt),
		LastUpdatedAt: ToMillis(d.LastUpdatedAt),
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     FromMillis(m.CreatedAt),
		LastUpdatedAt: FromMillis(m.LastUpdatedAt),
	}
}
