package mapping

import (
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/models"
)

// ToModelPreference converts a domain Preference to a preference row
func ToModelPreference(d domain.Preference) models.Preference {
	return models.Preference{Key: d.Key, Value: d.Value, UpdatedAt: ToMillis(d.LastUpdatedAt)}
}

// ToDomainPreference converts a preference row to a domain Preference
func ToDomainPreference(m models.Preference) domain.Preference {
	return domain.Preference{Key: m.Key, Value: m.Value, LastUpdatedAt: FromMillis(m.UpdatedAt)}
}
