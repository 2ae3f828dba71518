package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// PreferenceRepositoryFacade is the local key-value store.
type PreferenceRepositoryFacade interface {
	FindPreference(ctx context.Context, key string) (*domain.Preference, error)
	// SavePreference inserts or replaces the value stored under pref.Key.
	SavePreference(ctx context.Context, pref domain.Preference) error
}
