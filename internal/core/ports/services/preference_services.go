package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// PreferenceSvc is the local key-value collaborator.
type PreferenceSvc interface {
	GetPreference(ctx context.Context, key string) (*domain.Preference, error)
	SetPreference(ctx context.Context, key, value string) (*domain.Preference, error)
}
