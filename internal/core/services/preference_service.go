package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
)

type preferenceService struct {
	BaseService
	preferenceRepo portsrepo.PreferenceRepositoryFacade
}

func NewPreferenceService(preferenceRepo portsrepo.PreferenceRepositoryFacade) portssvc.PreferenceSvc {
	return &preferenceService{preferenceRepo: preferenceRepo}
}

var _ portssvc.PreferenceSvc = (*preferenceService)(nil)

func (s *preferenceService) GetPreference(ctx context.Context, key string) (*domain.Preference, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: preference key is required", apperrors.ErrValidation)
	}
	return s.preferenceRepo.FindPreference(ctx, key)
}

func (s *preferenceService) SetPreference(ctx context.Context, key, value string) (*domain.Preference, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: preference key is required", apperrors.ErrValidation)
	}

	pref := domain.Preference{Key: key, Value: value, LastUpdatedAt: nowUTC()}
	if err := s.preferenceRepo.SavePreference(ctx, pref); err != nil {
		s.LogError(ctx, err, "Failed to save preference", slog.String("key", key))
		return nil, fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	s.LogDebug(ctx, "Preference saved", slog.String("key", key))
	return &pref, nil
}
