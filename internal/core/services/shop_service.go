package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/google/uuid"
)

type shopService struct {
	BaseService
	shopRepo portsrepo.ShopRepositoryFacade
	syncer   portssvc.ShopDocumentSyncer
}

// NewShopService creates the shop catalogue service. A nil syncer disables document sync.
func NewShopService(shopRepo portsrepo.ShopRepositoryFacade, syncer portssvc.ShopDocumentSyncer) portssvc.ShopSvcFacade {
	return &shopService{shopRepo: shopRepo, syncer: syncer}
}

var _ portssvc.ShopSvcFacade = (*shopService)(nil)

func (s *shopService) CreateShop(ctx context.Context, name, address string) (*domain.Shop, error) {
	name, err := requireName("shop name", name)
	if err != nil {
		return nil, err
	}

	now := nowUTC()
	shop := domain.Shop{
		ShopID:      uuid.NewString(),
		Name:        name,
		Address:     address,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.shopRepo.SaveShop(ctx, shop); err != nil {
		s.LogError(ctx, err, "Failed to save shop", slog.String("shop_name", name))
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}

	s.LogInfo(ctx, "Shop created", slog.String("shop_id", shop.ShopID))
	syncShopDocument(ctx, &s.BaseService, s.syncer, shop.ShopID, map[string]any{
		"name":    shop.Name,
		"address": shop.Address,
	})
	return &shop, nil
}

func (s *shopService) GetShopByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	shop, err := s.shopRepo.FindShopByID(ctx, shopID)
	if err != nil {
		s.LogUnexpected(ctx, err, "Failed to find shop", slog.String("shop_id", shopID))
		return nil, err
	}
	return shop, nil
}

func (s *shopService) ListShops(ctx context.Context, limit int, offset int) ([]domain.Shop, error) {
	limit, offset, err := normalizeListLimit(limit, offset)
	if err != nil {
		return nil, err
	}
	shops, err := s.shopRepo.ListShops(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list shops")
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	return shops, nil
}

func (s *shopService) UpdateShop(ctx context.Context, shopID string, name, address *string) (*domain.Shop, error) {
	shop, err := s.shopRepo.FindShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed, err := requireName("shop name", *name)
		if err != nil {
			return nil, err
		}
		shop.Name = trimmed
	}
	if address != nil {
		shop.Address = *address
	}
	shop.LastUpdatedAt = nowUTC()

	if err := s.shopRepo.UpdateShop(ctx, *shop); err != nil {
		s.LogUnexpected(ctx, err, "Failed to update shop", slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to update shop %s: %w", shopID, err)
	}

	syncShopDocument(ctx, &s.BaseService, s.syncer, shop.ShopID, map[string]any{
		"name":    shop.Name,
		"address": shop.Address,
	})
	return shop, nil
}

// DeleteShop removes the shop and, through the store's cascades, every link,
// transaction, settlement and entry under it.
func (s *shopService) DeleteShop(ctx context.Context, shopID string) error {
	if err := s.shopRepo.DeleteShop(ctx, shopID); err != nil {
		s.LogUnexpected(ctx, err, "Failed to delete shop", slog.String("shop_id", shopID))
		return err
	}
	s.LogInfo(ctx, "Shop deleted", slog.String("shop_id", shopID))
	return nil
}

// syncShopDocument pushes fields to the remote store. Failures are logged and swallowed.
func syncShopDocument(ctx context.Context, base *BaseService, syncer portssvc.ShopDocumentSyncer, shopID string, fields map[string]any) {
	if syncer == nil {
		return
	}
	if err := syncer.UpsertShopDocument(ctx, shopID, fields); err != nil {
		base.GetLogger(ctx).Warn("Shop document sync failed", slog.String("shop_id", shopID), slog.String("error", err.Error()))
	}
}
