package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// ShopReaderSvc defines read operations for shops
type ShopReaderSvc interface {
	GetShopByID(ctx context.Context, shopID string) (*domain.Shop, error)
	ListShops(ctx context.Context, limit int, offset int) ([]domain.Shop, error)
}

// ShopWriterSvc defines write operations for shops
type ShopWriterSvc interface {
	CreateShop(ctx context.Context, name, address string) (*domain.Shop, error)
	// UpdateShop changes only the fields that are non-nil.
	UpdateShop(ctx context.Context, shopID string, name, address *string) (*domain.Shop, error)
	DeleteShop(ctx context.Context, shopID string) error
}

// ShopSvcFacade combines all shop-related service interfaces
type ShopSvcFacade interface {
	ShopReaderSvc
	ShopWriterSvc
}
