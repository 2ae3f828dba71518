package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// ShopReader defines read operations for shop data
type ShopReader interface {
	// FindShopByID returns apperrors.ErrNotFound when the shop does not exist.
	FindShopByID(ctx context.Context, shopID string) (*domain.Shop, error)
	ListShops(ctx context.Context, limit int, offset int) ([]domain.Shop, error)
}

// ShopWriter defines write operations for shop data
type ShopWriter interface {
	SaveShop(ctx context.Context, shop domain.Shop) error
	UpdateShop(ctx context.Context, shop domain.Shop) error
	// DeleteShop removes the shop together with its links, their transactions,
	// its settlements and their entries.
	DeleteShop(ctx context.Context, shopID string) error
}

// ShopRepositoryFacade combines all shop-related repository interfaces
type ShopRepositoryFacade interface {
	ShopReader
	ShopWriter
}
