package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// CreateShopRequest defines the data needed to create a new shop.
type CreateShopRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"max=500"`
}

// UpdateShopRequest defines the data allowed for updating a shop.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateShopRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=200"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// ShopResponse defines the data returned for a shop.
type ShopResponse struct {
	ShopID        string    `json:"shopID"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListShopsResponse wraps a page of shops.
type ListShopsResponse struct {
	Shops []ShopResponse `json:"shops"`
}

// ListParams defines offset pagination query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=50" binding:"min=0,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

func ToShopResponse(shop *domain.Shop) ShopResponse {
	return ShopResponse{
		ShopID:        shop.ShopID,
		Name:          shop.Name,
		Address:       shop.Address,
		CreatedAt:     shop.CreatedAt,
		LastUpdatedAt: shop.LastUpdatedAt,
	}
}

func ToListShopsResponse(shops []domain.Shop) ListShopsResponse {
	res := make([]ShopResponse, len(shops))
	for i := range shops {
		res[i] = ToShopResponse(&shops[i])
	}
	return ListShopsResponse{Shops: res}
}
