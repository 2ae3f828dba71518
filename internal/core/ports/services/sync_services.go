package services

import "context"

// ShopDocumentSyncer pushes a shop's summary fields to the remote document store.
// Sync is opportunistic: callers log failures and carry on.
type ShopDocumentSyncer interface {
	UpsertShopDocument(ctx context.Context, shopID string, fields map[string]any) error
}
