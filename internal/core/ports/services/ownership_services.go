package services

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OwnershipReaderSvc defines read operations of the ownership registry
type OwnershipReaderSvc interface {
	GetLink(ctx context.Context, linkID string) (*domain.OwnershipLink, error)
	ListLinks(ctx context.Context, shopID string, includeInactive bool) ([]domain.OwnershipLink, error)

	// ActiveShareOf returns the share percentage of the investor's active link in
	// the shop as of the given instant.
	ActiveShareOf(ctx context.Context, shopID, investorID string, asOf time.Time) (decimal.Decimal, error)
}

// OwnershipWriterSvc defines write operations of the ownership registry
type OwnershipWriterSvc interface {
	// AddInvestor opens an active link. The shop's active shares must stay at or below 100.
	AddInvestor(ctx context.Context, shopID, investorID string, sharePercentage decimal.Decimal, joinedDate time.Time) (*domain.OwnershipLink, error)

	// DeactivateInvestor marks the link inactive; its history is kept.
	DeactivateInvestor(ctx context.Context, linkID string) (*domain.OwnershipLink, error)

	// ChangeShare deactivates the link and opens a replacement with the new share.
	ChangeShare(ctx context.Context, linkID string, sharePercentage decimal.Decimal, effectiveDate time.Time) (*domain.OwnershipLink, error)
}

// OwnershipSvcFacade combines all ownership-related service interfaces
type OwnershipSvcFacade interface {
	OwnershipReaderSvc
	OwnershipWriterSvc
}
