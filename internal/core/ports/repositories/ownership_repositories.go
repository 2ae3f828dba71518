package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// OwnershipReader defines read operations for shop_investor links
type OwnershipReader interface {
	FindLinkByID(ctx context.Context, linkID string) (*domain.OwnershipLink, error)

	// ListLinksByShop returns links ordered by join date.
	ListLinksByShop(ctx context.Context, shopID string, includeInactive bool) ([]domain.OwnershipLink, error)

	// FindActiveLink returns the active link for the pair that joined at or before asOf.
	FindActiveLink(ctx context.Context, shopID, investorID string, asOf time.Time) (*domain.OwnershipLink, error)
}

// OwnershipTxOps are link operations that must run inside a caller-owned transaction
type OwnershipTxOps interface {
	FindLinkByIDInTx(ctx context.Context, tx *sql.Tx, linkID string) (*domain.OwnershipLink, error)

	// ListLinksByShopInTx is ListLinksByShop on the caller's transaction.
	ListLinksByShopInTx(ctx context.Context, tx *sql.Tx, shopID string, includeInactive bool) ([]domain.OwnershipLink, error)

	SaveLinkInTx(ctx context.Context, tx *sql.Tx, link domain.OwnershipLink) error
	UpdateLinkStatusInTx(ctx context.Context, tx *sql.Tx, linkID string, status domain.LinkStatus, updatedAt time.Time) error

	// EndLinkInTx deactivates a link replaced by a share change, recording when its share stopped applying.
	EndLinkInTx(ctx context.Context, tx *sql.Tx, linkID string, endedDate, updatedAt time.Time) error
}

// OwnershipRepositoryFacade combines all ownership-related repository interfaces
type OwnershipRepositoryFacade interface {
	OwnershipReader
	OwnershipTxOps
}

// OwnershipRepositoryWithTx extends OwnershipRepositoryFacade with transaction capabilities
type OwnershipRepositoryWithTx interface {
	OwnershipRepositoryFacade
	TransactionManager
}
