package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementReader defines read operations for settlements and their entries
type SettlementReader interface {
	// FindSettlementByID returns the settlement with its entries populated.
	FindSettlementByID(ctx context.Context, settlementID string) (*domain.YearEndSettlement, error)

	// ListSettlementsByShop returns settlements without entries, newest first.
	ListSettlementsByShop(ctx context.Context, shopID string) ([]domain.YearEndSettlement, error)

	// FindLatestSettlement returns apperrors.ErrNotFound when the shop has never been settled.
	FindLatestSettlement(ctx context.Context, shopID string) (*domain.YearEndSettlement, error)

	// ListCarriedForwardEntries returns entries of the shop's carried-forward settlements.
	ListCarriedForwardEntries(ctx context.Context, shopID string) ([]domain.SettlementEntry, error)
}

// SettlementTxOps are settlement operations that must run inside a caller-owned transaction
type SettlementTxOps interface {
	FindLatestSettlementInTx(ctx context.Context, tx *sql.Tx, shopID string) (*domain.YearEndSettlement, error)

	// SaveSettlementInTx inserts the settlement row and every entry in settlement.Entries.
	SaveSettlementInTx(ctx context.Context, tx *sql.Tx, settlement domain.YearEndSettlement) error

	FindEntryByIDInTx(ctx context.Context, tx *sql.Tx, entryID string) (*domain.SettlementEntry, error)
	UpdateEntryPaymentInTx(ctx context.Context, tx *sql.Tx, entryID string, paidAmount decimal.Decimal, paidDate time.Time) error
}

// SettlementRepositoryFacade combines all settlement-related repository interfaces
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementTxOps
}

// SettlementRepositoryWithTx extends SettlementRepositoryFacade with transaction capabilities
type SettlementRepositoryWithTx interface {
	SettlementRepositoryFacade
	TransactionManager
}
