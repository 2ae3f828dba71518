package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvestmentReader defines read operations for investment transactions
type InvestmentReader interface {
	// ListTransactionsByLink returns a page of transactions, newest first, and a
	// token for the next page (nil when there is none).
	ListTransactionsByLink(ctx context.Context, linkID string, limit int, nextToken *string) ([]domain.InvestmentTransaction, *string, error)

	// ListAmountsByLinkInPeriod returns amounts with start <= transactionDate < end.
	ListAmountsByLinkInPeriod(ctx context.Context, linkID string, start, end time.Time) ([]decimal.Decimal, error)
}

// InvestmentWriter defines write operations for investment transactions.
// Transactions are append-only; there is no update or delete.
type InvestmentWriter interface {
	SaveInvestmentTransaction(ctx context.Context, txn domain.InvestmentTransaction) error
}

// InvestmentTxOps are transaction-table reads used while closing a settlement
type InvestmentTxOps interface {
	ListAmountsByLinkInPeriodInTx(ctx context.Context, tx *sql.Tx, linkID string, start, end time.Time) ([]decimal.Decimal, error)
}

// InvestmentRepositoryFacade combines all investment-related repository interfaces
type InvestmentRepositoryFacade interface {
	InvestmentReader
	InvestmentWriter
	InvestmentTxOps
}
